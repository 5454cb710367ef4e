package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/service/branches"
	"github.com/mamadbah2/herdtrack/internal/service/mapview"
	"github.com/mamadbah2/herdtrack/internal/service/session"
	"github.com/mamadbah2/herdtrack/pkg/clients/mapbox"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", models.Invalid("age must be a whole number"), http.StatusBadRequest},
		{"token required", mapview.ErrTokenRequired, http.StatusUnprocessableEntity},
		{"token rejected", fmt.Errorf("create map surface: %w", mapbox.ErrInvalidToken), http.StatusUnprocessableEntity},
		{"missing animal", fmt.Errorf("animal 9: %w", models.ErrNotFound), http.StatusNotFound},
		{"missing view", mapview.ErrViewNotFound, http.StatusNotFound},
		{"branch in use", branches.ErrBranchInUse, http.StatusConflict},
		{"unmounted", mapview.ErrUnmounted, http.StatusGone},
		{"session", session.ErrUnknownSession, http.StatusUnauthorized},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}
