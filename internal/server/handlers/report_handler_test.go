package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/repository/memory"
	"github.com/mamadbah2/herdtrack/internal/service/reporting"
)

type stubArchive struct {
	report *models.HerdReport
	err    error
}

func (a stubArchive) LatestHerdReport(context.Context) (*models.HerdReport, error) {
	return a.report, a.err
}

type failingSink struct{}

func (failingSink) Name() string { return "broken" }
func (failingSink) SaveHerdReport(context.Context, models.HerdReport) error {
	return errors.New("quota exceeded")
}

func serveReport(h gin.HandlerFunc, method string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Handle(method, "/herd", h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, "/herd", nil))
	return w
}

func TestLatestFromArchive(t *testing.T) {
	svc := reporting.NewService(memory.NewStore(), nil, nil)
	stored := &models.HerdReport{GeneratedAt: time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC), Animals: 12, Sick: 2}

	w := serveReport(NewReportHandler(svc, stubArchive{report: stored}, nil).Latest, http.MethodGet)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.HerdReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 12, got.Animals)
	assert.Equal(t, 2, got.Sick)
}

func TestLatestEmptyArchive(t *testing.T) {
	svc := reporting.NewService(memory.NewStore(), nil, nil)
	w := serveReport(NewReportHandler(svc, stubArchive{}, nil).Latest, http.MethodGet)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLatestArchiveFailureIsHidden(t *testing.T) {
	svc := reporting.NewService(memory.NewStore(), nil, nil)
	w := serveReport(NewReportHandler(svc, stubArchive{err: errors.New("connection refused")}, nil).Latest, http.MethodGet)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestPublishReportsSinkFailure(t *testing.T) {
	svc := reporting.NewService(memory.NewStore(), []reporting.Sink{failingSink{}}, nil)
	w := serveReport(NewReportHandler(svc, nil, nil).Publish, http.MethodPost)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
