package mapbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdtrack/internal/config"
)

func tokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tokens/v2", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("access_token") == "pk.good" {
			_ = json.NewEncoder(w).Encode(map[string]string{"code": "TokenValid"})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"code": "TokenInvalid"})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCreateSurfaceValidatesToken(t *testing.T) {
	srv := tokenServer(t)
	c := NewClient(config.MapboxConfig{BaseURL: srv.URL, Style: "mapbox/streets-v12", ValidateToken: true})
	ctx := context.Background()

	id, err := c.CreateSurface(ctx, "pk.good", orb.Point{36.8219, -1.2921}, 14)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = c.CreateSurface(ctx, "pk.bad", orb.Point{36.8219, -1.2921}, 14)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMarkerLifecycle(t *testing.T) {
	c := NewClient(config.MapboxConfig{BaseURL: "https://api.mapbox.com", Style: "mapbox/satellite-streets-v12"})
	ctx := context.Background()

	surfaceID, err := c.CreateSurface(ctx, "pk.any", orb.Point{36.8219, -1.2921}, 14)
	require.NoError(t, err)
	require.NoError(t, c.AddNavigationControl(ctx, surfaceID))

	m1, err := c.AddMarker(ctx, surfaceID, orb.Point{36.82, -1.29}, MarkerStyle{Color: "#10B981", Size: 20})
	require.NoError(t, err)
	m2, err := c.AddMarker(ctx, surfaceID, orb.Point{36.83, -1.30}, MarkerStyle{Color: "#EF4444", Size: 20})
	require.NoError(t, err)
	require.NoError(t, c.AttachPopup(ctx, m1, "<b>COW-001</b>"))
	assert.Equal(t, 2, c.MarkerCount(surfaceID))

	imageURL, err := c.StaticImageURL(surfaceID, 600, 400)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(imageURL, "https://api.mapbox.com/styles/v1/mapbox/satellite-streets-v12/static/"))
	assert.Contains(t, imageURL, "pin-s+10b981(36.820000,-1.290000)")
	assert.Contains(t, imageURL, "pin-s+ef4444(36.830000,-1.300000)")
	assert.Contains(t, imageURL, "/600x400?access_token=pk.any")

	require.NoError(t, c.RemoveMarker(ctx, m2))
	assert.Equal(t, 1, c.MarkerCount(surfaceID))
	assert.ErrorIs(t, c.RemoveMarker(ctx, m2), ErrUnknownMarker)

	require.NoError(t, c.RemoveSurface(ctx, surfaceID))
	assert.Equal(t, 0, c.MarkerCount(surfaceID))
	assert.ErrorIs(t, c.AttachPopup(ctx, m1, "x"), ErrUnknownMarker)
	_, err = c.AddMarker(ctx, surfaceID, orb.Point{}, MarkerStyle{})
	assert.ErrorIs(t, err, ErrUnknownSurface)
}
