package mapbox

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"github.com/mamadbah2/herdtrack/internal/config"
)

var (
	// ErrInvalidToken is returned when Mapbox rejects the access token.
	ErrInvalidToken = errors.New("mapbox access token rejected")
	// ErrUnknownSurface is returned for a surface id that was never created or was removed.
	ErrUnknownSurface = errors.New("unknown map surface")
	// ErrUnknownMarker is returned for a marker id that was never added or was removed.
	ErrUnknownMarker = errors.New("unknown map marker")
)

// SurfaceID identifies a map surface.
type SurfaceID string

// MarkerID identifies a marker on a surface.
type MarkerID string

// MarkerStyle is the visual style of a marker.
type MarkerStyle struct {
	Color string `json:"color"`
	Size  int    `json:"size"`
}

// Client exposes the map operations the map views rely on.
type Client interface {
	CreateSurface(ctx context.Context, token string, center orb.Point, zoom float64) (SurfaceID, error)
	AddNavigationControl(ctx context.Context, surface SurfaceID) error
	AddMarker(ctx context.Context, surface SurfaceID, position orb.Point, style MarkerStyle) (MarkerID, error)
	AttachPopup(ctx context.Context, marker MarkerID, html string) error
	RemoveMarker(ctx context.Context, marker MarkerID) error
	RemoveSurface(ctx context.Context, surface SurfaceID) error
}

// APIClient mirrors map surfaces server side and renders them through the
// Mapbox Static Images API. Token checks go through the Mapbox Tokens API.
type APIClient struct {
	httpClient    *resty.Client
	baseURL       string
	style         string
	validateToken bool

	mu       sync.Mutex
	surfaces map[SurfaceID]*surface
	markers  map[MarkerID]*marker
}

type surface struct {
	token    string
	center   orb.Point
	zoom     float64
	controls []string
	markers  []MarkerID
}

type marker struct {
	surface  SurfaceID
	position orb.Point
	style    MarkerStyle
	popup    string
}

// NewClient builds a Mapbox client using the provided configuration values.
func NewClient(cfg config.MapboxConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base).
		SetHeader("Accept", "application/json").
		SetTimeout(10 * time.Second)

	return &APIClient{
		httpClient:    restyClient,
		baseURL:       base,
		style:         cfg.Style,
		validateToken: cfg.ValidateToken,
		surfaces:      make(map[SurfaceID]*surface),
		markers:       make(map[MarkerID]*marker),
	}
}

// tokenResponse mirrors the Tokens API retrieve-token payload.
type tokenResponse struct {
	Code string `json:"code"`
}

// CreateSurface registers a new surface centered on center at zoom.
func (c *APIClient) CreateSurface(ctx context.Context, token string, center orb.Point, zoom float64) (SurfaceID, error) {
	if c.validateToken {
		if err := c.checkToken(ctx, token); err != nil {
			return "", err
		}
	}

	id := SurfaceID(uuid.NewString())
	c.mu.Lock()
	c.surfaces[id] = &surface{token: token, center: center, zoom: zoom}
	c.mu.Unlock()
	return id, nil
}

func (c *APIClient) checkToken(ctx context.Context, token string) error {
	result := new(tokenResponse)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("access_token", token).
		SetResult(result).
		SetError(result).
		Get("/tokens/v2")
	if err != nil {
		return fmt.Errorf("check mapbox token: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest || result.Code != "TokenValid" {
		return fmt.Errorf("%w: status=%d, code=%s", ErrInvalidToken, resp.StatusCode(), result.Code)
	}
	return nil
}

// AddNavigationControl records the zoom/rotate control on a surface.
func (c *APIClient) AddNavigationControl(_ context.Context, id SurfaceID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.surfaces[id]
	if !ok {
		return fmt.Errorf("add navigation control to %s: %w", id, ErrUnknownSurface)
	}
	s.controls = append(s.controls, "navigation:top-right")
	return nil
}

// AddMarker places a marker on a surface.
func (c *APIClient) AddMarker(_ context.Context, id SurfaceID, position orb.Point, style MarkerStyle) (MarkerID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.surfaces[id]
	if !ok {
		return "", fmt.Errorf("add marker to %s: %w", id, ErrUnknownSurface)
	}
	markerID := MarkerID(uuid.NewString())
	c.markers[markerID] = &marker{surface: id, position: position, style: style}
	s.markers = append(s.markers, markerID)
	return markerID, nil
}

// AttachPopup sets the popup html shown when the marker is clicked.
func (c *APIClient) AttachPopup(_ context.Context, id MarkerID, html string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.markers[id]
	if !ok {
		return fmt.Errorf("attach popup to %s: %w", id, ErrUnknownMarker)
	}
	m.popup = html
	return nil
}

// RemoveMarker takes a marker off its surface.
func (c *APIClient) RemoveMarker(_ context.Context, id MarkerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.markers[id]
	if !ok {
		return fmt.Errorf("remove marker %s: %w", id, ErrUnknownMarker)
	}
	delete(c.markers, id)
	if s, ok := c.surfaces[m.surface]; ok {
		for i, existing := range s.markers {
			if existing == id {
				s.markers = append(s.markers[:i:i], s.markers[i+1:]...)
				break
			}
		}
	}
	return nil
}

// RemoveSurface releases a surface together with any markers still on it.
func (c *APIClient) RemoveSurface(_ context.Context, id SurfaceID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.surfaces[id]
	if !ok {
		return fmt.Errorf("remove surface %s: %w", id, ErrUnknownSurface)
	}
	for _, markerID := range s.markers {
		delete(c.markers, markerID)
	}
	delete(c.surfaces, id)
	return nil
}

// MarkerCount reports how many markers a surface currently carries.
func (c *APIClient) MarkerCount(id SurfaceID) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.surfaces[id]; ok {
		return len(s.markers)
	}
	return 0
}

// StaticImageURL renders a surface and its markers as a Static Images API URL.
func (c *APIClient) StaticImageURL(id SurfaceID, width, height int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.surfaces[id]
	if !ok {
		return "", fmt.Errorf("render %s: %w", id, ErrUnknownSurface)
	}

	overlays := make([]string, 0, len(s.markers))
	for _, markerID := range s.markers {
		m := c.markers[markerID]
		color := strings.ToLower(strings.TrimPrefix(m.style.Color, "#"))
		overlays = append(overlays, fmt.Sprintf("pin-s+%s(%.6f,%.6f)", color, m.position.Lon(), m.position.Lat()))
	}

	path := fmt.Sprintf("%.4f,%.4f,%g", s.center.Lon(), s.center.Lat(), s.zoom)
	if len(overlays) > 0 {
		path = strings.Join(overlays, ",") + "/" + path
	}

	return fmt.Sprintf("%s/styles/v1/%s/static/%s/%dx%d?access_token=%s",
		c.baseURL, c.style, path, width, height, url.QueryEscape(s.token)), nil
}
