package mapview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/pkg/clients/mapbox"
)

var (
	// ErrTokenRequired is returned when an empty access token is submitted.
	ErrTokenRequired = errors.New("map access token required")
	// ErrUnmounted is returned by every operation on a torn-down view.
	ErrUnmounted = errors.New("map view unmounted")
	// ErrAlreadyInitialized is returned when a token is submitted to a view that already has a surface.
	ErrAlreadyInitialized = errors.New("map view already initialized")
	// ErrMarkerNotFound is returned when toggling a popup for an animal without a marker.
	ErrMarkerNotFound = errors.New("no marker for animal")
)

// State is the lifecycle state of a map view.
type State int

const (
	StateUninitialized State = iota
	StateAwaitingToken
	StateInitializing
	StateReady
	StateUnmounted
)

func (s State) String() string {
	switch s {
	case StateAwaitingToken:
		return "awaiting_token"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateUnmounted:
		return "unmounted"
	default:
		return "uninitialized"
	}
}

// MarshalText renders the state by name in JSON payloads.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Strategy selects how a reconciliation pass updates markers.
type Strategy string

const (
	// StrategyRecreate removes every marker and adds one per visible animal on each pass.
	StrategyRecreate Strategy = "recreate"
	// StrategyKeyed diffs markers by animal id and only touches what changed.
	StrategyKeyed Strategy = "keyed"
)

// AnimalSource lists animals, filtered by branch when branchID is not empty.
type AnimalSource interface {
	Animals(branchID string) []models.Animal
}

// StaticRenderer is implemented by collaborators that can render a surface as an image URL.
type StaticRenderer interface {
	StaticImageURL(surface mapbox.SurfaceID, width, height int) (string, error)
}

// Options configures a view.
type Options struct {
	Center   orb.Point
	Zoom     float64
	Strategy Strategy
}

// View keeps one marker per visible animal on a single map surface.
type View struct {
	id     string
	client mapbox.Client
	source AnimalSource
	opts   Options
	logger *zap.Logger

	mu           sync.Mutex
	state        State
	branchFilter string
	lastError    string
	surface      mapbox.SurfaceID
	markers      []*Marker
}

// NewView creates a view waiting for its access token.
func NewView(id string, client mapbox.Client, source AnimalSource, opts Options, logger *zap.Logger) *View {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Strategy == "" {
		opts.Strategy = StrategyRecreate
	}
	return &View{
		id:     id,
		client: client,
		source: source,
		opts:   opts,
		logger: logger,
		state:  StateAwaitingToken,
	}
}

// ID returns the view id.
func (v *View) ID() string { return v.id }

// State returns the current lifecycle state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// SubmitToken creates the map surface. An empty token, or a surface the
// collaborator refuses to create, leaves the view waiting for a token with the
// error recorded for display.
func (v *View) SubmitToken(ctx context.Context, token string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch v.state {
	case StateUnmounted:
		return ErrUnmounted
	case StateReady, StateInitializing:
		return ErrAlreadyInitialized
	}

	token = strings.TrimSpace(token)
	if token == "" {
		v.state = StateAwaitingToken
		v.lastError = "Please enter your Mapbox public token."
		return ErrTokenRequired
	}

	v.state = StateInitializing
	surface, err := v.client.CreateSurface(ctx, token, v.opts.Center, v.opts.Zoom)
	if err != nil {
		v.state = StateAwaitingToken
		v.lastError = err.Error()
		return fmt.Errorf("create map surface: %w", err)
	}
	if err := v.client.AddNavigationControl(ctx, surface); err != nil {
		v.logger.Warn("navigation control not added", zap.String("view_id", v.id), zap.Error(err))
	}

	v.surface = surface
	v.lastError = ""
	v.state = StateReady
	v.logger.Info("map view ready", zap.String("view_id", v.id), zap.String("surface_id", string(surface)))

	return v.reconcileLocked(ctx)
}

// SetBranchFilter changes the visible branch (empty for every branch) and reconciles a ready view.
func (v *View) SetBranchFilter(ctx context.Context, branchID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state == StateUnmounted {
		return ErrUnmounted
	}
	v.branchFilter = branchID
	return v.reconcileLocked(ctx)
}

// Reconcile brings the markers in line with the current filtered animal list.
// It does nothing unless the view is ready.
func (v *View) Reconcile(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state == StateUnmounted {
		return ErrUnmounted
	}
	return v.reconcileLocked(ctx)
}

func (v *View) reconcileLocked(ctx context.Context) error {
	if v.state != StateReady {
		return nil
	}

	animals := v.source.Animals(v.branchFilter)

	var err error
	switch v.opts.Strategy {
	case StrategyKeyed:
		err = v.reconcileKeyedLocked(ctx, animals)
	default:
		err = v.reconcileRecreateLocked(ctx, animals)
	}

	v.logger.Debug("map view reconciled",
		zap.String("view_id", v.id),
		zap.String("strategy", string(v.opts.Strategy)),
		zap.Int("animals", len(animals)),
		zap.Int("markers", len(v.markers)))
	return err
}

func (v *View) reconcileRecreateLocked(ctx context.Context, animals []models.Animal) error {
	var errs []error
	for _, m := range v.markers {
		if err := v.client.RemoveMarker(ctx, m.handle); err != nil {
			errs = append(errs, err)
		}
	}
	v.markers = v.markers[:0]

	for _, a := range animals {
		m, err := v.placeLocked(ctx, describe(a))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		v.markers = append(v.markers, m)
	}
	return errors.Join(errs...)
}

func (v *View) reconcileKeyedLocked(ctx context.Context, animals []models.Animal) error {
	existing := make(map[string]*Marker, len(v.markers))
	for _, m := range v.markers {
		existing[m.AnimalID] = m
	}

	var errs []error
	next := make([]*Marker, 0, len(animals))
	for _, a := range animals {
		desired := describe(a)
		old, ok := existing[a.ID]
		if ok {
			delete(existing, a.ID)
			if old.sameAs(desired) {
				next = append(next, old)
				continue
			}
			desired.PopupOpen = old.PopupOpen
			if err := v.client.RemoveMarker(ctx, old.handle); err != nil {
				errs = append(errs, err)
			}
		}

		m, err := v.placeLocked(ctx, desired)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		next = append(next, m)
	}

	for _, stale := range existing {
		if err := v.client.RemoveMarker(ctx, stale.handle); err != nil {
			errs = append(errs, err)
		}
	}

	v.markers = next
	return errors.Join(errs...)
}

func (v *View) placeLocked(ctx context.Context, m *Marker) (*Marker, error) {
	handle, err := v.client.AddMarker(ctx, v.surface, m.position(), m.Style)
	if err != nil {
		return nil, fmt.Errorf("add marker for animal %s: %w", m.AnimalID, err)
	}
	m.handle = handle
	if err := v.client.AttachPopup(ctx, handle, m.Popup); err != nil {
		v.logger.Warn("popup not attached", zap.String("animal_id", m.AnimalID), zap.Error(err))
	}
	return m, nil
}

// ToggleMarkerPopup flips the popup of an animal's marker and returns the new visibility.
func (v *View) ToggleMarkerPopup(animalID string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state == StateUnmounted {
		return false, ErrUnmounted
	}
	for _, m := range v.markers {
		if m.AnimalID == animalID {
			m.PopupOpen = !m.PopupOpen
			return m.PopupOpen, nil
		}
	}
	return false, fmt.Errorf("animal %s: %w", animalID, ErrMarkerNotFound)
}

// Unmount releases every marker and the surface. The view cannot be used afterwards.
func (v *View) Unmount(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state == StateUnmounted {
		return nil
	}

	var errs []error
	for _, m := range v.markers {
		if err := v.client.RemoveMarker(ctx, m.handle); err != nil {
			errs = append(errs, err)
		}
	}
	v.markers = nil

	if v.surface != "" {
		if err := v.client.RemoveSurface(ctx, v.surface); err != nil {
			errs = append(errs, err)
		}
		v.surface = ""
	}

	v.state = StateUnmounted
	v.logger.Info("map view unmounted", zap.String("view_id", v.id))
	return errors.Join(errs...)
}

// Snapshot is the read model of a view.
type Snapshot struct {
	ID             string    `json:"id"`
	State          State     `json:"state"`
	BranchFilter   string    `json:"branchId,omitempty"`
	Error          string    `json:"error,omitempty"`
	Center         []float64 `json:"center"`
	Zoom           float64   `json:"zoom"`
	Strategy       Strategy  `json:"strategy"`
	Markers        []Marker  `json:"markers"`
	StaticImageURL string    `json:"staticImageUrl,omitempty"`
}

// Snapshot copies the current view state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := Snapshot{
		ID:           v.id,
		State:        v.state,
		BranchFilter: v.branchFilter,
		Error:        v.lastError,
		Center:       []float64{v.opts.Center.Lon(), v.opts.Center.Lat()},
		Zoom:         v.opts.Zoom,
		Strategy:     v.opts.Strategy,
		Markers:      make([]Marker, 0, len(v.markers)),
	}
	for _, m := range v.markers {
		snap.Markers = append(snap.Markers, *m)
	}

	if renderer, ok := v.client.(StaticRenderer); ok && v.state == StateReady {
		if url, err := renderer.StaticImageURL(v.surface, 800, 400); err == nil {
			snap.StaticImageURL = url
		}
	}
	return snap
}

// GeoJSON renders the markers as a feature collection of points.
func (v *View) GeoJSON() *geojson.FeatureCollection {
	v.mu.Lock()
	defer v.mu.Unlock()

	fc := geojson.NewFeatureCollection()
	for _, m := range v.markers {
		f := geojson.NewFeature(m.position())
		f.ID = m.AnimalID
		f.Properties["tagId"] = m.TagID
		f.Properties["color"] = m.Style.Color
		f.Properties["popup"] = m.Popup
		fc.Append(f)
	}
	return fc
}
