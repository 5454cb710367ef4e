// Package geo holds the fixed map geography shared by the animal register and the map views.
package geo

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/paulmach/orb"
)

// DefaultCenter is the map center and the base point for synthetic positions (Nairobi).
var DefaultCenter = orb.Point{36.8219, -1.2921}

const (
	// DefaultZoom is the initial zoom level of a new map surface.
	DefaultZoom = 14.0
	// DefaultSpread is the full width of the jitter window around the base point, in degrees.
	DefaultSpread = 0.01
)

// Jitter produces synthetic positions uniformly distributed around a base point.
type Jitter struct {
	base   orb.Point
	spread float64

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewJitter builds a Jitter. Each axis is offset by a uniform value in [-spread/2, spread/2).
func NewJitter(base orb.Point, spread float64, seed uint64) *Jitter {
	return &Jitter{
		base:   base,
		spread: spread,
		rnd:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Next returns a fresh synthetic position.
func (j *Jitter) Next() orb.Point {
	j.mu.Lock()
	defer j.mu.Unlock()

	lon := j.base.Lon() + (j.rnd.Float64()-0.5)*j.spread
	lat := j.base.Lat() + (j.rnd.Float64()-0.5)*j.spread
	return orb.Point{lon, lat}
}

// Contains reports whether p lies inside the jitter window.
func (j *Jitter) Contains(p orb.Point) bool {
	half := j.spread / 2
	bound := orb.Bound{
		Min: orb.Point{j.base.Lon() - half, j.base.Lat() - half},
		Max: orb.Point{j.base.Lon() + half, j.base.Lat() + half},
	}
	return bound.Contains(p)
}

// ValidateCoordinate checks latitude and longitude ranges.
func ValidateCoordinate(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %.6f is out of valid range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %.6f is out of valid range [-180, 180]", lon)
	}
	return nil
}
