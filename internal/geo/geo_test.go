package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestJitterStaysInsideWindow(t *testing.T) {
	j := NewJitter(DefaultCenter, DefaultSpread, 42)
	for i := 0; i < 500; i++ {
		p := j.Next()
		assert.True(t, j.Contains(p), "point %v outside window", p)
	}
}

func TestJitterVaries(t *testing.T) {
	j := NewJitter(DefaultCenter, DefaultSpread, 7)
	assert.NotEqual(t, j.Next(), j.Next())
}

func TestJitterZeroSpreadIsBase(t *testing.T) {
	base := orb.Point{10, 20}
	j := NewJitter(base, 0, 1)
	assert.Equal(t, base, j.Next())
}

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"nairobi", -1.2921, 36.8219, false},
		{"poles", 90, -180, false},
		{"lat too high", 90.5, 0, true},
		{"lon too low", 0, -180.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate(tt.lat, tt.lon)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
