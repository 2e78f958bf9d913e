//go:build unit

package geo_test

import (
	"testing"

	"ghar-ko-sathi/internal/pkg/geo"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	ratnaPark := geo.Point{Lat: 27.7056, Lng: 85.3148}
	patanDhoka := geo.Point{Lat: 27.6794, Lng: 85.3188}

	t.Run("same point is zero", func(t *testing.T) {
		assert.InDelta(t, 0, geo.HaversineKm(ratnaPark, ratnaPark), 1e-9)
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.InDelta(t, geo.HaversineKm(ratnaPark, patanDhoka), geo.HaversineKm(patanDhoka, ratnaPark), 1e-9)
	})

	t.Run("kathmandu to patan is about 2.9km", func(t *testing.T) {
		assert.InDelta(t, 2.94, geo.HaversineKm(ratnaPark, patanDhoka), 0.05)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		assert.InDelta(t, 111.19, geo.HaversineKm(geo.Point{Lat: 0, Lng: 0}, geo.Point{Lat: 1, Lng: 0}), 0.01)
	})
}

func TestETAMinutes(t *testing.T) {
	cases := []struct {
		name     string
		km       float64
		expected int
	}{
		{name: "zero distance", km: 0, expected: 0},
		{name: "exactly half a km is one minute", km: 0.5, expected: 1},
		{name: "just over rounds up", km: 0.51, expected: 2},
		{name: "fifteen km is thirty minutes", km: 15, expected: 30},
		{name: "2.94km rounds up to 6", km: 2.94, expected: 6},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, geo.ETAMinutes(c.km))
		})
	}
}

func TestPointValid(t *testing.T) {
	assert.True(t, geo.Point{Lat: 27.7, Lng: 85.3}.Valid())
	assert.False(t, geo.Point{Lat: 91, Lng: 0}.Valid())
	assert.False(t, geo.Point{Lat: 0, Lng: -181}.Valid())
}
