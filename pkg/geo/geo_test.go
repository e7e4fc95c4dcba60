package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateHaversineDistance(t *testing.T) {
	t.Run("same point", func(t *testing.T) {
		assert.Equal(t, 0.0, CalculateHaversineDistance(-7.76, 110.37, -7.76, 110.37))
	})

	t.Run("one degree of longitude on the equator", func(t *testing.T) {
		d := CalculateHaversineDistance(0, 0, 0, 1)
		assert.InDelta(t, 111194.93, d, 0.5)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := CalculateHaversineDistance(-7.7956, 110.3695, -7.7829, 110.3671)
		b := CalculateHaversineDistance(-7.7829, 110.3671, -7.7956, 110.3695)
		assert.InDelta(t, a, b, 1e-9)
	})

	t.Run("antipodal", func(t *testing.T) {
		d := CalculateHaversineDistance(0, 0, 0, 180)
		assert.InDelta(t, math.Pi*6371000, d, 1e-6)
	})

	t.Run("nan propagates", func(t *testing.T) {
		assert.True(t, math.IsNaN(CalculateHaversineDistance(math.NaN(), 0, 0, 0)))
	})
}

func TestGetDestinationPoint(t *testing.T) {
	lat, lon := GetDestinationPoint(-7.7956, 110.3695, 90, 250)
	assert.InDelta(t, 250, CalculateHaversineDistance(-7.7956, 110.3695, lat, lon), 0.01)
	assert.Greater(t, lon, 110.3695)

	_, lon = GetDestinationPoint(0, 179.9999, 90, 1000)
	assert.Less(t, lon, 0.0)
}

func TestPolylineRoundTrip(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(-7.79560, 110.36950),
		NewCoordinate(-7.79512, 110.36987),
		NewCoordinate(-7.78290, 110.36710),
	}

	encoded := PolylineFromCoords(coords)
	require.NotEmpty(t, encoded)

	decoded, err := CoordsFromPolyline(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(coords))
	for i := range coords {
		assert.InDelta(t, coords[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, coords[i].Lon, decoded[i].Lon, 1e-5)
	}

	assert.Equal(t, "", PolylineFromCoords(nil))
}

func TestProjectPointToLine(t *testing.T) {
	a := NewCoordinate(0, 0)
	b := NewCoordinate(0, 0.002)
	p := NewCoordinate(0.0005, 0.001)

	proj := ProjectPointToLineCoord(a, b, p)
	assert.InDelta(t, 0, proj.Lat, 1e-7)
	assert.InDelta(t, 0.001, proj.Lon, 1e-7)

	dist := PointLinePerpendicularDistance(a, b, p)
	assert.InDelta(t, CalculateHaversineDistance(0, 0.001, 0.0005, 0.001), dist, 0.5)
}
