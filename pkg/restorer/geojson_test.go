package restorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func requireValidCoordinatePair(t *testing.T, value interface{}) {
	t.Helper()
	pair, ok := value.(bson.A)
	require.True(t, ok, "coordinate pair must be an array, got %T", value)
	require.Len(t, pair, 2)

	longitude, ok := pair[0].(float64)
	require.True(t, ok)
	latitude, ok := pair[1].(float64)
	require.True(t, ok)

	assert.GreaterOrEqual(t, longitude, -180.0)
	assert.LessOrEqual(t, longitude, 180.0)
	assert.GreaterOrEqual(t, latitude, -90.0)
	assert.LessOrEqual(t, latitude, 90.0)
}

func TestPointBounds(t *testing.T) {
	builder := NewGeoJSONBuilder()
	for i := 0; i < 200; i++ {
		point := builder.Point()
		assert.Equal(t, "Point", point["type"])
		requireValidCoordinatePair(t, point["coordinates"])
	}
}

func TestLineStringLength(t *testing.T) {
	builder := NewGeoJSONBuilder()
	for i := 0; i < 100; i++ {
		line := builder.LineString()
		assert.Equal(t, "LineString", line["type"])

		coordinates, ok := line["coordinates"].(bson.A)
		require.True(t, ok)
		assert.GreaterOrEqual(t, len(coordinates), 2)
		assert.LessOrEqual(t, len(coordinates), 5)
		for _, pair := range coordinates {
			requireValidCoordinatePair(t, pair)
		}
	}
}

func TestPolygonRingClosure(t *testing.T) {
	builder := NewGeoJSONBuilder()
	for i := 0; i < 100; i++ {
		polygon := builder.Polygon()
		assert.Equal(t, "Polygon", polygon["type"])

		rings, ok := polygon["coordinates"].(bson.A)
		require.True(t, ok)
		require.Len(t, rings, 1)

		ring, ok := rings[0].(bson.A)
		require.True(t, ok)
		require.GreaterOrEqual(t, len(ring), 4)
		assert.Equal(t, ring[0], ring[len(ring)-1], "first and last coordinate pair must be identical")
		for _, pair := range ring {
			requireValidCoordinatePair(t, pair)
		}
	}
}
