package restorer

import (
	"github.com/brianvoe/gofakeit/v7"
	"go.mongodb.org/mongo-driver/bson"
)

// GeoJSONBuilder generates structurally valid GeoJSON value trees. All
// coordinates are generated fresh per call; nothing is cached.
type GeoJSONBuilder struct{}

func NewGeoJSONBuilder() *GeoJSONBuilder {
	return &GeoJSONBuilder{}
}

// Point returns a GeoJSON Point with longitude in [-180, 180] and latitude
// in [-90, 90].
func (g *GeoJSONBuilder) Point() bson.M {
	return bson.M{
		"type":        "Point",
		"coordinates": g.coordinatePair(),
	}
}

// LineString returns a GeoJSON LineString with 2 to 5 coordinate pairs.
func (g *GeoJSONBuilder) LineString() bson.M {
	count := gofakeit.Number(2, 5)
	coordinates := make(bson.A, 0, count)
	for i := 0; i < count; i++ {
		coordinates = append(coordinates, g.coordinatePair())
	}
	return bson.M{
		"type":        "LineString",
		"coordinates": coordinates,
	}
}

// Polygon returns a GeoJSON Polygon with a single linear ring of at least 4
// coordinate pairs whose first and last pairs are identical. Validity is
// structural only.
func (g *GeoJSONBuilder) Polygon() bson.M {
	count := gofakeit.Number(3, 5)
	ring := make(bson.A, 0, count+1)
	for i := 0; i < count; i++ {
		ring = append(ring, g.coordinatePair())
	}
	ring = append(ring, ring[0])
	return bson.M{
		"type":        "Polygon",
		"coordinates": bson.A{ring},
	}
}

func (g *GeoJSONBuilder) coordinatePair() bson.A {
	return bson.A{gofakeit.Longitude(), gofakeit.Latitude()}
}
