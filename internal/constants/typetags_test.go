package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTypeTagAliases(t *testing.T) {
	cases := map[string]TypeTag{
		"string":             TypeString,
		"String":             TypeString,
		"  int32  ":          TypeInt,
		"integer":            TypeInt,
		"Decimal128":         TypeDecimal128,
		"ObjectId":           TypeObjectID,
		"ISODate":            TypeDate,
		"GeoJSON Point":      TypeGeoPoint,
		"GeoJSON LineString": TypeGeoLineString,
		"GeoJSON Polygon":    TypeGeoPolygon,
		"BinData":            TypeBinary,
		"document":           TypeObject,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseTypeTag(raw), "raw %q", raw)
	}
}

func TestParseTypeTagUnknownNeverGuesses(t *testing.T) {
	assert.Equal(t, TypeUnknown, ParseTypeTag("javascript"))
	assert.Equal(t, TypeUnknown, ParseTypeTag(""))
}

func TestParseTypeTagsPreservesOrder(t *testing.T) {
	tags := ParseTypeTags([]string{"null", "int", "double"})
	assert.Equal(t, []TypeTag{TypeNull, TypeInt, TypeDouble}, tags)
}
