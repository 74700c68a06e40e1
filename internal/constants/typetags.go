package constants

import "strings"

// TypeTag is the canonical classification assigned to an observed field value
// during schema capture. The extractor records an open string vocabulary;
// everything entering the engine is mapped onto this closed set first.
type TypeTag string

const (
	TypeNull          TypeTag = "null"
	TypeInt           TypeTag = "int"
	TypeLong          TypeTag = "long"
	TypeDouble        TypeTag = "double"
	TypeBoolean       TypeTag = "boolean"
	TypeString        TypeTag = "string"
	TypeDate          TypeTag = "date"
	TypeObjectID      TypeTag = "objectId"
	TypeDecimal128    TypeTag = "decimal128"
	TypeBinary        TypeTag = "binary"
	TypeRegex         TypeTag = "regex"
	TypeTimestamp     TypeTag = "timestamp"
	TypeArray         TypeTag = "array"
	TypeObject        TypeTag = "object"
	TypeGeoPoint      TypeTag = "geoPoint"
	TypeGeoLineString TypeTag = "geoLineString"
	TypeGeoPolygon    TypeTag = "geoPolygon"
	TypeUnknown       TypeTag = "unknown"
)

// typeTagAliases maps the extractor's recorded type strings (lowercased) onto
// canonical tags. The extractor vocabulary is open-ended; new spellings get
// added here as they show up in captured bundles.
var typeTagAliases = map[string]TypeTag{
	"null":               TypeNull,
	"nil":                TypeNull,
	"int":                TypeInt,
	"int32":              TypeInt,
	"integer":            TypeInt,
	"long":               TypeLong,
	"int64":              TypeLong,
	"double":             TypeDouble,
	"float":              TypeDouble,
	"number":             TypeDouble,
	"bool":               TypeBoolean,
	"boolean":            TypeBoolean,
	"string":             TypeString,
	"date":               TypeDate,
	"datetime":           TypeDate,
	"isodate":            TypeDate,
	"objectid":           TypeObjectID,
	"decimal":            TypeDecimal128,
	"decimal128":         TypeDecimal128,
	"binary":             TypeBinary,
	"bindata":            TypeBinary,
	"regex":              TypeRegex,
	"regularexpression":  TypeRegex,
	"timestamp":          TypeTimestamp,
	"array":              TypeArray,
	"object":             TypeObject,
	"document":           TypeObject,
	"geojson point":      TypeGeoPoint,
	"geopoint":           TypeGeoPoint,
	"point":              TypeGeoPoint,
	"geojson linestring": TypeGeoLineString,
	"geolinestring":      TypeGeoLineString,
	"linestring":         TypeGeoLineString,
	"geojson polygon":    TypeGeoPolygon,
	"geopolygon":         TypeGeoPolygon,
	"polygon":            TypeGeoPolygon,
}

// ParseTypeTag maps a raw extractor type string to its canonical TypeTag.
// Unrecognized strings map to TypeUnknown, never silently to another tag.
func ParseTypeTag(raw string) TypeTag {
	if tag, ok := typeTagAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return tag
	}
	return TypeUnknown
}

// ParseTypeTags maps a recorded tag list, preserving the extraction-time
// discovery order the resolver's tie-break depends on.
func ParseTypeTags(raw []string) []TypeTag {
	tags := make([]TypeTag, 0, len(raw))
	for _, r := range raw {
		tags = append(tags, ParseTypeTag(r))
	}
	return tags
}
