package restorer

import (
	"fmt"
	"math"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"go.mongodb.org/mongo-driver/bson"

	"restorebot/internal/constants"
	"restorebot/internal/models"
)

// GenerationStrategy produces a raw value for one resolved type tag. The raw
// value is handed to the ValueCoercer for conversion into the driver-native
// representation, so a strategy can be swapped without touching the resolver
// or the synthesizer.
type GenerationStrategy func() (interface{}, error)

// FieldError is a field-local synthesis failure. The offending field is set
// to null and the document-level outcome downgrades to partial.
type FieldError struct {
	Path string
	Err  error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// DocumentSynthesizer produces complete nested documents from a flattened
// field-path schema. It reconstructs the field tree by splitting paths on
// the dot separator, then resolves, generates and coerces a value for every
// leaf.
type DocumentSynthesizer struct {
	resolver   *TypeTagResolver
	geo        *GeoJSONBuilder
	coercer    *ValueCoercer
	strategies map[constants.TypeTag]GenerationStrategy
}

func NewDocumentSynthesizer() *DocumentSynthesizer {
	s := &DocumentSynthesizer{
		resolver: NewTypeTagResolver(),
		geo:      NewGeoJSONBuilder(),
		coercer:  NewValueCoercer(),
	}
	s.strategies = map[constants.TypeTag]GenerationStrategy{
		constants.TypeString: func() (interface{}, error) {
			return gofakeit.Word(), nil
		},
		constants.TypeInt: func() (interface{}, error) {
			return gofakeit.Number(1, 100), nil
		},
		constants.TypeLong: func() (interface{}, error) {
			return int64(gofakeit.Number(1000000000, 9999999999)), nil
		},
		constants.TypeDouble: func() (interface{}, error) {
			return math.Round(gofakeit.Float64Range(1, 1000)*100) / 100, nil
		},
		constants.TypeBoolean: func() (interface{}, error) {
			return gofakeit.Bool(), nil
		},
		constants.TypeDecimal128: func() (interface{}, error) {
			// Built from integers so the value never touches a binary float.
			return fmt.Sprintf("%d.%06d", gofakeit.Number(1, 1000), gofakeit.Number(0, 999999)), nil
		},
		constants.TypeDate: func() (interface{}, error) {
			return recentTime(), nil
		},
	}
	return s
}

// SetStrategy overrides the generation strategy for one tag. Tags without a
// strategy (objectId, timestamp, binary, regex) are minted by the coercer.
func (s *DocumentSynthesizer) SetStrategy(tag constants.TypeTag, strategy GenerationStrategy) {
	s.strategies[tag] = strategy
}

// Build synthesizes documentCount documents from the flattened schema. Every
// field path in the schema appears in each document; fields whose tag cannot
// be resolved or whose value cannot be coerced are set to null and reported
// in the returned field errors.
func (s *DocumentSynthesizer) Build(schema models.FieldSchema, documentCount int) ([]bson.M, []FieldError) {
	if documentCount < 1 {
		documentCount = constants.DefaultSyntheticDocumentCount
	}

	root := buildFieldTree(schema)

	docs := make([]bson.M, 0, documentCount)
	var fieldErrors []FieldError
	for i := 0; i < documentCount; i++ {
		doc, errs := s.buildDocument(root, "")
		docs = append(docs, doc)
		fieldErrors = append(fieldErrors, errs...)
	}
	return docs, fieldErrors
}

// fieldNode is one segment of the reconstructed field tree. Nesting depth is
// bounded by realistic document nesting, so plain recursion is adequate.
type fieldNode struct {
	tags     []constants.TypeTag
	children map[string]*fieldNode
}

func newFieldNode() *fieldNode {
	return &fieldNode{children: make(map[string]*fieldNode)}
}

func buildFieldTree(schema models.FieldSchema) *fieldNode {
	root := newFieldNode()
	for path, tags := range schema {
		node := root
		for _, segment := range strings.Split(path, ".") {
			child, ok := node.children[segment]
			if !ok {
				child = newFieldNode()
				node.children[segment] = child
			}
			node = child
		}
		node.tags = tags
	}
	return root
}

func (s *DocumentSynthesizer) buildDocument(node *fieldNode, prefix string) (bson.M, []FieldError) {
	doc := bson.M{}
	var fieldErrors []FieldError

	for segment, child := range node.children {
		path := segment
		if prefix != "" {
			path = prefix + "." + segment
		}

		// The extractor marks array-element sub-documents with a "[]"
		// segment suffix; the subtree is rebuilt inside an array.
		key := segment
		isArrayElement := strings.HasSuffix(segment, "[]")
		if isArrayElement {
			key = strings.TrimSuffix(segment, "[]")
		}

		var value interface{}
		var errs []FieldError
		if len(child.children) > 0 {
			// Object-valued intermediate segment: rebuild the nested
			// container. Any leaf tags recorded for it are subsumed by the
			// more specific child paths.
			value, errs = s.buildDocument(child, path)
		} else {
			value, errs = s.synthesizeLeaf(path, child.tags)
		}

		if isArrayElement {
			value = bson.A{value}
		}
		doc[key] = value
		fieldErrors = append(fieldErrors, errs...)
	}
	return doc, fieldErrors
}

func (s *DocumentSynthesizer) synthesizeLeaf(path string, tags []constants.TypeTag) (interface{}, []FieldError) {
	resolved, err := s.resolver.Resolve(tags)
	if err != nil {
		return nil, []FieldError{{Path: path, Err: err}}
	}

	if resolved == constants.TypeArray {
		element := arrayElementTag(tags)
		if element == constants.TypeUnknown {
			// The extractor did not record an element type; an empty array
			// is the documented simplification.
			return bson.A{}, nil
		}
		count := gofakeit.Number(1, constants.MaxSyntheticArrayElements)
		arr := make(bson.A, 0, count)
		var fieldErrors []FieldError
		for i := 0; i < count; i++ {
			value, errs := s.synthesizeValue(path, element)
			arr = append(arr, value)
			fieldErrors = append(fieldErrors, errs...)
		}
		return arr, fieldErrors
	}

	return s.synthesizeValue(path, resolved)
}

func (s *DocumentSynthesizer) synthesizeValue(path string, tag constants.TypeTag) (interface{}, []FieldError) {
	switch tag {
	case constants.TypeGeoPoint:
		return s.geo.Point(), nil
	case constants.TypeGeoLineString:
		return s.geo.LineString(), nil
	case constants.TypeGeoPolygon:
		return s.geo.Polygon(), nil
	case constants.TypeObject:
		// Leaf object with no captured child paths: a small placeholder
		// sub-document keeps the field present and object-typed.
		return bson.M{"nested_key": gofakeit.Word()}, nil
	}

	var raw interface{}
	if strategy, ok := s.strategies[tag]; ok {
		value, err := strategy()
		if err != nil {
			return nil, []FieldError{{Path: path, Err: fmt.Errorf("%w: generation failed: %v", ErrCoercionFailure, err)}}
		}
		raw = value
	}

	coerced, err := s.coercer.Coerce(tag, raw)
	if err != nil {
		return nil, []FieldError{{Path: path, Err: err}}
	}
	return coerced, nil
}

// arrayElementTag picks the recorded element type for an array field: the
// first tag that is not the array marker itself, null or unknown.
func arrayElementTag(tags []constants.TypeTag) constants.TypeTag {
	for _, tag := range tags {
		switch tag {
		case constants.TypeArray, constants.TypeNull, constants.TypeUnknown:
			continue
		default:
			return tag
		}
	}
	return constants.TypeUnknown
}
