package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"restorebot/internal/constants"
)

// FieldSchema maps a dot-separated field path to the type tags observed for
// it, in extraction-time discovery order. More than one tag means the field
// was polymorphic across the sampled documents.
type FieldSchema map[string][]constants.TypeTag

// CollectionBundle is the captured metadata for one collection. Loaded once,
// owned exclusively by the restoration that consumes it.
type CollectionBundle struct {
	Database       string      `json:"database"`
	Collection     string      `json:"collection"`
	SampleDocument bson.M      `json:"sample_document,omitempty"`
	Schema         FieldSchema `json:"schema,omitempty"`
	Indexes        []IndexSpec `json:"indexes,omitempty"`
	SampleSize     int         `json:"sample_size"`
	TotalDocuments int64       `json:"total_documents"`
}

// HasSample reports whether a usable sample document was captured.
func (b *CollectionBundle) HasSample() bool {
	return len(b.SampleDocument) > 0
}

// HasSchema reports whether a usable field-type schema was captured.
func (b *CollectionBundle) HasSchema() bool {
	return len(b.Schema) > 0
}

// IndexKey is one (field, direction) element of an index key pattern.
// Direction is 1/-1 for btree keys, or a string such as "2dsphere" or "text".
type IndexKey struct {
	Field     string
	Direction interface{}
}

// IndexOptions carries the index flags the extractor records.
type IndexOptions struct {
	Unique bool `json:"unique,omitempty"`
	Sparse bool `json:"sparse,omitempty"`
}

// IndexSpec is one captured index. Specs are applied independently; nothing
// ties them to the schema's field set.
type IndexSpec struct {
	Name    string
	Keys    []IndexKey
	Options IndexOptions
}

// UnmarshalJSON accepts both shapes the extraction side produces: the
// normalized form {"name", "keys": [["field", 1], ...], "options": {...}}
// and the raw listIndexes form {"name", "key": {"field": 1}, "unique": ...}.
func (s *IndexSpec) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name    string          `json:"name"`
		Keys    [][]interface{} `json:"keys"`
		Key     json.RawMessage `json:"key"`
		Options *IndexOptions   `json:"options"`
		Unique  bool            `json:"unique"`
		Sparse  bool            `json:"sparse"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Name = raw.Name
	s.Keys = nil

	switch {
	case len(raw.Keys) > 0:
		for _, pair := range raw.Keys {
			if len(pair) != 2 {
				return fmt.Errorf("index %q: key pair must be [field, direction], got %v", raw.Name, pair)
			}
			field, ok := pair[0].(string)
			if !ok {
				return fmt.Errorf("index %q: key field must be a string, got %T", raw.Name, pair[0])
			}
			s.Keys = append(s.Keys, IndexKey{Field: field, Direction: normalizeDirection(pair[1])})
		}
	case len(raw.Key) > 0 && string(raw.Key) != "null":
		keys, err := decodeKeyDocument(raw.Name, raw.Key)
		if err != nil {
			return err
		}
		s.Keys = keys
	}

	if raw.Options != nil {
		s.Options = *raw.Options
	} else {
		s.Options = IndexOptions{Unique: raw.Unique, Sparse: raw.Sparse}
	}
	return nil
}

// decodeKeyDocument walks the raw key object token by token so a compound
// index keeps the field order it was captured with. Unmarshalling into a map
// would randomize it, and {a:1,b:1} is not the same index as {b:1,a:1}.
func decodeKeyDocument(name string, data []byte) ([]IndexKey, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("index %q: %w", name, err)
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("index %q: key pattern must be an object, got %v", name, tok)
	}

	var keys []IndexKey
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("index %q: %w", name, err)
		}
		field, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("index %q: key field must be a string, got %T", name, tok)
		}
		var direction interface{}
		if err := dec.Decode(&direction); err != nil {
			return nil, fmt.Errorf("index %q: %w", name, err)
		}
		keys = append(keys, IndexKey{Field: field, Direction: normalizeDirection(direction)})
	}
	return keys, nil
}

// normalizeDirection turns JSON numbers back into the int32 the driver
// expects for btree directions, leaving string directions ("2dsphere",
// "text") untouched.
func normalizeDirection(v interface{}) interface{} {
	if f, ok := v.(float64); ok {
		return int32(f)
	}
	return v
}
