package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexSpecUnmarshalNormalizedShape(t *testing.T) {
	var spec IndexSpec
	err := json.Unmarshal([]byte(`{
		"name": "email_1_createdAt_-1",
		"keys": [["email", 1], ["createdAt", -1]],
		"options": {"unique": true}
	}`), &spec)
	require.NoError(t, err)

	assert.Equal(t, "email_1_createdAt_-1", spec.Name)
	assert.Equal(t, []IndexKey{
		{Field: "email", Direction: int32(1)},
		{Field: "createdAt", Direction: int32(-1)},
	}, spec.Keys)
	assert.True(t, spec.Options.Unique)
	assert.False(t, spec.Options.Sparse)
}

func TestIndexSpecUnmarshalRawListIndexesShape(t *testing.T) {
	var spec IndexSpec
	err := json.Unmarshal([]byte(`{
		"name": "location_2dsphere",
		"key": {"location": "2dsphere"},
		"sparse": true
	}`), &spec)
	require.NoError(t, err)

	assert.Equal(t, "location_2dsphere", spec.Name)
	require.Len(t, spec.Keys, 1)
	assert.Equal(t, IndexKey{Field: "location", Direction: "2dsphere"}, spec.Keys[0])
	assert.True(t, spec.Options.Sparse)
	assert.False(t, spec.Options.Unique)
}

func TestIndexSpecUnmarshalRawShapeKeepsCompoundKeyOrder(t *testing.T) {
	payload := []byte(`{
		"name": "a_1_b_-1_c_2dsphere_d_1_e_1",
		"key": {"a": 1, "b": -1, "c": "2dsphere", "d": 1, "e": 1}
	}`)
	want := []IndexKey{
		{Field: "a", Direction: int32(1)},
		{Field: "b", Direction: int32(-1)},
		{Field: "c", Direction: "2dsphere"},
		{Field: "d", Direction: int32(1)},
		{Field: "e", Direction: int32(1)},
	}

	// Field order must match the captured byte stream on every decode.
	for i := 0; i < 50; i++ {
		var spec IndexSpec
		require.NoError(t, json.Unmarshal(payload, &spec))
		require.Equal(t, want, spec.Keys, "decode %d reordered the key pattern", i)
	}
}

func TestIndexSpecUnmarshalRejectsNonObjectKeyPattern(t *testing.T) {
	var spec IndexSpec
	err := json.Unmarshal([]byte(`{"name": "broken", "key": [["a", 1]]}`), &spec)
	assert.Error(t, err)
}

func TestIndexSpecUnmarshalRejectsBadKeyPair(t *testing.T) {
	var spec IndexSpec
	err := json.Unmarshal([]byte(`{"name": "broken", "keys": [["field"]]}`), &spec)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"name": "broken", "keys": [[1, 1]]}`), &spec)
	assert.Error(t, err)
}

func TestBundleSourcePredicates(t *testing.T) {
	bundle := &CollectionBundle{}
	assert.False(t, bundle.HasSample())
	assert.False(t, bundle.HasSchema())

	bundle.SampleDocument = map[string]interface{}{"name": "ada"}
	assert.True(t, bundle.HasSample())

	bundle.Schema = FieldSchema{"name": nil}
	assert.True(t, bundle.HasSchema())
}
