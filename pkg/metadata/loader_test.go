package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restorebot/internal/constants"
	"restorebot/internal/models"
	"restorebot/pkg/restorer"
)

func writeBundleFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDiscoverWalksDatabaseAndCollectionDirectories(t *testing.T) {
	root := t.TempDir()
	writeBundleFile(t, filepath.Join(root, "appdb", "users"), constants.MetadataSchemaFile, "{}")
	writeBundleFile(t, filepath.Join(root, "appdb", "orders"), constants.MetadataSchemaFile, "{}")
	writeBundleFile(t, filepath.Join(root, "analytics", "events"), constants.MetadataSchemaFile, "{}")

	// Stray files at either level are not collections.
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "appdb", "run.log"), []byte("x"), 0o644))

	descriptors, err := NewLoader(root).Discover()
	require.NoError(t, err)
	require.Len(t, descriptors, 3)

	found := make(map[string]string)
	for _, desc := range descriptors {
		found[desc.Database+"."+desc.Collection] = desc.Dir
	}
	assert.Contains(t, found, "appdb.users")
	assert.Contains(t, found, "appdb.orders")
	assert.Contains(t, found, "analytics.events")
	assert.Equal(t, filepath.Join(root, "appdb", "users"), found["appdb.users"])
}

func TestDiscoverMissingRootFails(t *testing.T) {
	_, err := NewLoader("/nonexistent/metadata").Discover()
	assert.Error(t, err)
}

func TestLoadParsesSchemaIndexesAndSample(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "appdb", "users")
	writeBundleFile(t, dir, constants.MetadataSchemaFile, `{
		"schema": {
			"name": ["string"],
			"age": ["int", "double"],
			"location": ["GeoJSON Point"],
			"balance": ["Decimal128"],
			"mystery": []
		},
		"indexes": [
			{"name": "name_1", "keys": [["name", 1]], "options": {"unique": true}},
			{"name": "location_2dsphere", "key": {"location": "2dsphere"}, "sparse": true}
		],
		"metadata": {"sampleSize": 100, "totalDocuments": 4521}
	}`)
	writeBundleFile(t, dir, constants.MetadataSampleFile, `{
		"sample_document": {"name": "ada", "age": 36}
	}`)

	bundle, err := NewLoader(root).Load(restorer.CollectionDescriptor{
		Database: "appdb", Collection: "users", Dir: dir,
	})
	require.NoError(t, err)

	assert.True(t, bundle.HasSample())
	assert.Equal(t, "ada", bundle.SampleDocument["name"])

	require.True(t, bundle.HasSchema())
	assert.Equal(t, []constants.TypeTag{constants.TypeString}, bundle.Schema["name"])
	assert.Equal(t, []constants.TypeTag{constants.TypeInt, constants.TypeDouble}, bundle.Schema["age"])
	assert.Equal(t, []constants.TypeTag{constants.TypeGeoPoint}, bundle.Schema["location"])
	assert.Equal(t, []constants.TypeTag{constants.TypeDecimal128}, bundle.Schema["balance"])
	assert.Equal(t, []constants.TypeTag{constants.TypeUnknown}, bundle.Schema["mystery"])

	require.Len(t, bundle.Indexes, 2)
	assert.Equal(t, "name_1", bundle.Indexes[0].Name)
	assert.Equal(t, []models.IndexKey{{Field: "name", Direction: int32(1)}}, bundle.Indexes[0].Keys)
	assert.True(t, bundle.Indexes[0].Options.Unique)
	assert.Equal(t, "location_2dsphere", bundle.Indexes[1].Name)
	assert.Equal(t, []models.IndexKey{{Field: "location", Direction: "2dsphere"}}, bundle.Indexes[1].Keys)
	assert.True(t, bundle.Indexes[1].Options.Sparse)

	assert.Equal(t, 100, bundle.SampleSize)
	assert.Equal(t, int64(4521), bundle.TotalDocuments)
}

func TestLoadToleratesMissingAndEmptyFiles(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "appdb", "users")

	// Sample file absent, schema file whitespace-only, but the schema holds.
	writeBundleFile(t, dir, constants.MetadataSampleFile, "  \n")
	writeBundleFile(t, dir, constants.MetadataSchemaFile, `{"schema": {"name": ["string"]}}`)

	bundle, err := NewLoader(root).Load(restorer.CollectionDescriptor{
		Database: "appdb", Collection: "users", Dir: dir,
	})
	require.NoError(t, err)
	assert.False(t, bundle.HasSample())
	assert.True(t, bundle.HasSchema())
}

func TestLoadNeitherSourceIsMissingMetadata(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "appdb", "ghost")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	_, err := NewLoader(root).Load(restorer.CollectionDescriptor{
		Database: "appdb", Collection: "ghost", Dir: dir,
	})
	assert.ErrorIs(t, err, restorer.ErrMissingMetadata)
}

func TestLoadMalformedJSONIsCorruptMetadata(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "appdb", "users")
	writeBundleFile(t, dir, constants.MetadataSchemaFile, `{"schema": {`)

	_, err := NewLoader(root).Load(restorer.CollectionDescriptor{
		Database: "appdb", Collection: "users", Dir: dir,
	})
	assert.ErrorIs(t, err, restorer.ErrCorruptMetadata)

	// A corrupt schema file fails the collection even when the sample is
	// intact; silently shrinking the bundle would hide the corruption.
	writeBundleFile(t, dir, constants.MetadataSampleFile, `{"sample_document": {"ok": true}}`)
	_, err = NewLoader(root).Load(restorer.CollectionDescriptor{
		Database: "appdb", Collection: "users", Dir: dir,
	})
	assert.ErrorIs(t, err, restorer.ErrCorruptMetadata)
}
