package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go.mongodb.org/mongo-driver/bson"

	"restorebot/internal/constants"
	"restorebot/internal/models"
	"restorebot/pkg/restorer"
)

// Loader reads per-collection metadata bundles from the directory layout the
// extraction side produces: <root>/<database>/<collection>/ holding
// schema_and_indexes.json, example_document.json and informational files.
type Loader struct {
	root string
}

func NewLoader(root string) *Loader {
	return &Loader{root: root}
}

// Discover walks the metadata root and returns one descriptor per collection
// directory. Non-directories are skipped, matching the extraction layout.
func (l *Loader) Discover() ([]restorer.CollectionDescriptor, error) {
	databases, err := os.ReadDir(l.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata directory %q: %w", l.root, err)
	}

	var descriptors []restorer.CollectionDescriptor
	for _, db := range databases {
		if !db.IsDir() {
			continue
		}
		dbDir := filepath.Join(l.root, db.Name())
		collections, err := os.ReadDir(dbDir)
		if err != nil {
			return nil, fmt.Errorf("failed to read database directory %q: %w", dbDir, err)
		}
		for _, coll := range collections {
			if !coll.IsDir() {
				continue
			}
			descriptors = append(descriptors, restorer.CollectionDescriptor{
				Database:   db.Name(),
				Collection: coll.Name(),
				Dir:        filepath.Join(dbDir, coll.Name()),
			})
		}
	}
	log.Printf("MetadataLoader -> Discover -> Found %d collections under %s", len(descriptors), l.root)
	return descriptors, nil
}

// Load builds the bundle for one collection. Missing and empty files are
// tolerated and skipped; malformed content is corrupt metadata and fails the
// collection. A bundle with neither sample nor schema is missing metadata.
func (l *Loader) Load(desc restorer.CollectionDescriptor) (*models.CollectionBundle, error) {
	bundle := &models.CollectionBundle{
		Database:   desc.Database,
		Collection: desc.Collection,
	}

	samplePath := filepath.Join(desc.Dir, constants.MetadataSampleFile)
	if data, err := readMetadataFile(samplePath); err != nil {
		return nil, err
	} else if data != nil {
		var wrapper struct {
			SampleDocument bson.M `json:"sample_document"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", restorer.ErrCorruptMetadata, samplePath, err)
		}
		bundle.SampleDocument = wrapper.SampleDocument
	}

	schemaPath := filepath.Join(desc.Dir, constants.MetadataSchemaFile)
	if data, err := readMetadataFile(schemaPath); err != nil {
		return nil, err
	} else if data != nil {
		var wrapper struct {
			Schema   map[string][]string `json:"schema"`
			Indexes  []models.IndexSpec  `json:"indexes"`
			Metadata struct {
				SampleSize     int   `json:"sampleSize"`
				TotalDocuments int64 `json:"totalDocuments"`
			} `json:"metadata"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", restorer.ErrCorruptMetadata, schemaPath, err)
		}

		if len(wrapper.Schema) > 0 {
			bundle.Schema = make(models.FieldSchema, len(wrapper.Schema))
			for path, raw := range wrapper.Schema {
				// The open extractor vocabulary is mapped onto the closed
				// tag set here, at the loading boundary. An empty recorded
				// set becomes unknown so it fails loudly per field instead
				// of being guessed at.
				if len(raw) == 0 {
					bundle.Schema[path] = []constants.TypeTag{constants.TypeUnknown}
					continue
				}
				bundle.Schema[path] = constants.ParseTypeTags(raw)
			}
		}
		bundle.Indexes = wrapper.Indexes
		bundle.SampleSize = wrapper.Metadata.SampleSize
		bundle.TotalDocuments = wrapper.Metadata.TotalDocuments
	}

	if !bundle.HasSample() && !bundle.HasSchema() {
		return nil, fmt.Errorf("%w: %s", restorer.ErrMissingMetadata, desc.Dir)
	}
	return bundle, nil
}

// readMetadataFile loads one bundle file. Missing and empty files return nil
// without error, mirroring the extraction side's partial captures.
func readMetadataFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("MetadataLoader -> readMetadataFile -> %s not found, skipping", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		log.Printf("MetadataLoader -> readMetadataFile -> %s is empty, skipping", path)
		return nil, nil
	}
	return data, nil
}
