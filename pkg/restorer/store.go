package restorer

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"restorebot/internal/models"
)

// TargetStore is the write capability of the target database. Wire-level
// driver mechanics, timeouts and authentication live behind this boundary;
// failures surface here as ordinary errors.
type TargetStore interface {
	Ping(ctx context.Context) error
	DropCollection(ctx context.Context, database, collection string) error
	InsertDocuments(ctx context.Context, database, collection string, docs []bson.M) error
	CreateIndex(ctx context.Context, database, collection string, spec models.IndexSpec) error
}

// CollectionDescriptor identifies one collection's captured metadata on disk.
type CollectionDescriptor struct {
	Database   string
	Collection string
	Dir        string
}

// MetadataLoader discovers collection descriptors under the metadata
// directory and loads the bundle for one descriptor.
type MetadataLoader interface {
	Discover() ([]CollectionDescriptor, error)
	Load(desc CollectionDescriptor) (*models.CollectionBundle, error)
}
