package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"restorebot/internal/models"
)

// operationTimeout bounds each individual write against the target store.
const operationTimeout = 30 * time.Second

// Writer adapts the MongoDB client to the restoration engine's target-store
// capability: insert documents, create indexes, drop collections.
type Writer struct {
	client *MongoDBClient
}

func NewWriter(client *MongoDBClient) *Writer {
	return &Writer{client: client}
}

func (w *Writer) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()
	return w.client.Client.Ping(ctx, nil)
}

func (w *Writer) DropCollection(ctx context.Context, database, collection string) error {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()
	return w.client.GetCollection(database, collection).Drop(ctx)
}

func (w *Writer) InsertDocuments(ctx context.Context, database, collection string, docs []bson.M) error {
	if len(docs) == 0 {
		return fmt.Errorf("no documents to insert into %s.%s", database, collection)
	}
	payload := make([]interface{}, 0, len(docs))
	for _, doc := range docs {
		payload = append(payload, doc)
	}

	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()
	_, err := w.client.GetCollection(database, collection).InsertMany(ctx, payload)
	return err
}

func (w *Writer) CreateIndex(ctx context.Context, database, collection string, spec models.IndexSpec) error {
	if len(spec.Keys) == 0 {
		return fmt.Errorf("index %q has no key pattern", spec.Name)
	}

	keys := bson.D{}
	for _, key := range spec.Keys {
		keys = append(keys, bson.E{Key: key.Field, Value: key.Direction})
	}

	indexOptions := options.Index()
	if spec.Name != "" {
		indexOptions.SetName(spec.Name)
	}
	if spec.Options.Unique {
		indexOptions.SetUnique(true)
	}
	if spec.Options.Sparse {
		indexOptions.SetSparse(true)
	}

	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()
	_, err := w.client.GetCollection(database, collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    keys,
		Options: indexOptions,
	})
	return err
}
