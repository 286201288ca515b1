package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"gymtrack/gym-app/internal/store"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

const recordsCollectionName = "records"

// ConnectDB establishes a connection to MongoDB using the provided URI.
// It returns the mongo.Client which can be used to access databases and collections.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify the connection actually works; the initial
	// connect can succeed against an unresponsive server.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// recordDocument is how one store key is persisted: a single document per
// key, its payload replaced wholesale on every write.
type recordDocument struct {
	Key  string `bson:"_id"`
	Data []byte `bson:"data"`
}

// mongoStore implements store.RecordStore over a single MongoDB collection.
type mongoStore struct {
	collection *mongo.Collection
}

// New creates a record store backed by the "records" collection of db.
func New(db *mongo.Database) store.RecordStore {
	return &mongoStore{collection: db.Collection(recordsCollectionName)}
}

func (s *mongoStore) Read(ctx context.Context, key string) ([]byte, error) {
	var doc recordDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Never written; normal outcome.
			return nil, nil
		}
		return nil, err
	}
	return doc.Data, nil
}

func (s *mongoStore) WriteAll(ctx context.Context, key string, data []byte) error {
	doc := recordDocument{Key: key, Data: data}
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, opts)
	return err
}

func (s *mongoStore) Delete(ctx context.Context, key string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}
