package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultCollection = "kv_entries"

// collection is the subset of *mongo.Collection used by the store.
type collection interface {
	FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult
	UpdateOne(ctx context.Context, filter any, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// KVStore keeps one document per key: {_id: key, value, updated_at}.
type KVStore struct {
	coll collection
	ping func(ctx context.Context) error
	now  func() time.Time
}

type kvDocument struct {
	Key       string `bson:"_id"`
	Value     string `bson:"value"`
	UpdatedAt int64  `bson:"updated_at"`
}

// NewKVStore uses the named collection of db; an empty name uses
// defaultCollection.
func NewKVStore(db *mongo.Database, name string) *KVStore {
	if name == "" {
		name = defaultCollection
	}
	return &KVStore{
		coll: db.Collection(name),
		ping: func(ctx context.Context) error { return db.Client().Ping(ctx, nil) },
		now:  time.Now,
	}
}

func (s *KVStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var doc kvDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("find entry: %w", err)
	}
	return doc.Value, true, nil
}

// SetItem upserts the document for key.
func (s *KVStore) SetItem(ctx context.Context, key, value string) error {
	update := bson.M{"$set": bson.M{
		"value":      value,
		"updated_at": s.now().UTC().Unix(),
	}}
	if _, err := s.coll.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}
	return nil
}

func (s *KVStore) RemoveItem(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

func (s *KVStore) Ping(ctx context.Context) error {
	return s.ping(ctx)
}
