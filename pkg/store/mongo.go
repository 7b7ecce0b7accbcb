package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists run records to a MongoDB collection, for the serve
// command's durable, multi-instance deployment tier.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoConfig configures a MongoStore connection.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

func (c MongoConfig) withDefaults() MongoConfig {
	if c.Database == "" {
		c.Database = "ideaplaceex"
	}
	if c.Collection == "" {
		c.Collection = "run_records"
	}
	return c
}

// NewMongoStore connects to cfg.URI and verifies it with a Ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	cfg = cfg.withDefaults()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	return &MongoStore{client: client, collection: coll}, nil
}

func (s *MongoStore) Put(ctx context.Context, rec *RunRecord) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": rec.RunID}, rec, opts)
	return err
}

func (s *MongoStore) Get(ctx context.Context, runID string) (*RunRecord, error) {
	var rec RunRecord
	err := s.collection.FindOne(ctx, bson.M{"_id": runID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *MongoStore) Delete(ctx context.Context, runID string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": runID})
	return err
}

func (s *MongoStore) List(ctx context.Context, since time.Time, limit int) ([]*RunRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.collection.Find(ctx, bson.M{"started_at": bson.M{"$gte": since}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*RunRecord
	for cur.Next(ctx) {
		var rec RunRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, cur.Err()
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
