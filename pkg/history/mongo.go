package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection holding records.
const CollectionName = "compilations"

// MongoStore stores records in MongoDB.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and ensures a descending index on
// created_at.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is required")
	}
	if database == "" {
		database = "typst"
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(database).Collection(CollectionName)
	_, err = coll.Indexes().CreateOne(connectCtx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) Append(ctx context.Context, rec Record) error {
	normalize(&rec)
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (s *MongoStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limitOrDefault(limit)))

	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}
	var records []Record
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
