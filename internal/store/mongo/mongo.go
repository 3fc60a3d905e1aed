// Package mongo provides the MongoDB implementation of the store interfaces.
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frameworkhub/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	buildLogsCollection     = "build_logs"
	generatedCodeCollection = "generated_code"
)

// Config holds MongoDB connection configuration.
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig(uri, database string) *Config {
	return &Config{
		URI:            uri,
		Database:       database,
		ConnectTimeout: 10 * time.Second,
	}
}

// MongoStore implements the Store interface using MongoDB.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger

	buildLogs     *BuildLogStore
	generatedCode *GeneratedCodeStore
}

// NewMongoStore connects to MongoDB, verifies the connection and ensures the
// schema-level indexes exist.
func NewMongoStore(cfg *Config, logger *slog.Logger) (*MongoStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)
	s := &MongoStore{
		client: client,
		db:     db,
		logger: logger,
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("creating indexes: %w", err)
	}

	s.buildLogs = &BuildLogStore{coll: db.Collection(buildLogsCollection), logger: logger}
	s.generatedCode = &GeneratedCodeStore{coll: db.Collection(generatedCodeCollection), logger: logger}

	logger.Info("connected to MongoDB", "database", cfg.Database)
	return s, nil
}

// ensureIndexes creates the only schema-level guarantees the store must
// enforce: a unique index on build_logs.build_id and an index on
// generated_code.created_at.
func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(buildLogsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "build_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("build_id index: %w", err)
	}

	_, err = s.db.Collection(generatedCodeCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("created_at index: %w", err)
	}
	return nil
}

// BuildLogs returns the BuildLogStore.
func (s *MongoStore) BuildLogs() store.BuildLogStore {
	return s.buildLogs
}

// GeneratedCode returns the GeneratedCodeStore.
func (s *MongoStore) GeneratedCode() store.GeneratedCodeStore {
	return s.generatedCode
}

// Ping verifies database connectivity.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// insertedHex extracts the hex form of the ObjectID assigned by an insert.
func insertedHex(res *mongo.InsertOneResult) (string, error) {
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted ID type %T", res.InsertedID)
	}
	return id.Hex(), nil
}
