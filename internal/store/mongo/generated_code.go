package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frameworkhub/backend/internal/models"
	"github.com/frameworkhub/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GeneratedCodeStore implements store.GeneratedCodeStore using MongoDB.
type GeneratedCodeStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// Create inserts a new generated code entry, evicting the oldest entries
// first when the collection is at or over the retention cap. The sequence is
// count, evict, insert; it is not transactional, so concurrent creates can
// transiently overshoot the cap.
func (s *GeneratedCodeStore) Create(ctx context.Context, code *models.GeneratedCode) (string, error) {
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now().UTC()
	}

	count, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return "", fmt.Errorf("counting generated code: %w", err)
	}

	if evict := store.EvictionCount(count); evict > 0 {
		if err := s.evictOldest(ctx, evict); err != nil {
			return "", err
		}
	}

	res, err := s.coll.InsertOne(ctx, code)
	if err != nil {
		return "", fmt.Errorf("inserting generated code: %w", err)
	}
	return insertedHex(res)
}

// evictOldest removes exactly n entries, oldest created_at first. Ties on
// created_at resolve in _id order, which is stable.
func (s *GeneratedCodeStore) evictOldest(ctx context.Context, n int64) error {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(n).
		SetProjection(bson.M{"_id": 1})

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("finding oldest generated code: %w", err)
	}
	defer cursor.Close(ctx)

	var oldest []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &oldest); err != nil {
		return fmt.Errorf("decoding oldest generated code: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(oldest))
	for _, entry := range oldest {
		ids = append(ids, entry.ID)
	}

	if _, err := s.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return fmt.Errorf("evicting generated code: %w", err)
	}

	s.logger.Info("evicted generated code entries", "count", len(ids))
	return nil
}

// List retrieves entries, newest created_at first.
func (s *GeneratedCodeStore) List(ctx context.Context, page store.Page) ([]*models.GeneratedCode, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(page.Skip).
		SetLimit(page.Limit)

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing generated code: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []*models.GeneratedCode{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decoding generated code: %w", err)
	}
	return entries, nil
}

// Get retrieves an entry by its store-assigned ID.
func (s *GeneratedCodeStore) Get(ctx context.Context, id string) (*models.GeneratedCode, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", store.ErrInvalidID, id)
	}

	var entry models.GeneratedCode
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("fetching generated code: %w", err)
	}
	return &entry, nil
}

// Delete removes an entry by ID.
func (s *GeneratedCodeStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", store.ErrInvalidID, id)
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("deleting generated code: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteAll removes every entry and returns the deleted count.
func (s *GeneratedCodeStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("clearing generated code: %w", err)
	}
	return res.DeletedCount, nil
}

// Count returns the number of live entries.
func (s *GeneratedCodeStore) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("counting generated code: %w", err)
	}
	return n, nil
}
