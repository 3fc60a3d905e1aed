package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/frameworkhub/backend/internal/models"
	"github.com/frameworkhub/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BuildLogStore implements store.BuildLogStore using MongoDB.
type BuildLogStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// Create inserts a new build log.
func (s *BuildLogStore) Create(ctx context.Context, log *models.BuildLog) (string, error) {
	res, err := s.coll.InsertOne(ctx, log)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%w: build_id %q", store.ErrDuplicateKey, log.BuildID)
		}
		return "", fmt.Errorf("inserting build log: %w", err)
	}
	return insertedHex(res)
}

// List retrieves build logs matching the filter, newest start_time first.
func (s *BuildLogStore) List(ctx context.Context, filter store.BuildLogFilter, page store.Page) ([]*models.BuildLog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: -1}}).
		SetSkip(page.Skip).
		SetLimit(page.Limit)

	cursor, err := s.coll.Find(ctx, buildLogQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("listing build logs: %w", err)
	}
	defer cursor.Close(ctx)

	logs := []*models.BuildLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("decoding build logs: %w", err)
	}
	return logs, nil
}

// Get retrieves a build log by its caller-assigned build_id.
func (s *BuildLogStore) Get(ctx context.Context, buildID string) (*models.BuildLog, error) {
	var log models.BuildLog
	err := s.coll.FindOne(ctx, bson.M{"build_id": buildID}).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("fetching build log: %w", err)
	}
	return &log, nil
}

// Update applies the non-nil fields of upd to the matching build log.
func (s *BuildLogStore) Update(ctx context.Context, buildID string, upd *models.BuildLogUpdate) error {
	if upd.IsEmpty() {
		// Mongo rejects an empty $set; just report whether the record exists.
		n, err := s.coll.CountDocuments(ctx, bson.M{"build_id": buildID})
		if err != nil {
			return fmt.Errorf("updating build log: %w", err)
		}
		if n == 0 {
			return store.ErrNotFound
		}
		return nil
	}

	set := bson.M{}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.EndTime != nil {
		set["end_time"] = *upd.EndTime
	}
	if upd.OutputLog != nil {
		set["output_log"] = *upd.OutputLog
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"build_id": buildID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("updating build log: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Delete removes a build log by build_id.
func (s *BuildLogStore) Delete(ctx context.Context, buildID string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"build_id": buildID})
	if err != nil {
		return fmt.Errorf("deleting build log: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteAll removes every build log and returns the deleted count.
func (s *BuildLogStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("clearing build logs: %w", err)
	}
	return res.DeletedCount, nil
}

// Count returns the number of build logs matching the filter.
func (s *BuildLogStore) Count(ctx context.Context, filter store.BuildLogFilter) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, buildLogQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("counting build logs: %w", err)
	}
	return n, nil
}

// buildLogQuery translates a filter into a Mongo query. Matching is exact.
func buildLogQuery(filter store.BuildLogFilter) bson.M {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	return query
}
