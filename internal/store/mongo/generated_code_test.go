package mongo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/frameworkhub/backend/internal/models"
	"github.com/frameworkhub/backend/internal/store"
)

// Exercises the live eviction query (ascending created_at sort, limit, $in
// delete) against a real MongoDB instance. Skipped unless MONGODB_TEST_URI
// is set.
func TestGeneratedCodeCreateEvictsOldest(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("set MONGODB_TEST_URI to run MongoDB integration tests")
	}

	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := NewMongoStore(DefaultConfig(uri, "framework_hub_test"), log)
	if err != nil {
		t.Fatalf("connecting to MongoDB: %v", err)
	}
	t.Cleanup(func() {
		_, _ = st.GeneratedCode().DeleteAll(ctx)
		_ = st.Close(ctx)
	})

	gc := st.GeneratedCode()
	if _, err := gc.DeleteAll(ctx); err != nil {
		t.Fatalf("clearing collection: %v", err)
	}

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	total := store.GeneratedCodeCap + 2
	for i := 1; i <= total; i++ {
		_, err := gc.Create(ctx, &models.GeneratedCode{
			Language:    "go",
			Type:        "function",
			Code:        "func main() {}",
			Description: fmt.Sprintf("c%d", i),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("creating entry %d: %v", i, err)
		}
	}

	count, err := gc.Count(ctx)
	if err != nil {
		t.Fatalf("counting entries: %v", err)
	}
	if count != store.GeneratedCodeCap {
		t.Fatalf("count = %d, want %d", count, store.GeneratedCodeCap)
	}

	entries, err := gc.List(ctx, store.Page{Limit: store.GeneratedCodeCap})
	if err != nil {
		t.Fatalf("listing entries: %v", err)
	}
	if len(entries) != store.GeneratedCodeCap {
		t.Fatalf("got %d entries, want %d", len(entries), store.GeneratedCodeCap)
	}
	// Newest first; the two oldest entries were evicted.
	for i, entry := range entries {
		want := fmt.Sprintf("c%d", total-i)
		if entry.Description != want {
			t.Errorf("entries[%d] = %q, want %q", i, entry.Description, want)
		}
	}
}
