package handlers

import (
	"context"
	"sort"

	"github.com/frameworkhub/backend/internal/models"
	"github.com/frameworkhub/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mockStore implements store.Store in memory for handler testing.
type mockStore struct {
	buildLogs     *mockBuildLogStore
	generatedCode *mockGeneratedCodeStore
	pingErr       error
}

func newMockStore() *mockStore {
	return &mockStore{
		buildLogs:     &mockBuildLogStore{byBuildID: map[string]*models.BuildLog{}},
		generatedCode: &mockGeneratedCodeStore{},
	}
}

func (m *mockStore) BuildLogs() store.BuildLogStore          { return m.buildLogs }
func (m *mockStore) GeneratedCode() store.GeneratedCodeStore { return m.generatedCode }
func (m *mockStore) Ping(ctx context.Context) error          { return m.pingErr }
func (m *mockStore) Close(ctx context.Context) error         { return nil }

// mockBuildLogStore keeps build logs keyed by build_id.
type mockBuildLogStore struct {
	byBuildID map[string]*models.BuildLog
}

func (m *mockBuildLogStore) Create(ctx context.Context, log *models.BuildLog) (string, error) {
	if _, exists := m.byBuildID[log.BuildID]; exists {
		return "", store.ErrDuplicateKey
	}
	log.ID = primitive.NewObjectID()
	m.byBuildID[log.BuildID] = log
	return log.ID.Hex(), nil
}

func (m *mockBuildLogStore) List(ctx context.Context, filter store.BuildLogFilter, page store.Page) ([]*models.BuildLog, error) {
	logs := []*models.BuildLog{}
	for _, log := range m.byBuildID {
		if filter.Status != "" && log.Status != filter.Status {
			continue
		}
		if filter.Type != "" && log.Type != filter.Type {
			continue
		}
		logs = append(logs, log)
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].StartTime.After(logs[j].StartTime)
	})
	return paginate(logs, page), nil
}

func (m *mockBuildLogStore) Get(ctx context.Context, buildID string) (*models.BuildLog, error) {
	log, ok := m.byBuildID[buildID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return log, nil
}

func (m *mockBuildLogStore) Update(ctx context.Context, buildID string, upd *models.BuildLogUpdate) error {
	log, ok := m.byBuildID[buildID]
	if !ok {
		return store.ErrNotFound
	}
	if upd.Status != nil {
		log.Status = *upd.Status
	}
	if upd.EndTime != nil {
		log.EndTime = upd.EndTime
	}
	if upd.OutputLog != nil {
		log.OutputLog = upd.OutputLog
	}
	return nil
}

func (m *mockBuildLogStore) Delete(ctx context.Context, buildID string) error {
	if _, ok := m.byBuildID[buildID]; !ok {
		return store.ErrNotFound
	}
	delete(m.byBuildID, buildID)
	return nil
}

func (m *mockBuildLogStore) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(m.byBuildID))
	m.byBuildID = map[string]*models.BuildLog{}
	return n, nil
}

func (m *mockBuildLogStore) Count(ctx context.Context, filter store.BuildLogFilter) (int64, error) {
	var n int64
	for _, log := range m.byBuildID {
		if filter.Status != "" && log.Status != filter.Status {
			continue
		}
		if filter.Type != "" && log.Type != filter.Type {
			continue
		}
		n++
	}
	return n, nil
}

// mockGeneratedCodeStore keeps entries in a slice and mirrors the retention
// contract of the real store.
type mockGeneratedCodeStore struct {
	entries []*models.GeneratedCode
}

func (m *mockGeneratedCodeStore) Create(ctx context.Context, code *models.GeneratedCode) (string, error) {
	if evict := store.EvictionCount(int64(len(m.entries))); evict > 0 {
		m.sortOldestFirst()
		m.entries = m.entries[evict:]
	}
	code.ID = primitive.NewObjectID()
	m.entries = append(m.entries, code)
	return code.ID.Hex(), nil
}

func (m *mockGeneratedCodeStore) List(ctx context.Context, page store.Page) ([]*models.GeneratedCode, error) {
	entries := append([]*models.GeneratedCode{}, m.entries...)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return paginate(entries, page), nil
}

func (m *mockGeneratedCodeStore) Get(ctx context.Context, id string) (*models.GeneratedCode, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrInvalidID
	}
	for _, entry := range m.entries {
		if entry.ID == oid {
			return entry, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockGeneratedCodeStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrInvalidID
	}
	for i, entry := range m.entries {
		if entry.ID == oid {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *mockGeneratedCodeStore) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(m.entries))
	m.entries = nil
	return n, nil
}

func (m *mockGeneratedCodeStore) Count(ctx context.Context) (int64, error) {
	return int64(len(m.entries)), nil
}

func (m *mockGeneratedCodeStore) sortOldestFirst() {
	sort.SliceStable(m.entries, func(i, j int) bool {
		return m.entries[i].CreatedAt.Before(m.entries[j].CreatedAt)
	})
}

func paginate[T any](items []T, page store.Page) []T {
	if page.Skip >= int64(len(items)) {
		return []T{}
	}
	items = items[page.Skip:]
	if page.Limit > 0 && page.Limit < int64(len(items)) {
		items = items[:page.Limit]
	}
	return items
}
