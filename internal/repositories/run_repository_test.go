package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restorebot/internal/models"
	"restorebot/pkg/redis"
)

// fakeRedis keeps values in a map and can be forced to fail.
type fakeRedis struct {
	values map[string]string
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: make(map[string]string)}
}

func (f *fakeRedis) Set(key string, data []byte, expiredTime time.Duration, ctx context.Context) error {
	f.values[key] = string(data)
	return nil
}

func (f *fakeRedis) Get(key string, ctx context.Context) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.values[key]
	if !ok {
		return "", redis.ErrKeyNotFound
	}
	return value, nil
}

func (f *fakeRedis) Del(key string, ctx context.Context) error {
	delete(f.values, key)
	return nil
}

func (f *fakeRedis) Keys(pattern string, ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(f.values))
	for key := range f.values {
		keys = append(keys, key)
	}
	return keys, nil
}

func (f *fakeRedis) TTL(key string, ctx context.Context) (time.Duration, error) {
	return 0, nil
}

func TestRunRepositorySaveAndFindByID(t *testing.T) {
	repo := NewRunRepository(newFakeRedis())

	saved := &models.RunSummary{
		RunID:            "run-1",
		Status:           models.RunFinished,
		TotalCollections: 3,
		Complete:         3,
	}
	require.NoError(t, repo.Save(saved))

	found, err := repo.FindByID("run-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, models.RunFinished, found.Status)
	assert.Equal(t, 3, found.Complete)
}

func TestRunRepositoryFindByIDMissingRun(t *testing.T) {
	repo := NewRunRepository(newFakeRedis())

	found, err := repo.FindByID("no-such-run")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRunRepositoryFindByIDSurfacesStoreFailures(t *testing.T) {
	store := newFakeRedis()
	store.getErr = errors.New("connection refused")
	repo := NewRunRepository(store)

	// A failing store is an error, not a missing run.
	found, err := repo.FindByID("run-1")
	assert.Nil(t, found)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
