package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"restorebot/internal/models"
	"restorebot/pkg/redis"
)

// runSummaryTTL keeps run history around long enough for follow-up analysis
// of which collections need manual attention.
const runSummaryTTL = 7 * 24 * time.Hour

const runKeyPrefix = "restore_run:"

type RunRepository interface {
	Save(summary *models.RunSummary) error
	FindByID(runID string) (*models.RunSummary, error)
	FindRecent(limit int) ([]*models.RunSummary, error)
}

type runRepository struct {
	redis redis.IRedisRepositories
}

func NewRunRepository(redis redis.IRedisRepositories) RunRepository {
	return &runRepository{
		redis: redis,
	}
}

func (r *runRepository) Save(summary *models.RunSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}

	err = r.redis.Set(runKeyPrefix+summary.RunID, data, runSummaryTTL, context.Background())
	if err != nil {
		return fmt.Errorf("failed to store run summary: %w", err)
	}
	return nil
}

func (r *runRepository) FindByID(runID string) (*models.RunSummary, error) {
	data, err := r.redis.Get(runKeyPrefix+runID, context.Background())
	if errors.Is(err, redis.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run summary %s: %w", runID, err)
	}

	var summary models.RunSummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run summary %s: %w", runID, err)
	}
	return &summary, nil
}

func (r *runRepository) FindRecent(limit int) ([]*models.RunSummary, error) {
	keys, err := r.redis.Keys(runKeyPrefix+"*", context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to list run summaries: %w", err)
	}

	summaries := make([]*models.RunSummary, 0, len(keys))
	for _, key := range keys {
		data, err := r.redis.Get(key, context.Background())
		if err != nil {
			continue // expired between SCAN and GET
		}
		var summary models.RunSummary
		if err := json.Unmarshal([]byte(data), &summary); err != nil {
			log.Printf("RunRepository -> FindRecent -> Skipping malformed summary at %s: %v", key, err)
			continue
		}
		summaries = append(summaries, &summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].StartedAt.After(summaries[j].StartedAt)
	})
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}
