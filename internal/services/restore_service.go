package services

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"restorebot/config"
	"restorebot/internal/apis/dtos"
	"restorebot/internal/models"
	"restorebot/internal/repositories"
	"restorebot/pkg/metadata"
	"restorebot/pkg/restorer"
)

const runHistoryLimit = 20

// RestoreService owns the lifecycle of restoration runs: it builds the
// per-run options, launches the orchestrator asynchronously, persists run
// summaries and supports cancelling in-flight runs.
type RestoreService interface {
	StartRun(req *dtos.StartRunRequest) (*dtos.StartRunResponse, uint, error)
	GetRun(runID string) (*models.RunSummary, uint, error)
	ListRuns() ([]*models.RunSummary, uint, error)
	CancelRun(runID string) (uint, error)
}

type restoreService struct {
	store   restorer.TargetStore
	runRepo repositories.RunRepository

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

func NewRestoreService(store restorer.TargetStore, runRepo repositories.RunRepository) RestoreService {
	return &restoreService{
		store:   store,
		runRepo: runRepo,
		cancels: make(map[string]context.CancelFunc),
	}
}

func (s *restoreService) StartRun(req *dtos.StartRunRequest) (*dtos.StartRunResponse, uint, error) {
	opts := optionsFromEnv()
	if req != nil {
		if req.DocumentCount != nil {
			opts.DocumentCount = *req.DocumentCount
		}
		if req.ConcurrencyLimit != nil {
			opts.ConcurrencyLimit = *req.ConcurrencyLimit
		}
		if req.StripSampleID != nil {
			opts.StripSampleID = *req.StripSampleID
		}
		if req.DropExisting != nil {
			opts.DropExisting = *req.DropExisting
		}
	}
	if opts.DocumentCount < 1 || opts.ConcurrencyLimit < 1 {
		return nil, http.StatusBadRequest, errors.New("document_count and concurrency_limit must be positive")
	}

	runID := uuid.NewString()
	loader := metadata.NewLoader(config.Env.MetadataDir)
	orchestrator := restorer.NewRestorationOrchestrator(loader, s.store, opts)

	// Record the run before it starts so it is visible while running.
	pending := &models.RunSummary{
		RunID:     runID,
		Status:    models.RunRunning,
		StartedAt: time.Now(),
	}
	if err := s.runRepo.Save(pending); err != nil {
		return nil, http.StatusInternalServerError, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancels[runID] = cancel
	s.mu.Unlock()

	go s.executeRun(ctx, runID, orchestrator, pending.StartedAt)

	log.Printf("RestoreService -> StartRun -> Started run %s (workers=%d, documents=%d)", runID, opts.ConcurrencyLimit, opts.DocumentCount)
	return &dtos.StartRunResponse{RunID: runID}, http.StatusAccepted, nil
}

func (s *restoreService) executeRun(ctx context.Context, runID string, orchestrator *restorer.RestorationOrchestrator, startedAt time.Time) {
	defer func() {
		s.mu.Lock()
		delete(s.cancels, runID)
		s.mu.Unlock()
	}()

	summary, err := orchestrator.Run(ctx)
	if err != nil {
		// Run-fatal: the target store was unreachable or the metadata
		// directory could not be read. No collection was attempted.
		log.Printf("RestoreService -> executeRun -> Run %s failed: %v", runID, err)
		summary = &models.RunSummary{
			Status:          models.RunFailed,
			StartedAt:       startedAt,
			DurationSeconds: time.Since(startedAt).Seconds(),
			Error:           err.Error(),
		}
	}
	summary.RunID = runID

	if err := s.runRepo.Save(summary); err != nil {
		log.Printf("RestoreService -> executeRun -> Failed to persist summary for run %s: %v", runID, err)
	}
}

func (s *restoreService) GetRun(runID string) (*models.RunSummary, uint, error) {
	summary, err := s.runRepo.FindByID(runID)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	if summary == nil {
		return nil, http.StatusNotFound, errors.New("run not found")
	}
	return summary, http.StatusOK, nil
}

func (s *restoreService) ListRuns() ([]*models.RunSummary, uint, error) {
	summaries, err := s.runRepo.FindRecent(runHistoryLimit)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return summaries, http.StatusOK, nil
}

// CancelRun stops dispatching new collections for an in-flight run.
// Documents and indexes already written stay in the target store; there is
// no rollback.
func (s *restoreService) CancelRun(runID string) (uint, error) {
	s.mu.Lock()
	cancel, ok := s.cancels[runID]
	s.mu.Unlock()
	if !ok {
		return http.StatusNotFound, errors.New("run is not in flight")
	}
	cancel()
	return http.StatusAccepted, nil
}

func optionsFromEnv() restorer.Options {
	return restorer.Options{
		ConcurrencyLimit: config.Env.ConcurrencyLimit,
		DocumentCount:    config.Env.SyntheticDocumentCount,
		StripSampleID:    config.Env.StripSampleID,
		DropExisting:     config.Env.DropExisting,
	}
}
