package models

import "time"

// RestorationStatus classifies how one collection's restoration ended.
type RestorationStatus string

const (
	RestorationComplete RestorationStatus = "complete"
	RestorationPartial  RestorationStatus = "partial"
	RestorationFailed   RestorationStatus = "failed"
)

// IndexOutcome records one index creation attempt.
type IndexOutcome struct {
	Name    string `json:"name"`
	Created bool   `json:"created"`
	Error   string `json:"error,omitempty"`
}

// RestorationOutcome is the per-collection result of one restoration.
// Partial means at least one sub-step (a field substitution, a specific
// index) failed while the rest succeeded.
type RestorationOutcome struct {
	Database          string            `json:"database"`
	Collection        string            `json:"collection"`
	Status            RestorationStatus `json:"status"`
	Source            string            `json:"source,omitempty"` // "sample" or "schema"
	DocumentsInserted int               `json:"documents_inserted"`
	FieldErrors       []string          `json:"field_errors,omitempty"`
	Indexes           []IndexOutcome    `json:"indexes,omitempty"`
	Reason            string            `json:"reason,omitempty"`
}

// RunStatus classifies the run as a whole.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunFinished  RunStatus = "finished"
	RunCancelled RunStatus = "cancelled"
	RunFailed    RunStatus = "failed"
)

// RunSummary aggregates one restoration run across all collections.
type RunSummary struct {
	RunID            string               `json:"run_id"`
	Status           RunStatus            `json:"status"`
	TotalCollections int                  `json:"total_collections"`
	Complete         int                  `json:"complete"`
	Partial          int                  `json:"partial"`
	Failed           int                  `json:"failed"`
	DurationSeconds  float64              `json:"duration_seconds"`
	StartedAt        time.Time            `json:"started_at"`
	Outcomes         []RestorationOutcome `json:"outcomes,omitempty"`
	Error            string               `json:"error,omitempty"`
}

// Tally folds one collection outcome into the summary counters.
func (s *RunSummary) Tally(outcome RestorationOutcome) {
	switch outcome.Status {
	case RestorationComplete:
		s.Complete++
	case RestorationPartial:
		s.Partial++
	case RestorationFailed:
		s.Failed++
	}
	s.Outcomes = append(s.Outcomes, outcome)
}
