package dtos

// StartRunRequest starts a restoration run. Every field is an optional
// override of the configured default.
type StartRunRequest struct {
	DocumentCount    *int  `json:"document_count,omitempty"`
	ConcurrencyLimit *int  `json:"concurrency_limit,omitempty"`
	StripSampleID    *bool `json:"strip_sample_id,omitempty"`
	DropExisting     *bool `json:"drop_existing,omitempty"`
}

type StartRunResponse struct {
	RunID string `json:"run_id"`
}
