package model

import (
	"time"

	"github.com/google/uuid"
)

// OutcomeStatus represents the result of loading one configured source
type OutcomeStatus string

const (
	OutcomeLoaded  OutcomeStatus = "loaded"
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomeFailed  OutcomeStatus = "failed"
)

// SourceOutcome records what happened to one configured source during a
// run. Every source string the caller supplied gets exactly one outcome,
// so misconfiguration is observable instead of silently swallowed.
type SourceOutcome struct {
	Source    string
	Status    OutcomeStatus
	Documents int
	Reason    string
	Err       error
}

// LoadReport is the per-run summary of a multi-source load
type LoadReport struct {
	RunID       string
	StartedAt   time.Time
	CompletedAt time.Time
	Outcomes    []SourceOutcome
}

// NewLoadReport creates a report with a fresh run ID
func NewLoadReport() *LoadReport {
	return &LoadReport{
		RunID:     uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}
}

// Add appends one source outcome
func (r *LoadReport) Add(outcome SourceOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)
}

// TotalDocuments returns the number of documents produced across all sources
func (r *LoadReport) TotalDocuments() int {
	var total int
	for _, o := range r.Outcomes {
		total += o.Documents
	}
	return total
}

// Failed returns the outcomes that ended in an error
func (r *LoadReport) Failed() []SourceOutcome {
	var failed []SourceOutcome
	for _, o := range r.Outcomes {
		if o.Status == OutcomeFailed {
			failed = append(failed, o)
		}
	}
	return failed
}
