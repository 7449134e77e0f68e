package agreement

import (
	"context"

	"motiflab/domain/core"
	"motiflab/domain/region"
	domainStats "motiflab/domain/stats"
	"motiflab/internal/metrics"
	"motiflab/ports"
)

// Status is the terminal state of a run
type Status int

const (
	StatusOK Status = iota
	StatusCancelled
	StatusFailed
)

// String returns the metrics label of the status
func (s Status) String() string {
	switch s {
	case StatusOK:
		return metrics.StatusOK
	case StatusCancelled:
		return metrics.StatusCancelled
	default:
		return metrics.StatusFailed
	}
}

// Outcome is a run result for callers that prefer values to errors.
// Result is only set when Status is StatusOK; Err only otherwise.
type Outcome struct {
	Status Status
	Result domainStats.AgreementResult
	Err    error
}

// Run is Compare returning an Outcome
func (e *Engine) Run(ctx context.Context, prediction, answer ports.RegionDataset, sequences []region.Sequence, monitor ports.TaskMonitor) Outcome {
	result, err := e.Compare(ctx, prediction, answer, sequences, monitor)
	return OutcomeOf(result, err)
}

// OutcomeOf classifies a Compare return pair
func OutcomeOf(result domainStats.AgreementResult, err error) Outcome {
	switch {
	case err == nil:
		return Outcome{Status: StatusOK, Result: result}
	case core.IsCancelled(err):
		return Outcome{Status: StatusCancelled, Err: err}
	default:
		return Outcome{Status: StatusFailed, Err: err}
	}
}
