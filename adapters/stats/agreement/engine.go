// Package agreement compares a predicted region dataset with an answer dataset position by
// position, one concurrent task per sequence.
package agreement

import (
	"context"
	"runtime"
	"sync"
	"time"

	"motiflab/domain/core"
	"motiflab/domain/region"
	domainStats "motiflab/domain/stats"
	"motiflab/internal"
	"motiflab/internal/metrics"
	"motiflab/ports"

	"golang.org/x/sync/errgroup"
)

// DefaultWindow is the number of positions flattened at a time
const DefaultWindow = 10000

// Engine runs region agreement analyses on a bounded worker pool
type Engine struct {
	workers int
	window  int
	logger  *internal.Logger
}

// NewEngine creates an engine. Non-positive workers means GOMAXPROCS, non-positive
// window means DefaultWindow, nil logger discards output.
func NewEngine(workers, window int, logger *internal.Logger) *Engine {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &Engine{workers: workers, window: window, logger: logger}
}

// Compare classifies every position of every sequence and aggregates the counts.
// A cancelled run returns only an error wrapping core.ErrCancelled; a failed run returns
// the first task error as it was raised. Neither returns partial counts.
func (e *Engine) Compare(ctx context.Context, prediction, answer ports.RegionDataset, sequences []region.Sequence, monitor ports.TaskMonitor) (domainStats.AgreementResult, error) {
	if monitor == nil {
		monitor = nopMonitor{}
	}
	start := time.Now()
	acc := NewAccumulator(len(sequences), monitor)

	var (
		failure  error
		failOnce sync.Once
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for _, seq := range sequences {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			counts, err := e.sequence(gctx, seq, prediction, answer, monitor)
			if err != nil {
				if !core.IsCancelled(err) {
					failOnce.Do(func() { failure = err })
				}
				return err
			}
			acc.Add(seq.Name, counts)
			metrics.RecordSequence(counts.Total())
			return nil
		})
	}

	err := g.Wait()
	switch {
	case failure != nil:
		e.logger.Error("region agreement %s vs %s failed: %v", prediction.Name(), answer.Name(), failure)
		return domainStats.AgreementResult{}, failure
	case err != nil:
		e.logger.Info("region agreement %s vs %s cancelled after %d/%d sequences", prediction.Name(), answer.Name(), acc.Done(), len(sequences))
		return domainStats.AgreementResult{}, err
	case acc.Done() < len(sequences):
		return domainStats.AgreementResult{}, core.NewCancelledError(ctx.Err())
	}

	counts := acc.Counts()
	e.logger.Debug("region agreement %s vs %s: %d sequences, %d positions in %s",
		prediction.Name(), answer.Name(), len(sequences), counts.Total(), time.Since(start))

	return domainStats.AgreementResult{
		Prediction:  prediction.Name(),
		Answer:      answer.Name(),
		Sequences:   len(sequences),
		Counts:      counts,
		Statistics:  counts.Statistics(),
		PerSequence: acc.PerSequence(),
	}, nil
}

// sequence flattens and classifies one sequence, polling for cancellation between windows
func (e *Engine) sequence(ctx context.Context, seq region.Sequence, prediction, answer ports.RegionDataset, monitor ports.TaskMonitor) (domainStats.ConfusionCounts, error) {
	var total domainStats.ConfusionCounts
	if err := checkCancelled(ctx, monitor); err != nil {
		return total, err
	}

	predicted, err := prediction.Regions(seq.Name)
	if err != nil {
		return total, err
	}
	expected, err := answer.Regions(seq.Name)
	if err != nil {
		return total, err
	}

	p, err := newOccupancy(seq.Name, predicted, seq.Length, e.window)
	if err != nil {
		return total, err
	}
	a, err := newOccupancy(seq.Name, expected, seq.Length, e.window)
	if err != nil {
		return total, err
	}

	for from := 0; from < seq.Length; from += e.window {
		if err := checkCancelled(ctx, monitor); err != nil {
			return domainStats.ConfusionCounts{}, err
		}
		to := min(from+e.window, seq.Length)
		total = total.Add(classify(p.fill(from, to), a.fill(from, to)))
	}
	return total, nil
}

func checkCancelled(ctx context.Context, monitor ports.TaskMonitor) error {
	if err := ctx.Err(); err != nil {
		return core.NewCancelledError(err)
	}
	if monitor.Cancelled() {
		return core.NewCancelledError(context.Canceled)
	}
	return nil
}

type nopMonitor struct{}

func (nopMonitor) Cancelled() bool { return false }
func (nopMonitor) Progress(int, int) {}
