package agreement

import (
	"sync"

	domainStats "motiflab/domain/stats"
	"motiflab/ports"
)

// Accumulator merges per-sequence counts from concurrent tasks. Counts and the
// progress counter share one lock so progress never runs ahead of the totals.
type Accumulator struct {
	mu          sync.Mutex
	counts      domainStats.ConfusionCounts
	perSequence map[string]domainStats.ConfusionCounts
	done        int
	total       int
	monitor     ports.TaskMonitor
}

// NewAccumulator expects total sequences and reports progress to monitor (may be nil)
func NewAccumulator(total int, monitor ports.TaskMonitor) *Accumulator {
	return &Accumulator{
		perSequence: make(map[string]domainStats.ConfusionCounts, total),
		total:       total,
		monitor:     monitor,
	}
}

// Add merges the counts of one finished sequence and reports progress
func (a *Accumulator) Add(sequence string, counts domainStats.ConfusionCounts) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.counts = a.counts.Add(counts)
	a.perSequence[sequence] = a.perSequence[sequence].Add(counts)
	a.done++
	if a.monitor != nil {
		a.monitor.Progress(a.done, a.total)
	}
}

// Counts returns the merged totals
func (a *Accumulator) Counts() domainStats.ConfusionCounts {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counts
}

// Done returns how many sequences have been merged
func (a *Accumulator) Done() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.done
}

// PerSequence returns a copy of the per-sequence counts
func (a *Accumulator) PerSequence() map[string]domainStats.ConfusionCounts {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]domainStats.ConfusionCounts, len(a.perSequence))
	for k, v := range a.perSequence {
		out[k] = v
	}
	return out
}
