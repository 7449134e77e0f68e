package ports

// TaskMonitor is the status object a long-running analysis polls for aborts and
// reports progress to. Implementations must be safe for concurrent use.
type TaskMonitor interface {
	// Cancelled reports whether the analysis should stop now
	Cancelled() bool
	// Progress reports that done of total units are complete
	Progress(done, total int)
}
