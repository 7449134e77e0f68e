package monitor

import (
	"io"
	"sync"

	"gopkg.in/cheggaaa/pb.v1"
)

// Bar draws a terminal progress bar. The bar is created on the first report, once the
// total is known, and finished when the last unit completes or Finish is called.
type Bar struct {
	mu  sync.Mutex
	out io.Writer
	bar *pb.ProgressBar
}

// NewBar creates a bar writing to out
func NewBar(out io.Writer) *Bar {
	return &Bar{out: out}
}

// Cancelled never requests an abort; combine with Tee for that
func (b *Bar) Cancelled() bool {
	return false
}

func (b *Bar) Progress(done, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bar == nil {
		b.bar = pb.New(total)
		b.bar.Output = b.out
		b.bar.ShowSpeed = true
		// Redraw on report instead of from a refresh goroutine
		b.bar.ManualUpdate = true
		b.bar.Start()
	}
	b.bar.Set(done)
	b.bar.Update()
	if done >= total {
		b.bar.Finish()
	}
}

// Finish stops redrawing; safe to call more than once or before any progress
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar != nil {
		b.bar.Finish()
	}
}
