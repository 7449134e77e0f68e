// Package monitor provides ports.TaskMonitor implementations for the service and CLI.
package monitor

import (
	"context"
	"sync/atomic"

	"motiflab/internal"
	"motiflab/ports"
)

// Context reports cancellation of a context and logs progress at trace level
type Context struct {
	ctx    context.Context
	logger *internal.Logger
}

// NewContext creates a monitor bound to ctx; nil logger discards progress
func NewContext(ctx context.Context, logger *internal.Logger) *Context {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &Context{ctx: ctx, logger: logger}
}

func (m *Context) Cancelled() bool {
	return m.ctx.Err() != nil
}

func (m *Context) Progress(done, total int) {
	m.logger.Trace("progress %d of %d", done, total)
}

// Flag is an abort switch that can be flipped from any goroutine
type Flag struct {
	aborted    atomic.Bool
	done       atomic.Int64
	OnProgress func(done, total int)
}

// Abort requests cancellation
func (m *Flag) Abort() {
	m.aborted.Store(true)
}

func (m *Flag) Cancelled() bool {
	return m.aborted.Load()
}

func (m *Flag) Progress(done, total int) {
	m.done.Store(int64(done))
	if m.OnProgress != nil {
		m.OnProgress(done, total)
	}
}

// Done returns the last reported completed count
func (m *Flag) Done() int {
	return int(m.done.Load())
}

// Tee fans progress out to every monitor and reports cancellation if any of them does
func Tee(monitors ...ports.TaskMonitor) ports.TaskMonitor {
	return tee(monitors)
}

type tee []ports.TaskMonitor

func (t tee) Cancelled() bool {
	for _, m := range t {
		if m.Cancelled() {
			return true
		}
	}
	return false
}

func (t tee) Progress(done, total int) {
	for _, m := range t {
		m.Progress(done, total)
	}
}
