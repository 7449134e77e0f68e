package api

import (
	"context"
	"fmt"
	"io"
	"time"

	"motiflab/domain/analysis"
	"motiflab/domain/core"
	apperrors "motiflab/internal/errors"

	"github.com/gin-gonic/gin"
)

// EventType names a server-sent event of an analysis stream
type EventType string

const (
	EventStarted   EventType = "analysis_started"
	EventProgress  EventType = "analysis_progress"
	EventCompleted EventType = "analysis_completed"
	EventFailed    EventType = "analysis_failed"
)

// progressBuffer bounds queued progress events; further ones are dropped until the
// client catches up
const progressBuffer = 64

// Event is one server-sent event of an analysis stream
type Event struct {
	Type      EventType     `json:"event_type"`
	Kind      analysis.Kind `json:"kind"`
	Timestamp time.Time     `json:"timestamp"`
	Data      interface{}   `json:"data,omitempty"`
}

// ProgressData reports units of work done out of total
type ProgressData struct {
	Done    int     `json:"done"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

func newEvent(kind analysis.Kind, t EventType, data interface{}) Event {
	return Event{Type: t, Kind: kind, Timestamp: time.Now().UTC(), Data: data}
}

// streamMonitor forwards progress into the event channel and reports the request
// context as the abort flag
type streamMonitor struct {
	ctx    context.Context
	kind   analysis.Kind
	events chan<- Event
}

func (m *streamMonitor) Cancelled() bool {
	return m.ctx.Err() != nil
}

func (m *streamMonitor) Progress(done, total int) {
	percent := 100.0
	if total > 0 {
		percent = 100 * float64(done) / float64(total)
	}
	select {
	case m.events <- newEvent(m.kind, EventProgress, ProgressData{Done: done, Total: total, Percent: percent}):
	default:
	}
}

// StreamAnalysis runs one analysis and streams its progress as server-sent events,
// ending with either analysis_completed carrying the envelope or analysis_failed.
func (s *Server) StreamAnalysis(c *gin.Context) {
	kind := analysis.Kind(c.Param("kind"))
	req, ok := s.bindRequest(c, kind)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	events := make(chan Event, progressBuffer)
	tm := &streamMonitor{ctx: ctx, kind: kind, events: events}

	go func() {
		defer close(events)
		// gin.Recovery only guards the handler goroutine
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("streamed %s analysis panicked: %v", kind, r)
				err := apperrors.InternalError(fmt.Sprintf("%s analysis panicked: %v", kind, r))
				send(ctx, events, newEvent(kind, EventFailed, errorBody(err)))
			}
		}()
		send(ctx, events, newEvent(kind, EventStarted, nil))
		env, err := s.service.Run(ctx, kind, req, tm)
		if err != nil {
			if !core.IsCancelled(err) {
				s.logger.Warn("streamed %s analysis failed: %v", kind, err)
			}
			send(ctx, events, newEvent(kind, EventFailed, errorBody(err)))
			return
		}
		send(ctx, events, newEvent(kind, EventCompleted, env))
	}()

	c.Stream(func(w io.Writer) bool {
		ev, ok := <-events
		if !ok {
			return false
		}
		c.SSEvent(string(ev.Type), ev)
		return true
	})
}

// send delivers a lifecycle event unless the client has gone away
func send(ctx context.Context, events chan<- Event, ev Event) {
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}
