package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Sink receives audit events. Implementations must tolerate concurrent calls.
type Sink interface {
	Write(ctx context.Context, event Event) error
}

// Publisher fans audit events out to its sinks. A failing sink is logged and
// skipped; audit must never fail or slow the request path beyond the sink's
// own write.
type Publisher struct {
	logger *slog.Logger
	sinks  []Sink
}

func NewPublisher(logger *slog.Logger, sinks ...Sink) *Publisher {
	return &Publisher{logger: logger, sinks: sinks}
}

func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	for _, sink := range p.sinks {
		if err := sink.Write(ctx, event); err != nil {
			p.logger.WarnContext(ctx, "audit sink write failed",
				"action", string(event.Action),
				"error", err,
			)
		}
	}
}

// MemorySink retains events in memory for tests and the default single-node
// deployment.
type MemorySink struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Write(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a snapshot of everything written so far.
func (s *MemorySink) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events...)
}

// ByAction filters the snapshot to one action.
func (s *MemorySink) ByAction(action Action) []Event {
	var out []Event
	for _, ev := range s.Events() {
		if ev.Action == action {
			out = append(out, ev)
		}
	}
	return out
}
