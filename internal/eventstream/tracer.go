package eventstream

import "github.com/bmatcuk/doublestar/v4"

// Tracer decides which :event-type values get verbose trace logging, via
// glob patterns matched against the event type (e.g. "tool_*" traces every
// event type with that prefix). It is a purely ambient debugging aid: every
// event is still decoded, queued, and delivered regardless of whether it is
// traced — it never filters or transforms events.
type Tracer struct {
	patterns []string
	log      Logger
}

// NewTracer builds a Tracer from a set of doublestar glob patterns. A nil or
// empty pattern list traces nothing.
func NewTracer(patterns []string, log Logger) *Tracer {
	if log == nil {
		log = defaultLogger
	}
	return &Tracer{patterns: patterns, log: log}
}

// Trace logs a formatted message if eventType matches any configured
// pattern. Malformed patterns are treated as non-matching rather than
// erroring, since tracing must never affect delivery.
func (t *Tracer) Trace(eventType, format string, args ...any) {
	if t == nil || t.log == nil {
		return
	}
	for _, pattern := range t.patterns {
		ok, err := doublestar.Match(pattern, eventType)
		if err != nil || !ok {
			continue
		}
		t.log("eventstream: trace[%s]: "+format, append([]any{eventType}, args...)...)
		return
	}
}
