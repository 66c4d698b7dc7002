package eventstream

import "github.com/danshapiro/kilroy/internal/wire"

// dispatchLocked classifies and routes one decoded message by its
// :message-type / :event-type headers. The caller must hold queueMu. It
// returns the terminal error, if any, that should stop processing the rest
// of the current batch; nil means processing may continue with the next
// message in the batch.
func (t *Transformer[I, E]) dispatchLocked(msg wire.Message) error {
	msgType, _ := msg.MessageType()
	switch msgType {
	case "event":
		eventType, _ := msg.EventType()
		if eventType == "initial-response" {
			return t.dispatchInitialResponseLocked(msg)
		}
		return t.dispatchEventLocked(msg, eventType)
	case "error", "exception":
		return t.dispatchProtocolErrorLocked(msg)
	default:
		return nil
	}
}

func (t *Transformer[I, E]) dispatchInitialResponseLocked(msg wire.Message) error {
	initial, err := t.cfg.InitialUnmarshaller(syntheticResponse(msg))
	if err != nil {
		wrapped := NewDecodeError("initial-response", err)
		t.markError(wrapped)
		return wrapped
	}
	t.initialDelivered.Store(true)
	t.cfg.Handler.ResponseReceived(initial)
	return nil
}

func (t *Transformer[I, E]) dispatchEventLocked(msg wire.Message, eventType string) error {
	ev, err := t.cfg.EventUnmarshaller(syntheticResponse(msg))
	if err != nil {
		wrapped := NewDecodeError("event", err)
		t.markError(wrapped)
		return wrapped
	}
	if t.cfg.Tracer != nil {
		t.cfg.Tracer.Trace(eventType, "enqueued")
	}
	t.queue = append(t.queue, eventItem(ev))
	return nil
}

func (t *Transformer[I, E]) dispatchProtocolErrorLocked(msg wire.Message) error {
	if t.cfg.ErrorSchema != nil {
		if err := validateErrorPayload(t.cfg.ErrorSchema, msg.Payload); err != nil {
			wrapped := NewDecodeError("header-schema", err)
			t.markError(wrapped)
			return wrapped
		}
	}

	domainErr, err := t.cfg.ExceptionUnmarshaller(syntheticResponse(msg))
	if err != nil {
		wrapped := NewDecodeError("exception", err)
		t.markError(wrapped)
		return wrapped
	}

	wrapped := NewProtocolError(domainErr)
	t.markError(wrapped)
	return wrapped
}
