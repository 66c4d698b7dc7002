package eventstream

// OnSubscribe stores the upstream byte subscription and hands the caller's
// event-stream response handler the publisher side of this transformer.
// The handler only learns about the publisher once the upstream
// subscription exists, so EventPublisher.Subscribe always has a live
// upstream token to request bytes through.
func (t *Transformer[I, E]) OnSubscribe(sub ByteSubscription) {
	t.upstreamMu.Lock()
	t.upstreamSub = sub
	t.upstreamMu.Unlock()

	t.cfg.Handler.OnEventStream(t.publisher())
}

// OnNext feeds one upstream chunk through the frame decoder and dispatcher,
// then reconciles demand. If dispatch records an error, events already
// queued ahead of it are still drained to the subscriber, as far as demand
// allows, before the error is delivered — see drainStep.
func (t *Transformer[I, E]) OnNext(chunk []byte) {
	if t.errored.Load() || t.cancelled.Load() {
		return
	}

	t.queueMu.Lock()
	msgs, decodeErr := t.cfg.Decoder.Feed(chunk)

	var pending error
	if decodeErr != nil {
		pending = NewDecodeError("frame", decodeErr)
		t.markError(pending)
	} else {
		for _, msg := range msgs {
			if err := t.dispatchLocked(msg); err != nil {
				pending = err
				break
			}
		}
	}
	hasQueue := len(t.queue) > 0
	t.queueMu.Unlock()

	t.ledger.releaseRequestingLease()

	if pending != nil || hasQueue {
		t.kickDrain()
		return
	}
	if t.ledger.hasDemand() {
		t.maybeRequestBytes()
	}
}

// OnError is intentionally a no-op: upstream byte-stream failures are
// surfaced to the transformer by the enclosing request layer via
// ExceptionOccurred, not by this callback.
func (t *Transformer[I, E]) OnError(err error) {}

// OnComplete is intentionally a no-op: upstream completion does not imply
// event-stream completion, since events may still be buffered. The
// transformer relies on the enclosing request layer calling Complete once
// the wire-level request is fully received.
func (t *Transformer[I, E]) OnComplete() {}
