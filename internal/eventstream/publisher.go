package eventstream

// transformerOps is the narrow surface EventPublisher and eventSubscription
// need from a Transformer, decoupled from its initial-response type parameter
// so both are parameterised by the event type alone, wrapping an interface
// value.
type transformerOps[E any] interface {
	subscribeOnce(sub EventSubscriber[E]) error
	requestEvents(n int64)
	cancelUpstream()
}

// EventPublisher is the downstream-facing half of the transformer, handed to
// the caller's ResponseHandler via OnEventStream. It accepts exactly one
// Subscribe call.
type EventPublisher[E any] struct {
	ops transformerOps[E]
}

// Subscribe attaches sub as the sole downstream subscriber. A second call,
// whether from the same or a different subscriber, fails with an error and
// leaves the first subscriber attached.
func (p *EventPublisher[E]) Subscribe(sub EventSubscriber[E]) error {
	return p.ops.subscribeOnce(sub)
}

// eventSubscription is the pull-based token handed to the downstream
// subscriber's OnSubscribe callback.
type eventSubscription[E any] struct {
	ops transformerOps[E]
}

func (s *eventSubscription[E]) Request(n int64) {
	s.ops.requestEvents(n)
}

func (s *eventSubscription[E]) Cancel() {
	s.ops.cancelUpstream()
}

// subscribeOnce enforces the single-subscriber invariant and, on success,
// delivers OnSubscribe with an eventSubscription bound to this transformer.
func (t *Transformer[I, E]) subscribeOnce(sub EventSubscriber[E]) error {
	t.subMu.Lock()
	if t.subscriber != nil {
		t.subMu.Unlock()
		return NewProtocolError(errAlreadySubscribed)
	}
	t.subscriber = sub
	t.subMu.Unlock()

	sub.OnSubscribe(&eventSubscription[E]{ops: t})
	return nil
}

// requestEvents adds n to outstanding downstream demand and, if buffered
// events or upstream backpressure room allow, kicks the appropriate engine.
// A no-op once the transformer is done or cancelled.
func (t *Transformer[I, E]) requestEvents(n int64) {
	if t.finalized.Load() || t.cancelled.Load() {
		return
	}
	t.ledger.addDemand(n)

	t.queueMu.Lock()
	hasQueue := len(t.queue) > 0
	t.queueMu.Unlock()

	if hasQueue {
		t.kickDrain()
		return
	}
	t.maybeRequestBytes()
}

// cancelUpstream latches the cancelled state and propagates a downstream
// Cancel to the upstream byte subscription, if one is attached. Cancellation
// is immediate and unconditional: once latched, no further OnNext, OnError,
// or OnComplete is delivered, even for events already sitting in the queue.
// A no-op on the second and later calls.
func (t *Transformer[I, E]) cancelUpstream() {
	if !t.cancelled.CompareAndSwap(false, true) {
		return
	}
	if sub := t.currentUpstreamSubscription(); sub != nil {
		sub.Cancel()
	}
}
