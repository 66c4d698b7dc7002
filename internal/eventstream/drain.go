package eventstream

// maxDrainBatch bounds how many events a single executor task drains before
// rescheduling itself, so one long event stream cannot starve the executor
// of other work indefinitely.
const maxDrainBatch = 64

type drainAction int

const (
	drainIdle drainAction = iota
	drainSkip
	drainComplete
	drainTerminalError
	drainDeliver
)

// kickDrain attempts to take the delivery lease; if successful, it schedules
// drainLoop on the injected executor. At most one drain task is ever in
// flight for a given transformer.
func (t *Transformer[I, E]) kickDrain() {
	if t.ledger.tryTakeDeliveryLease() {
		t.cfg.Executor.Execute(t.drainLoop)
	}
}

// drainLoop runs on the executor, draining up to maxDrainBatch events before
// rescheduling itself if more work remains. It never holds queueMu across a
// subscriber callback.
func (t *Transformer[I, E]) drainLoop() {
	for i := 0; i < maxDrainBatch; i++ {
		action, event := t.drainStep()
		switch action {
		case drainIdle:
			return
		case drainSkip:
			continue
		case drainComplete:
			t.onEventComplete()
			return
		case drainTerminalError:
			t.finalizeError()
			return
		case drainDeliver:
			t.deliverEvent(event)
		}
	}
	t.cfg.Executor.Execute(t.drainLoop)
}

// drainStep dequeues and classifies one item under the queue lock, returning
// the action drainLoop should take outside the lock. A head-of-queue
// EndOfStream is dequeued unconditionally — completion never waits on
// outstanding event demand. A head-of-queue event is only dequeued once
// demand allows it; with no demand it is left in place and the step reports
// idle (or terminal error). Events queued ahead of a recorded error drain
// before the error is finalized while demand lasts; once demand is zero the
// error is finalized and any events still queued are never delivered. A
// stray EndOfStream dequeued after an
// error was recorded is dropped rather than completing the stream. Once
// cancelled, drainStep reports idle unconditionally and leaves the queue
// untouched, even mid-batch: cancellation stops delivery immediately rather
// than draining what was already buffered.
func (t *Transformer[I, E]) drainStep() (drainAction, E) {
	t.queueMu.Lock()

	if t.cancelled.Load() {
		t.queueMu.Unlock()
		return drainIdle, zero[E]()
	}

	if len(t.queue) > 0 {
		head := t.queue[0]

		if head.kind == itemEndOfStream {
			t.queue = t.queue[1:]
			t.queueMu.Unlock()
			if t.errored.Load() {
				return drainSkip, zero[E]()
			}
			return drainComplete, zero[E]()
		}

		if t.ledger.hasDemand() {
			t.queue = t.queue[1:]
			t.ledger.takeOneDemand()
			t.queueMu.Unlock()
			return drainDeliver, head.event
		}
	}

	if t.errored.Load() {
		t.queueMu.Unlock()
		return drainTerminalError, zero[E]()
	}

	t.ledger.releaseDeliveryLease()
	rearm := t.ledger.hasDemand()
	t.queueMu.Unlock()
	if rearm {
		t.maybeRequestBytes()
	}
	return drainIdle, zero[E]()
}

func (t *Transformer[I, E]) deliverEvent(event E) {
	sub := t.currentSubscriber()
	if sub == nil {
		return
	}
	t.safeDeliver("OnNext", func() { sub.OnNext(event) })
}

// maybeRequestBytes starts one upstream byte-chunk request if none is
// already in flight. A no-op once an error has been recorded or the
// subscription has been cancelled: there is no point pulling more bytes
// through a decoder that will never dispatch them.
func (t *Transformer[I, E]) maybeRequestBytes() {
	if t.errored.Load() || t.cancelled.Load() {
		return
	}
	if !t.ledger.tryTakeRequestingLease() {
		return
	}
	sub := t.currentUpstreamSubscription()
	if sub == nil {
		t.ledger.releaseRequestingLease()
		return
	}
	sub.Request(1)
}
