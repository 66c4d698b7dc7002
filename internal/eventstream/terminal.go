package eventstream

// markError performs the at-most-once error-slot transition. It does not
// deliver any callback and is safe to call while holding queueMu from the
// dispatch path. It reports whether this call recorded the error (i.e. was
// first). Recording an error stops further frame dispatch and upstream
// requests immediately, but does not by itself deliver OnError — events
// already queued ahead of the error still drain out first while demand
// lasts; see finalizeError.
func (t *Transformer[I, E]) markError(e error) bool {
	t.termMu.Lock()
	defer t.termMu.Unlock()
	if t.errored.Load() {
		return false
	}
	t.err = e
	t.errored.Store(true)
	return true
}

// finalizeError delivers the terminal error signal exactly once, after the
// Drain Engine has delivered the events queued ahead of the error that
// outstanding demand allowed; events still queued when demand runs out are
// not delivered. Called only from drainLoop's drainTerminalError case.
func (t *Transformer[I, E]) finalizeError() {
	if !t.finalized.CompareAndSwap(false, true) {
		return
	}
	t.termMu.Lock()
	err := t.err
	t.termMu.Unlock()

	if sub := t.currentSubscriber(); sub != nil {
		t.safeDeliver("OnError", func() { sub.OnError(err) })
	}
	t.cfg.Handler.ExceptionOccurred(err)
}

// raiseError is the error entry point for callers outside the queue-locked
// dispatch path, such as the top-level ExceptionOccurred hook. It records
// the error and lets the drain engine deliver it once already-queued events
// have drained as far as demand allows, preserving the same ordering as a
// mid-stream protocol error frame.
func (t *Transformer[I, E]) raiseError(e error) {
	if !t.markError(e) {
		return
	}
	t.kickDrain()
}

// onEventComplete is invoked by the drain engine when it dequeues
// EndOfStream with no error recorded. It delivers OnComplete, invokes the
// caller's completion hook, and settles the future successfully.
func (t *Transformer[I, E]) onEventComplete() {
	if !t.finalized.CompareAndSwap(false, true) {
		return
	}
	if sub := t.currentSubscriber(); sub != nil {
		t.safeDeliver("OnComplete", func() { sub.OnComplete() })
	}
	t.cfg.Handler.Complete()
	t.cfg.Future.complete()
}

// Complete is the request layer's signal that the wire-level request has
// been fully received. If no error has been recorded, it appends
// EndOfStream to the queue and kicks the drain so completion happens after
// all buffered events. If an error was already recorded, it is returned
// synchronously so the request layer can fail its own future — the one
// path by which this package raises an error out of its top-level API.
func (t *Transformer[I, E]) Complete() (struct{}, error) {
	t.termMu.Lock()
	err := t.err
	t.termMu.Unlock()
	if err != nil {
		return struct{}{}, err
	}

	t.queueMu.Lock()
	t.queue = append(t.queue, endOfStreamItem[E]())
	t.queueMu.Unlock()

	t.kickDrain()
	return struct{}{}, nil
}
