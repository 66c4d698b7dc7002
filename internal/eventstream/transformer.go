package eventstream

import (
	"sync"
	"sync/atomic"

	"github.com/danshapiro/kilroy/internal/wire"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Config configures a Transformer. Handler, the three unmarshallers, and
// Executor are required; Decoder, Logger, and Future have defaults;
// ErrorSchema and Tracer are optional and do nothing when nil.
type Config[I any, E any] struct {
	Handler               ResponseHandler[I, E]
	InitialUnmarshaller   InitialUnmarshaller[I]
	EventUnmarshaller     EventUnmarshaller[E]
	ExceptionUnmarshaller ExceptionUnmarshaller
	Executor              Executor
	Future                *Future

	// Decoder defaults to wire.NewCodec() when nil.
	Decoder FrameDecoder
	// ErrorSchema, when set, validates error/exception payload JSON before
	// exception-unmarshalling. Nil skips validation.
	ErrorSchema *jsonschema.Schema
	// Tracer, when set, logs verbose traces for matching event types. Nil
	// traces nothing.
	Tracer *Tracer
	// Logger receives messages for errors that are caught and swallowed
	// (subscriber panics, etc). Defaults to a log.Printf wrapper.
	Logger Logger
}

// Transformer is the event-stream response transformer: it decodes
// incoming byte chunks into frames, dispatches each frame to an
// initial-response hook, an event queue, or an error path, and reconciles
// upstream byte demand with downstream event demand.
//
// A Transformer is created per request attempt and reset for retries via
// Reset; it is not reusable concurrently across two in-flight attempts.
type Transformer[I any, E any] struct {
	cfg Config[I, E]

	ledger demandLedger

	queueMu sync.Mutex
	queue   []queueItem[E]

	termMu sync.Mutex
	err    error

	// errored latches true the moment a terminal error is recorded, before
	// it is necessarily delivered: it stops further frame dispatch and
	// upstream byte requests immediately, while events already queued ahead
	// of the error still drain out through the normal delivery path for as
	// long as downstream demand lasts.
	// finalized latches true once OnError or OnComplete has actually been
	// delivered, the point past which no terminal callback may fire again.
	errored   atomic.Bool
	finalized atomic.Bool

	// cancelled latches true the moment the downstream subscription is
	// cancelled, including from inside a subscriber callback. Unlike
	// errored, it takes effect immediately even for events already queued:
	// once cancelled, no further OnNext/OnError/OnComplete is delivered and
	// no further upstream bytes are requested.
	cancelled atomic.Bool

	subMu      sync.Mutex
	subscriber EventSubscriber[E]

	upstreamMu  sync.Mutex
	upstreamSub ByteSubscription

	initialDelivered atomic.Bool
}

// NewTransformer builds a Transformer from cfg, applying defaults for
// Decoder, Logger, and Future.
func NewTransformer[I any, E any](cfg Config[I, E]) *Transformer[I, E] {
	if cfg.Decoder == nil {
		cfg.Decoder = wire.NewCodec()
	}
	if cfg.Logger == nil {
		cfg.Logger = defaultLogger
	}
	if cfg.Future == nil {
		cfg.Future = NewFuture()
	}
	return &Transformer[I, E]{cfg: cfg}
}

// Reset prepares the transformer for a new upstream stream, as happens
// between retries of the enclosing request. It must only be called when no
// drain task or dispatch is in flight.
func (t *Transformer[I, E]) Reset(decoder FrameDecoder) {
	if decoder == nil {
		decoder = wire.NewCodec()
	}
	t.queueMu.Lock()
	t.queue = nil
	t.cfg.Decoder = decoder
	t.queueMu.Unlock()

	t.termMu.Lock()
	t.err = nil
	t.termMu.Unlock()

	t.errored.Store(false)
	t.finalized.Store(false)
	t.cancelled.Store(false)
	t.initialDelivered.Store(false)
	t.ledger = demandLedger{}

	t.subMu.Lock()
	t.subscriber = nil
	t.subMu.Unlock()

	t.upstreamMu.Lock()
	t.upstreamSub = nil
	t.upstreamMu.Unlock()
}

// ResponseReceived is a no-op: the real response arrives via the first
// frame of the event stream, not the wire-level response object.
func (t *Transformer[I, E]) ResponseReceived(wireResponse any) {}

// OnStream attaches the transformer to the upstream byte publisher,
// implementing the request layer's async-response-transformer contract.
func (t *Transformer[I, E]) OnStream(publisher BytePublisher) {
	publisher.Subscribe(t)
}

// ExceptionOccurred is called by the enclosing request machinery when a
// request-level error occurs outside the frame-decoding path. It converges
// on the same terminal error path as protocol and decode errors.
func (t *Transformer[I, E]) ExceptionOccurred(err error) {
	t.raiseError(err)
}

func (t *Transformer[I, E]) logger() Logger {
	if t.cfg.Logger != nil {
		return t.cfg.Logger
	}
	return defaultLogger
}

func (t *Transformer[I, E]) currentSubscriber() EventSubscriber[E] {
	t.subMu.Lock()
	defer t.subMu.Unlock()
	return t.subscriber
}

func (t *Transformer[I, E]) currentUpstreamSubscription() ByteSubscription {
	t.upstreamMu.Lock()
	defer t.upstreamMu.Unlock()
	return t.upstreamSub
}

func (t *Transformer[I, E]) publisher() *EventPublisher[E] {
	return &EventPublisher[E]{ops: t}
}

// safeDeliver invokes fn, recovering and logging any panic rather than
// letting a misbehaving subscriber corrupt the pipeline.
func (t *Transformer[I, E]) safeDeliver(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			t.logger()("eventstream: downstream subscriber.%s panicked: %v", name, r)
		}
	}()
	fn()
}

func zero[E any]() E {
	var z E
	return z
}
