package eventstream

import (
	"io"

	"github.com/danshapiro/kilroy/internal/wire"
)

// BytePublisher is the upstream, byte-oriented asynchronous transport this
// transformer subscribes to.
type BytePublisher interface {
	Subscribe(BytesSubscriber)
}

// BytesSubscriber receives the upstream publisher's callbacks.
type BytesSubscriber interface {
	OnSubscribe(sub ByteSubscription)
	OnNext(chunk []byte)
	OnError(err error)
	OnComplete()
}

// ByteSubscription is the token used to pull more bytes from the upstream
// publisher and to cancel it.
type ByteSubscription interface {
	Request(n int64)
	Cancel()
}

// EventSubscriber is the downstream, event-oriented asynchronous consumer
// this transformer publishes to. Supplied by the caller; at most one may
// ever attach to a given Transformer.
type EventSubscriber[E any] interface {
	OnSubscribe(sub EventSubscription)
	OnNext(event E)
	OnError(err error)
	OnComplete()
}

// EventSubscription is the pull-based token handed to the downstream
// subscriber by EventPublisher.Subscribe.
type EventSubscription interface {
	Request(n int64)
	Cancel()
}

// ResponseHandler is the caller-supplied event-stream response handler: the
// glue between the transformer and the enclosing request machinery.
type ResponseHandler[I any, E any] interface {
	ResponseReceived(initial I)
	OnEventStream(publisher *EventPublisher[E])
	Complete()
	ExceptionOccurred(err error)
}

// InitialUnmarshaller decodes the synthetic response carried by an
// initial-response frame into the caller's initial-response type.
type InitialUnmarshaller[I any] func(resp SyntheticResponse) (I, error)

// EventUnmarshaller decodes the synthetic response carried by a non-initial
// event frame into the caller's event type.
type EventUnmarshaller[E any] func(resp SyntheticResponse) (E, error)

// ExceptionUnmarshaller decodes the synthetic response carried by an error
// or exception frame into a domain-specific error value. The second return
// value reports a decode failure (malformed payload); the first is the
// decoded domain error itself, meaningful only when decoding succeeded.
type ExceptionUnmarshaller func(resp SyntheticResponse) (domainErr error, decodeErr error)

// FrameDecoder is the external collaborator: fed raw bytes, it emits zero
// or more complete messages, buffering any partial trailing frame
// internally. wire.Codec is the reference implementation.
type FrameDecoder = wire.FrameDecoder

// SyntheticResponse is the shape unmarshallers are handed: the message
// payload as a body reader, string-valued headers, and an always-empty
// execution-attributes bag.
type SyntheticResponse struct {
	Body                io.Reader
	Headers             map[string]string
	ExecutionAttributes map[string]any
}
