// Package wire implements the binary event-stream frame format consumed by
// package eventstream: a reference FrameDecoder and a matching Encoder used
// by tests and the CLI demo to produce frames.
//
// Frame layout on the wire:
//
//	u32be totalLen
//	u32be headerLen
//	headerLen bytes of msgpack-encoded map[string]HeaderValue
//	8 bytes of BLAKE3(payload) truncated digest
//	remaining bytes: payload
package wire

import "fmt"

// HeaderValueKind discriminates the typed header values the frame format
// supports. Only KindString is surfaced to unmarshallers through the
// synthetic response (see eventstream's message dispatcher); the others are retained on
// Message.Headers for callers who inspect frames directly.
type HeaderValueKind int

const (
	KindString HeaderValueKind = iota
	KindBool
	KindInt64
	KindBytes
	KindTimestamp
)

// HeaderValue is a tagged union over the header value kinds the wire format
// can carry. Exactly one of the typed fields is meaningful, selected by Kind.
type HeaderValue struct {
	Kind      HeaderValueKind `msgpack:"k"`
	String    string          `msgpack:"s,omitempty"`
	Bool      bool            `msgpack:"b,omitempty"`
	Int64     int64           `msgpack:"i,omitempty"`
	Bytes     []byte          `msgpack:"y,omitempty"`
	TimestampUnixNano int64   `msgpack:"t,omitempty"`
}

// StringHeader builds a string-kinded HeaderValue.
func StringHeader(s string) HeaderValue { return HeaderValue{Kind: KindString, String: s} }

// Message is one decoded unit of the event-stream wire format: a header
// block plus an opaque payload.
type Message struct {
	Headers map[string]HeaderValue
	Payload []byte
}

// MessageType reads the required :message-type string header. An empty
// string and false are returned if the header is absent or not a string.
func (m Message) MessageType() (string, bool) {
	return m.stringHeader(":message-type")
}

// EventType reads the optional :event-type string header.
func (m Message) EventType() (string, bool) {
	return m.stringHeader(":event-type")
}

func (m Message) stringHeader(name string) (string, bool) {
	hv, ok := m.Headers[name]
	if !ok || hv.Kind != KindString {
		return "", false
	}
	return hv.String, true
}

// StringHeaders projects every string-kinded header into a plain map, the
// shape eventstream's message dispatcher hands to unmarshallers as synthetic response
// headers. Non-string headers are dropped.
func (m Message) StringHeaders() map[string]string {
	out := make(map[string]string, len(m.Headers))
	for k, v := range m.Headers {
		if v.Kind == KindString {
			out[k] = v.String
		}
	}
	return out
}

func (k HeaderValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt64:
		return "int64"
	case KindBytes:
		return "bytes"
	case KindTimestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}
