package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/blake3"
)

const checksumLen = 8

// FrameDecoder is the external collaborator: it takes bytes and emits
// complete messages, buffering any partial trailing frame internally.
// Codec is the reference implementation; callers of eventstream.Transformer
// may supply any type satisfying this interface.
type FrameDecoder interface {
	// Feed appends chunk to the internal buffer and returns every message
	// that became complete as a result, in wire order. A chunk that
	// completes no frame returns a nil slice and a nil error.
	Feed(chunk []byte) ([]Message, error)
}

// Codec is the reference FrameDecoder/encoder pair for the frame format
// documented in message.go. It is not safe for concurrent use; callers feed
// it from a single goroutine at a time (eventstream.Transformer.OnNext does
// so under the transformer's queue lock).
type Codec struct {
	buf bytes.Buffer
}

// NewCodec returns an empty Codec ready to decode a fresh stream.
func NewCodec() *Codec { return &Codec{} }

// Feed implements FrameDecoder.
func (c *Codec) Feed(chunk []byte) ([]Message, error) {
	if len(chunk) > 0 {
		c.buf.Write(chunk)
	}
	var out []Message
	for {
		msg, consumed, err := decodeOne(c.buf.Bytes())
		if err != nil {
			return out, err
		}
		if consumed == 0 {
			return out, nil
		}
		c.buf.Next(consumed)
		out = append(out, msg)
	}
}

// decodeOne attempts to decode a single frame from buf without copying it
// out first. It returns (zero Message, 0, nil) if buf does not yet hold a
// complete frame.
func decodeOne(buf []byte) (Message, int, error) {
	if len(buf) < 4 {
		return Message{}, 0, nil
	}
	totalLen := binary.BigEndian.Uint32(buf[0:4])
	if totalLen < 4+4+checksumLen {
		return Message{}, 0, fmt.Errorf("wire: frame length %d too small for header", totalLen)
	}
	if uint64(len(buf)) < uint64(totalLen) {
		return Message{}, 0, nil
	}
	frame := buf[:totalLen]
	headerLen := binary.BigEndian.Uint32(frame[4:8])
	headerStart := 8
	headerEnd := headerStart + int(headerLen)
	if headerEnd+checksumLen > len(frame) {
		return Message{}, 0, fmt.Errorf("wire: header length %d overruns frame of %d bytes", headerLen, len(frame))
	}
	headerBytes := frame[headerStart:headerEnd]
	sum := frame[headerEnd : headerEnd+checksumLen]
	payload := frame[headerEnd+checksumLen:]

	if err := verifyChecksum(payload, sum); err != nil {
		return Message{}, 0, err
	}

	var headers map[string]HeaderValue
	if len(headerBytes) > 0 {
		if err := msgpack.Unmarshal(headerBytes, &headers); err != nil {
			return Message{}, 0, fmt.Errorf("wire: decode headers: %w", err)
		}
	}

	payloadCopy := make([]byte, len(payload))
	copy(payloadCopy, payload)

	return Message{Headers: headers, Payload: payloadCopy}, int(totalLen), nil
}

func verifyChecksum(payload, want []byte) error {
	got := payloadChecksum(payload)
	if !bytes.Equal(got, want) {
		return fmt.Errorf("wire: payload checksum mismatch: got %x want %x", got, want)
	}
	return nil
}

func payloadChecksum(payload []byte) []byte {
	h := blake3.New()
	_, _ = h.Write(payload)
	return h.Sum(nil)[:checksumLen]
}

// Encode serializes headers and payload into a single frame in the format
// decodeOne expects. It is used by tests and the CLI demo to synthesize
// wire bytes.
func Encode(headers map[string]HeaderValue, payload []byte) ([]byte, error) {
	headerBytes, err := msgpack.Marshal(headers)
	if err != nil {
		return nil, fmt.Errorf("wire: encode headers: %w", err)
	}
	sum := payloadChecksum(payload)

	totalLen := 4 + 4 + len(headerBytes) + checksumLen + len(payload)
	out := make([]byte, 0, totalLen)
	buf := make([]byte, 4)

	binary.BigEndian.PutUint32(buf, uint32(totalLen))
	out = append(out, buf...)
	binary.BigEndian.PutUint32(buf, uint32(len(headerBytes)))
	out = append(out, buf...)
	out = append(out, headerBytes...)
	out = append(out, sum...)
	out = append(out, payload...)
	return out, nil
}
