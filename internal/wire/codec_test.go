package wire

import (
	"bytes"
	"testing"
)

func TestCodec_RoundTrip_SingleFrame(t *testing.T) {
	headers := map[string]HeaderValue{
		":message-type": StringHeader("event"),
		":event-type":   StringHeader("token"),
	}
	payload := []byte(`{"text":"hi"}`)

	frame, err := Encode(headers, payload)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	c := NewCodec()
	msgs, err := c.Feed(frame)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("want 1 message, got %d", len(msgs))
	}
	if !bytes.Equal(msgs[0].Payload, payload) {
		t.Fatalf("payload mismatch: got %q want %q", msgs[0].Payload, payload)
	}
	mt, ok := msgs[0].MessageType()
	if !ok || mt != "event" {
		t.Fatalf("message type: %q, %v", mt, ok)
	}
	et, ok := msgs[0].EventType()
	if !ok || et != "token" {
		t.Fatalf("event type: %q, %v", et, ok)
	}
}

func TestCodec_Feed_SplitAcrossChunks(t *testing.T) {
	headers := map[string]HeaderValue{":message-type": StringHeader("event")}
	payload := []byte("0123456789abcdef")

	frame, err := Encode(headers, payload)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	c := NewCodec()
	var got []Message
	for i := 0; i < len(frame); i++ {
		msgs, err := c.Feed(frame[i : i+1])
		if err != nil {
			t.Fatalf("Feed at byte %d: %v", i, err)
		}
		got = append(got, msgs...)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 message after feeding byte-by-byte, got %d", len(got))
	}
	if !bytes.Equal(got[0].Payload, payload) {
		t.Fatalf("payload mismatch: got %q want %q", got[0].Payload, payload)
	}
}

func TestCodec_Feed_MultipleFramesInOneChunk(t *testing.T) {
	h := map[string]HeaderValue{":message-type": StringHeader("event")}
	f1, err := Encode(h, []byte("first"))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	f2, err := Encode(h, []byte("second"))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	c := NewCodec()
	msgs, err := c.Feed(append(append([]byte{}, f1...), f2...))
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("want 2 messages, got %d", len(msgs))
	}
	if string(msgs[0].Payload) != "first" || string(msgs[1].Payload) != "second" {
		t.Fatalf("unexpected payload order: %q, %q", msgs[0].Payload, msgs[1].Payload)
	}
}

func TestCodec_Feed_ChecksumMismatchIsRejected(t *testing.T) {
	h := map[string]HeaderValue{":message-type": StringHeader("event")}
	frame, err := Encode(h, []byte("payload"))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// Corrupt a payload byte without touching the checksum.
	corrupted := append([]byte{}, frame...)
	corrupted[len(corrupted)-1] ^= 0xFF

	c := NewCodec()
	if _, err := c.Feed(corrupted); err == nil {
		t.Fatal("want checksum mismatch error, got nil")
	}
}

func TestMessage_StringHeaders_DropsNonStringKinds(t *testing.T) {
	msg := Message{
		Headers: map[string]HeaderValue{
			"str": StringHeader("v"),
			"num": {Kind: KindInt64, Int64: 7},
		},
	}
	got := msg.StringHeaders()
	if len(got) != 1 || got["str"] != "v" {
		t.Fatalf("StringHeaders: %+v", got)
	}
}
