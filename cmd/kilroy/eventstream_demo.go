package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/danshapiro/kilroy/internal/eventstream"
	"github.com/danshapiro/kilroy/internal/wire"
)

func eventstreamDemo(args []string) {
	var configPath string
	var chunkSizeOverride int

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "--config requires a value")
				os.Exit(1)
			}
			configPath = args[i]
		case "--chunk-size":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "--chunk-size requires a value")
				os.Exit(1)
			}
			n := 0
			if _, err := fmt.Sscanf(args[i], "%d", &n); err != nil || n <= 0 {
				fmt.Fprintf(os.Stderr, "--chunk-size %q is not a positive integer\n", args[i])
				os.Exit(1)
			}
			chunkSizeOverride = n
		default:
			fmt.Fprintf(os.Stderr, "unknown arg: %s\n", args[i])
			os.Exit(1)
		}
	}

	cfg := defaultDemoConfig()
	if configPath != "" {
		loaded, err := loadDemoConfigFile(configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if chunkSizeOverride > 0 {
		cfg.ChunkSize = chunkSizeOverride
	}

	stream, err := encodeDemoMessages(cfg.Messages)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	chunks := splitIntoChunks(stream, cfg.ChunkSize)

	future := eventstream.NewFuture()
	transformer := eventstream.NewTransformer(eventstream.Config[demoInitial, demoEvent]{
		Handler:               demoHandler{},
		InitialUnmarshaller:   demoInitialUnmarshaller,
		EventUnmarshaller:     demoEventUnmarshaller,
		ExceptionUnmarshaller: demoExceptionUnmarshaller,
		Executor:              eventstream.NewSerialExecutor(),
		Future:                future,
	})

	source := newChunkSource(chunks, func() {
		transformer.Complete()
	})
	transformer.OnStream(source)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := future.Wait(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "eventstream: demo timed out waiting for completion:", err)
		os.Exit(1)
	}
}

func encodeDemoMessages(messages []demoMessage) ([]byte, error) {
	var out []byte
	for i, m := range messages {
		headers := map[string]wire.HeaderValue{}
		switch m.Kind {
		case "initial":
			headers[":message-type"] = wire.StringHeader("event")
			headers[":event-type"] = wire.StringHeader("initial-response")
		case "event":
			headers[":message-type"] = wire.StringHeader("event")
			headers[":event-type"] = wire.StringHeader(m.EventType)
		case "error":
			headers[":message-type"] = wire.StringHeader("error")
		default:
			return nil, fmt.Errorf("demo message %d: unknown kind %q", i, m.Kind)
		}
		headers[":message-id"] = wire.StringHeader(wire.NewMessageID())

		frame, err := wire.Encode(headers, []byte(m.Payload))
		if err != nil {
			return nil, fmt.Errorf("demo message %d: %w", i, err)
		}
		out = append(out, frame...)
	}
	return out, nil
}

func splitIntoChunks(stream []byte, size int) [][]byte {
	if size <= 0 {
		size = len(stream)
		if size == 0 {
			return nil
		}
	}
	var chunks [][]byte
	for len(stream) > 0 {
		n := size
		if n > len(stream) {
			n = len(stream)
		}
		chunks = append(chunks, stream[:n])
		stream = stream[n:]
	}
	return chunks
}
