package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// demoMessage is one synthesized wire frame for the demo transport, in
// source order.
type demoMessage struct {
	// Kind is "initial", "event", or "error".
	Kind string `yaml:"kind"`
	// EventType names the :event-type header for Kind == "event".
	EventType string `yaml:"event_type,omitempty"`
	Payload   string `yaml:"payload"`
}

// demoConfig drives the eventstream demo: how large a byte chunk the
// synthetic transport delivers per Request, and which frames it carries.
type demoConfig struct {
	ChunkSize int           `yaml:"chunk_size"`
	Messages  []demoMessage `yaml:"messages"`
}

func defaultDemoConfig() demoConfig {
	return demoConfig{
		ChunkSize: 24,
		Messages: []demoMessage{
			{Kind: "initial", Payload: `{"status":"accepted"}`},
			{Kind: "event", EventType: "token", Payload: `{"text":"hello"}`},
			{Kind: "event", EventType: "token", Payload: `{"text":"world"}`},
			{Kind: "event", EventType: "done", Payload: `{"reason":"stop"}`},
		},
	}
}

func loadDemoConfigFile(path string) (demoConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return demoConfig{}, err
	}
	var cfg demoConfig
	if err := decodeDemoConfigYAML(b, &cfg); err != nil {
		return demoConfig{}, err
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 24
	}
	return cfg, nil
}

func decodeDemoConfigYAML(b []byte, cfg *demoConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return err
	}
	var trailing any
	if err := dec.Decode(&trailing); err != io.EOF {
		if err == nil {
			return fmt.Errorf("yaml: multiple documents are not allowed")
		}
		return err
	}
	return nil
}
