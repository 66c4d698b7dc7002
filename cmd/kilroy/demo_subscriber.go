package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/danshapiro/kilroy/internal/eventstream"
)

type demoInitial struct {
	Body string
}

type demoEvent struct {
	EventType string
	Body      string
}

func demoInitialUnmarshaller(resp eventstream.SyntheticResponse) (demoInitial, error) {
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return demoInitial{}, err
	}
	return demoInitial{Body: string(b)}, nil
}

func demoEventUnmarshaller(resp eventstream.SyntheticResponse) (demoEvent, error) {
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return demoEvent{}, err
	}
	return demoEvent{EventType: resp.Headers[":event-type"], Body: string(b)}, nil
}

func demoExceptionUnmarshaller(resp eventstream.SyntheticResponse) (error, error) {
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return errors.New(string(b)), nil
}

// demoHandler is the eventstream.ResponseHandler the demo plugs in: it
// prints every callback to stdout so a reader can watch the transformer's
// dispatch decisions as the synthetic transport delivers bytes.
type demoHandler struct{}

func (demoHandler) ResponseReceived(initial demoInitial) {
	fmt.Printf("initial-response: %s\n", initial.Body)
}

func (demoHandler) OnEventStream(publisher *eventstream.EventPublisher[demoEvent]) {
	sub := &demoEventSubscriber{}
	if err := publisher.Subscribe(sub); err != nil {
		fmt.Fprintln(os.Stderr, "eventstream: subscribe failed:", err)
	}
}

func (demoHandler) Complete() {
	fmt.Println("complete")
}

func (demoHandler) ExceptionOccurred(err error) {
	fmt.Fprintln(os.Stderr, "exception:", err)
}

// demoEventSubscriber requests unbounded demand up front and prints every
// delivered event.
type demoEventSubscriber struct {
	sub eventstream.EventSubscription
}

func (s *demoEventSubscriber) OnSubscribe(sub eventstream.EventSubscription) {
	s.sub = sub
	sub.Request(math.MaxInt64)
}

func (s *demoEventSubscriber) OnNext(event demoEvent) {
	fmt.Printf("event[%s]: %s\n", event.EventType, event.Body)
}

func (s *demoEventSubscriber) OnError(err error) {
	fmt.Fprintln(os.Stderr, "event stream error:", err)
}

func (s *demoEventSubscriber) OnComplete() {
	fmt.Println("event stream complete")
}
