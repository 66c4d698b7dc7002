package eventstream

import (
	"context"
	"testing"
	"time"
)

func TestFuture_WaitBlocksUntilComplete(t *testing.T) {
	f := NewFuture()
	if f.Settled() {
		t.Fatal("fresh future should not be settled")
	}

	done := make(chan error, 1)
	go func() {
		done <- f.Wait(context.Background())
	}()

	select {
	case <-done:
		t.Fatal("Wait returned before future settled")
	case <-time.After(20 * time.Millisecond):
	}

	f.complete()
	if !f.Settled() {
		t.Fatal("future should be settled after complete")
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Wait: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after complete")
	}
}

func TestFuture_CompleteIsIdempotent(t *testing.T) {
	f := NewFuture()
	f.complete()
	f.complete() // must not panic on double close
	if !f.Settled() {
		t.Fatal("expected future to be settled")
	}
}

func TestFuture_WaitRespectsContextCancellation(t *testing.T) {
	f := NewFuture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := f.Wait(ctx); err == nil {
		t.Fatal("expected Wait to return an error for a cancelled context")
	}
}
