package debounce

import (
	"context"
	"testing"
	"time"
)

func TestDebounceEmitsLastValueAfterSilence(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan string)
	out := Debounce(ctx, in, 500*time.Millisecond)

	for _, text := range []string{"gol", "gola", "golang"} {
		in <- text
		time.Sleep(100 * time.Millisecond)
	}
	// The last sleep already consumed 100ms of the window.
	last := time.Now().Add(-100 * time.Millisecond)

	select {
	case got := <-out:
		elapsed := time.Since(last)
		if got != "golang" {
			t.Fatalf("committed = %q, want %q", got, "golang")
		}
		if elapsed < 450*time.Millisecond || elapsed > 900*time.Millisecond {
			t.Fatalf("committed after %v, want about 500ms", elapsed)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no committed query")
	}

	select {
	case got := <-out:
		t.Fatalf("unexpected second commit %q", got)
	case <-time.After(700 * time.Millisecond):
	}
}

func TestDebounceNoEmissionWhileBursting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan string)
	out := Debounce(ctx, in, 200*time.Millisecond)

	deadline := time.Now().Add(600 * time.Millisecond)
	for time.Now().Before(deadline) {
		in <- "query"
		select {
		case got := <-out:
			t.Fatalf("emitted %q during burst", got)
		case <-time.After(50 * time.Millisecond):
		}
	}

	select {
	case got := <-out:
		if got != "query" {
			t.Fatalf("committed = %q, want %q", got, "query")
		}
	case <-time.After(time.Second):
		t.Fatalf("no committed query after burst")
	}
}

func TestDebounceTrimsAndFlushesOnClose(t *testing.T) {
	in := make(chan string)
	out := Debounce(context.Background(), in, time.Hour)

	in <- "  backend  "
	close(in)

	got, ok := <-out
	if !ok || got != "backend" {
		t.Fatalf("flushed = %q (ok=%v), want %q", got, ok, "backend")
	}
	if _, ok := <-out; ok {
		t.Fatalf("expected output to be closed")
	}
}

func TestDebounceCancelDropsPending(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan string)
	out := Debounce(ctx, in, time.Hour)

	in <- "pending"
	cancel()

	select {
	case got, ok := <-out:
		if ok {
			t.Fatalf("emitted %q after cancel", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("output not closed after cancel")
	}
}
