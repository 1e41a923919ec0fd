package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"
)

type collectSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *collectSink) Emit(_ context.Context, event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *collectSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestDispatcherDeliversAndDrains(t *testing.T) {
	sink := &collectSink{}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 16, DropIfFull: true}, sink)

	for i := 0; i < 10; i++ {
		d.Emit(context.Background(), Event{EventType: "login_success", UserID: "user-1"})
	}
	d.Close()

	if got := sink.len(); got != 10 {
		t.Fatalf("expected 10 delivered events, got %d", got)
	}
	if d.Dropped() != 0 {
		t.Fatalf("expected no drops, got %d", d.Dropped())
	}
}

func TestDispatcherDisabledIsNil(t *testing.T) {
	d := NewDispatcher(Config{Enabled: false}, &collectSink{})
	if d != nil {
		t.Fatal("disabled dispatcher should be nil")
	}

	// Nil dispatcher methods are all no-ops.
	d.Emit(context.Background(), Event{EventType: "logout_session"})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher reported drops")
	}
}

func TestDispatcherCountsDropsWhenFull(t *testing.T) {
	// A sink that blocks until released, so the buffer fills.
	release := make(chan struct{})
	blocking := sinkFunc(func(context.Context, Event) { <-release })

	d := NewDispatcher(Config{Enabled: true, BufferSize: 1, DropIfFull: true}, blocking)
	defer func() {
		close(release)
		d.Close()
	}()

	// First event occupies the worker, the rest pile into a 1-slot buffer.
	for i := 0; i < 8; i++ {
		d.Emit(context.Background(), Event{EventType: "login_success"})
	}

	deadline := time.After(2 * time.Second)
	for d.Dropped() == 0 {
		select {
		case <-deadline:
			t.Fatal("expected drops once buffer filled")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

func TestDispatcherEmitAfterClose(t *testing.T) {
	sink := &collectSink{}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 4, DropIfFull: true}, sink)
	d.Close()

	d.Emit(context.Background(), Event{EventType: "login_success"})

	if got := sink.len(); got != 0 {
		t.Fatalf("event delivered after close: %d", got)
	}
}

type sinkFunc func(context.Context, Event)

func (f sinkFunc) Emit(ctx context.Context, event Event) { f(ctx, event) }

func TestChannelSink(t *testing.T) {
	sink := NewChannelSink(2)
	sink.Emit(context.Background(), Event{EventType: "session_evicted", Token: "tok-1"})

	select {
	case event := <-sink.Events():
		if event.EventType != "session_evicted" || event.Token != "tok-1" {
			t.Fatalf("unexpected event: %+v", event)
		}
	default:
		t.Fatal("expected buffered event")
	}

	// Emit on a full channel respects context cancellation.
	sink.Emit(context.Background(), Event{})
	sink.Emit(context.Background(), Event{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sink.Emit(ctx, Event{EventType: "overflow"})
}

func TestJSONWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), Event{
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		EventType: "login_success",
		UserID:    "user-1",
		Success:   true,
		Metadata:  map[string]string{"evicted": "tok-0"},
	})

	var decoded Event
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode line: %v", err)
	}
	if decoded.EventType != "login_success" || decoded.UserID != "user-1" || !decoded.Success {
		t.Fatalf("unexpected decoded event: %+v", decoded)
	}
	if decoded.Metadata["evicted"] != "tok-0" {
		t.Fatalf("metadata lost: %+v", decoded.Metadata)
	}
	if buf.Bytes()[buf.Len()-1] != '\n' {
		t.Fatal("expected newline-terminated record")
	}
}
