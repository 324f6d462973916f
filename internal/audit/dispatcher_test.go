package audit

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// collectSink appends events under a lock.
type collectSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *collectSink) Emit(_ context.Context, event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *collectSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	sink := &collectSink{}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 16}, sink)

	d.Emit(context.Background(), Event{EventType: "login"})
	d.Emit(context.Background(), Event{EventType: "logout"})
	d.Close()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.events) != 2 {
		t.Fatalf("delivered %d events, want 2", len(sink.events))
	}
	if sink.events[0].EventType != "login" || sink.events[1].EventType != "logout" {
		t.Fatalf("events = %v", sink.events)
	}
}

func TestDispatcherDisabledIsNil(t *testing.T) {
	d := NewDispatcher(Config{Enabled: false}, &collectSink{})
	if d != nil {
		t.Fatal("disabled config must produce a nil dispatcher")
	}

	// Nil receivers are safe everywhere.
	d.Emit(context.Background(), Event{EventType: "login"})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher must report zero drops")
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	block := make(chan struct{})
	sink := &blockingSink{release: block}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	// First event occupies the worker, second fills the buffer, the rest drop.
	<-sink.started(func() {
		d.Emit(context.Background(), Event{EventType: "e1"})
	})
	d.Emit(context.Background(), Event{EventType: "e2"})
	for i := 0; i < 5; i++ {
		d.Emit(context.Background(), Event{EventType: "overflow"})
	}

	if d.Dropped() == 0 {
		t.Fatal("expected dropped events")
	}

	close(block)
	d.Close()
}

func TestDispatcherDrainsOnClose(t *testing.T) {
	sink := &collectSink{}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 64}, sink)

	for i := 0; i < 50; i++ {
		d.Emit(context.Background(), Event{EventType: "login"})
	}
	d.Close()

	if got := sink.count(); got != 50 {
		t.Fatalf("delivered %d events after close, want 50", got)
	}

	// Emits after close are ignored.
	d.Emit(context.Background(), Event{EventType: "late"})
	if got := sink.count(); got != 50 {
		t.Fatalf("post-close emit delivered, count = %d", got)
	}
}

func TestDispatcherCloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(Config{Enabled: true, BufferSize: 4}, &collectSink{})
	d.Close()
	d.Close()
}

// blockingSink parks the worker until release is closed.
type blockingSink struct {
	release <-chan struct{}
	first   sync.Once
	begun   chan struct{}
}

func (s *blockingSink) Emit(context.Context, Event) {
	s.first.Do(func() {
		if s.begun != nil {
			close(s.begun)
		}
		<-s.release
	})
}

// started runs fn and returns a channel closed once the worker has picked
// up the first event.
func (s *blockingSink) started(fn func()) <-chan struct{} {
	s.begun = make(chan struct{})
	fn()
	return s.begun
}

func TestChannelSink(t *testing.T) {
	sink := NewChannelSink(4)
	sink.Emit(context.Background(), Event{EventType: "login"})

	select {
	case ev := <-sink.Events():
		if ev.EventType != "login" {
			t.Fatalf("event = %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestJSONWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)
	sink.Emit(context.Background(), Event{EventType: "login", UserID: "u-1", Success: true})
	sink.Emit(context.Background(), Event{EventType: "logout", Success: true})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], `"event_type":"login"`) || !strings.Contains(lines[0], `"user_id":"u-1"`) {
		t.Fatalf("first line = %s", lines[0])
	}
}
