package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/roamstead/camper-rentals/internal/core/domain"
	"github.com/roamstead/camper-rentals/internal/core/ports"
)

type recordingReceiver struct {
	mu     sync.Mutex
	events []ports.SessionEvent
	seen   chan struct{}
}

func newRecordingReceiver() *recordingReceiver {
	return &recordingReceiver{seen: make(chan struct{}, 64)}
}

func (r *recordingReceiver) Apply(_ context.Context, ev ports.SessionEvent) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	r.seen <- struct{}{}
}

func (r *recordingReceiver) wait(t *testing.T, n int) []ports.SessionEvent {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.seen:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d of %d", i+1, n)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.SessionEvent, len(r.events))
	copy(out, r.events)
	return out
}

func sessionEvent(subjectID, email string) ports.SessionEvent {
	return ports.SessionEvent{
		SubjectID: subjectID,
		Session:   &domain.Session{SubjectID: subjectID, Email: email},
	}
}

func TestDispatcher_AppliesEventsInOrderPerSubject(t *testing.T) {
	receiver := newRecordingReceiver()
	d := NewDispatcher(4, receiver, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	emails := []string{"a@example.com", "b@example.com", "c@example.com", "d@example.com"}
	for _, email := range emails {
		d.Enqueue(sessionEvent("auth0|u_1", email))
	}

	got := receiver.wait(t, len(emails))
	for i, ev := range got {
		if ev.Session.Email != emails[i] {
			t.Fatalf("event %d = %q, want %q", i, ev.Session.Email, emails[i])
		}
	}
}

func TestDispatcher_ShardingIsDeterministic(t *testing.T) {
	d := NewDispatcher(8, newRecordingReceiver(), zerolog.Nop())

	for _, subject := range []string{"auth0|u_1", "auth0|u_2", ""} {
		first := d.shardIndex(subject)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(subject); got != first {
				t.Fatalf("shard for %q flapped: %d then %d", subject, first, got)
			}
		}
		if first < 0 || first >= 8 {
			t.Fatalf("shard %d out of range", first)
		}
	}
}

func TestDispatcher_EnqueueBatchPreservesOrder(t *testing.T) {
	receiver := newRecordingReceiver()
	d := NewDispatcher(1, receiver, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.EnqueueBatch([]ports.SessionEvent{
		sessionEvent("auth0|u_1", "first@example.com"),
		{SubjectID: "auth0|u_1"},
		sessionEvent("auth0|u_1", "third@example.com"),
	})

	got := receiver.wait(t, 3)
	if got[0].Session == nil || got[0].Session.Email != "first@example.com" {
		t.Fatalf("event 0 = %+v", got[0])
	}
	if got[1].Session != nil {
		t.Fatalf("event 1 should be the sign-out: %+v", got[1])
	}
	if got[2].Session == nil || got[2].Session.Email != "third@example.com" {
		t.Fatalf("event 2 = %+v", got[2])
	}
}

func TestDispatcher_StopsOnContextCancel(t *testing.T) {
	receiver := newRecordingReceiver()
	d := NewDispatcher(2, receiver, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Enqueue(sessionEvent("auth0|u_1", "a@example.com"))
	receiver.wait(t, 1)
	cancel()

	// Workers drain nothing further once stopped; give them a beat to exit.
	time.Sleep(20 * time.Millisecond)
	d.Enqueue(sessionEvent("auth0|u_1", "b@example.com"))

	select {
	case <-receiver.seen:
		t.Fatalf("event applied after shutdown")
	case <-time.After(50 * time.Millisecond):
	}
}
