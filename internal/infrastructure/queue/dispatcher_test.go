package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/backoffice/user-admin-api/internal/core/domain"
	"github.com/backoffice/user-admin-api/internal/core/ports"
)

type recordingNotifier struct {
	mu       sync.Mutex
	events   []ports.UserCreatedEvent
	attempts int
	err      error
}

func (n *recordingNotifier) NotifyUserCreated(_ context.Context, event ports.UserCreatedEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.attempts++
	if n.err != nil {
		return n.err
	}
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

func (n *recordingNotifier) tried() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.attempts
}

type memorySentChecker struct {
	mu   sync.Mutex
	sent map[string]bool
}

func newMemorySentChecker() *memorySentChecker {
	return &memorySentChecker{sent: make(map[string]bool)}
}

func (c *memorySentChecker) IsSent(_ context.Context, userID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sent[userID], nil
}

func (c *memorySentChecker) MarkSent(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent[userID] = true
	return nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestDispatcher_DeliversAndMarksSent(t *testing.T) {
	notifier := &recordingNotifier{}
	checker := newMemorySentChecker()
	d := NewDispatcher(2, notifier, checker, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.UserCreatedEvent{
		User:              domain.User{ID: "u001", Email: "jane@example.com"},
		PlaintextPassword: "Ab12Cd34",
	})

	waitFor(t, func() bool { return notifier.count() == 1 })

	sent, _ := checker.IsSent(ctx, "u001")
	if !sent {
		t.Fatalf("dedup key not set after delivery")
	}
}

func TestDispatcher_SkipsDuplicates(t *testing.T) {
	notifier := &recordingNotifier{}
	checker := newMemorySentChecker()
	_ = checker.MarkSent(context.Background(), "u001")
	d := NewDispatcher(1, notifier, checker, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.UserCreatedEvent{User: domain.User{ID: "u001"}})
	d.Enqueue(ports.UserCreatedEvent{User: domain.User{ID: "u002"}})

	// u002 proves the worker drained past u001.
	waitFor(t, func() bool { return notifier.count() == 1 })
	if notifier.events[0].User.ID != "u002" {
		t.Fatalf("expected only u002 to be delivered, got %+v", notifier.events)
	}
}

func TestDispatcher_FailureDoesNotMarkSent(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp unreachable")}
	checker := newMemorySentChecker()
	d := NewDispatcher(1, notifier, checker, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.UserCreatedEvent{User: domain.User{ID: "u001"}})

	waitFor(t, func() bool { return notifier.tried() == 1 })
	if sent, _ := checker.IsSent(ctx, "u001"); sent {
		t.Fatalf("failed delivery must not set the dedup key")
	}
}

func TestDispatcher_SameUserSameWorker(t *testing.T) {
	d := NewDispatcher(4, &recordingNotifier{}, newMemorySentChecker(), zerolog.Nop())
	if d.shardIndex("u001") != d.shardIndex("u001") {
		t.Fatalf("shard index must be stable for a user id")
	}
}
