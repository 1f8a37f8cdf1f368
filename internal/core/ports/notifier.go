package ports

import (
	"context"

	"github.com/backoffice/user-admin-api/internal/core/domain"
)

// UserCreatedEvent carries a newly created user and the generated plaintext
// password. The plaintext is used exactly once for the welcome notification;
// it must never be logged or persisted. There is no expiry or forced-rotation
// mechanism attached to it, so delivery channels should be treated as
// sensitive.
type UserCreatedEvent struct {
	User              domain.User
	PlaintextPassword string
}

// NotificationDispatcher accepts events for asynchronous delivery with
// at-least-once semantics. Enqueue is fire-and-forget: delivery failures are
// the dispatcher's concern and are never surfaced to the caller.
type NotificationDispatcher interface {
	Enqueue(event UserCreatedEvent)
}

// Notifier performs the actual delivery of a single notification.
type Notifier interface {
	NotifyUserCreated(ctx context.Context, event UserCreatedEvent) error
}
