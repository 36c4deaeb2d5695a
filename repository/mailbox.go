package repository

import (
	"context"

	"github.com/eduverse/backend/domain"
)

// MailboxRepository stores the append-only notification log.
type MailboxRepository interface {
	// Append adds one message to the end of the log.
	Append(ctx context.Context, msg domain.NotificationMessage) error
	// Inbox returns every message addressed to exactly the given identity,
	// in append order.
	Inbox(ctx context.Context, identity domain.Identity) ([]domain.NotificationMessage, error)
}
