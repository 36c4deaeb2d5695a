// Package mailbox implements the peer-to-peer contact message log and the
// per-identity filtered view over it.
package mailbox

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/eduverse/backend/domain"
	"github.com/eduverse/backend/repository"
)

type UseCase struct {
	messages repository.MailboxRepository
	logger   *zap.Logger
}

func New(messages repository.MailboxRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		messages: messages,
		logger:   logger,
	}
}

// Send appends one message to the log. Messages are never mutated or
// deleted afterwards.
func (uc *UseCase) Send(ctx context.Context, msg domain.NotificationMessage) (domain.NotificationMessage, error) {
	if msg.To.Name == "" || !msg.To.Role.Valid() {
		return domain.NotificationMessage{}, domain.NewError(domain.ErrCodeInvalid, "missing recipient identity")
	}
	if msg.From.Name == "" || !msg.From.Role.Valid() {
		return domain.NotificationMessage{}, domain.NewError(domain.ErrCodeInvalid, "missing sender identity")
	}
	if !msg.Channel.Valid() {
		msg.Channel = domain.ChannelMessage
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now().UTC()
	}

	if err := uc.messages.Append(ctx, msg); err != nil {
		return domain.NotificationMessage{}, err
	}
	uc.logger.Info("notification sent",
		zap.String("to", msg.To.Name),
		zap.String("to_role", string(msg.To.Role)),
		zap.String("channel", string(msg.Channel)))
	return msg, nil
}

// Inbox returns every message addressed to exactly (name, role), in send
// order. Identities sharing a name under different roles never see each
// other's mail; identities sharing both collide onto one mailbox.
func (uc *UseCase) Inbox(ctx context.Context, identity domain.Identity) ([]domain.NotificationMessage, error) {
	return uc.messages.Inbox(ctx, identity)
}

// View is one opening of a mailbox. Unread starts at the full inbox size
// and MarkAsRead zeroes it locally; nothing about read state is persisted,
// so the next Open recomputes unread from scratch.
type View struct {
	Identity domain.Identity
	Messages []domain.NotificationMessage
	unread   int
}

// Open loads the inbox and counts every message as unread.
func (uc *UseCase) Open(ctx context.Context, identity domain.Identity) (*View, error) {
	messages, err := uc.messages.Inbox(ctx, identity)
	if err != nil {
		return nil, err
	}
	return &View{
		Identity: identity,
		Messages: messages,
		unread:   len(messages),
	}, nil
}

// Unread returns the view-local unread counter.
func (v *View) Unread() int {
	if v == nil {
		return 0
	}
	return v.unread
}

// MarkAsRead resets the local counter without touching stored messages.
func (v *View) MarkAsRead() {
	if v != nil {
		v.unread = 0
	}
}
