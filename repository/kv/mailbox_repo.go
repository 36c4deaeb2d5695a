package kv

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/eduverse/backend/domain"
	"github.com/eduverse/backend/internal/infrastructure/kvstore"
	"github.com/eduverse/backend/repository"
)

// NotificationsKey is the well-known key the notification log lives under.
const NotificationsKey = "notifications.log"

type mailboxRepository struct {
	store  kvstore.Store
	logger *zap.Logger

	// mu serializes the read-modify-write of the log within this process.
	// Across processes the store keeps last-writer-wins semantics.
	mu sync.Mutex
}

// NewMailboxRepository creates a key-value backed notification log.
func NewMailboxRepository(store kvstore.Store, logger *zap.Logger) repository.MailboxRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &mailboxRepository{store: store, logger: logger}
}

func (r *mailboxRepository) Append(ctx context.Context, msg domain.NotificationMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log, err := r.readLog()
	if err != nil {
		return err
	}
	log = append(log, msg)

	payload, err := json.Marshal(log)
	if err != nil {
		return err
	}
	return r.store.Put(NotificationsKey, payload)
}

func (r *mailboxRepository) Inbox(ctx context.Context, identity domain.Identity) ([]domain.NotificationMessage, error) {
	r.mu.Lock()
	log, err := r.readLog()
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	inbox := make([]domain.NotificationMessage, 0, len(log))
	for _, msg := range log {
		if msg.To.Equal(identity) {
			inbox = append(inbox, msg)
		}
	}
	return inbox, nil
}

// readLog treats a missing or malformed value as an empty log.
func (r *mailboxRepository) readLog() ([]domain.NotificationMessage, error) {
	raw, err := r.store.Get(NotificationsKey)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var log []domain.NotificationMessage
	if err := json.Unmarshal(raw, &log); err != nil {
		r.logger.Warn("ignoring malformed notification log", zap.Error(err))
		return nil, nil
	}
	return log, nil
}
