// Package kv implements the repositories on top of the injected key-value
// store, one well-known key per record.
package kv

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/eduverse/backend/domain"
	"github.com/eduverse/backend/internal/infrastructure/kvstore"
	"github.com/eduverse/backend/repository"
)

// SessionKey is the well-known key the current user record lives under.
const SessionKey = "session.current_user"

type credentialRepository struct {
	store  kvstore.Store
	logger *zap.Logger
}

// NewCredentialStore creates a key-value backed credential store.
func NewCredentialStore(store kvstore.Store, logger *zap.Logger) repository.CredentialStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &credentialRepository{store: store, logger: logger}
}

func (r *credentialRepository) Save(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.store.Put(SessionKey, payload)
}

// Load deserializes the persisted record. A corrupt value is removed and
// reported as absence rather than failing the caller.
func (r *credentialRepository) Load(ctx context.Context) (*domain.User, error) {
	raw, err := r.store.Get(SessionKey)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		r.logger.Warn("clearing corrupt session record", zap.Error(err))
		return nil, r.store.Delete(SessionKey)
	}
	if user.ID == "" || !user.Role.Valid() || !user.ProfileMatchesRole() {
		r.logger.Warn("clearing inconsistent session record",
			zap.String("role", string(user.Role)))
		return nil, r.store.Delete(SessionKey)
	}
	return &user, nil
}

func (r *credentialRepository) Clear(ctx context.Context) error {
	return r.store.Delete(SessionKey)
}
