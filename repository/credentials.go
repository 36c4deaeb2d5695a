package repository

import (
	"context"

	"github.com/eduverse/backend/domain"
)

// CredentialStore persists the current authenticated identity as a single
// record. Load returns (nil, nil) when no record exists.
type CredentialStore interface {
	Save(ctx context.Context, user *domain.User) error
	Load(ctx context.Context) (*domain.User, error)
	Clear(ctx context.Context) error
}
