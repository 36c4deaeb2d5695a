// Package session owns the authenticated/unauthenticated state: login,
// registration, logout, and restoring the persisted session at startup.
package session

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eduverse/backend/domain"
	"github.com/eduverse/backend/internal/schema"
	"github.com/eduverse/backend/repository"
)

const minPasswordLen = 6

// Manager is the single source of truth for the current session. At most
// one user is authenticated at a time.
type Manager struct {
	creds   repository.CredentialStore
	schema  *schema.Registry
	logger  *zap.Logger
	latency time.Duration

	// loading is true only inside the simulated-latency window of Login
	// and Register. It is the subsystem's only admission control and is
	// never persisted.
	loading atomic.Bool

	mu      sync.RWMutex
	current *domain.User
}

func New(creds repository.CredentialStore, registry *schema.Registry, logger *zap.Logger, latency time.Duration) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		creds:   creds,
		schema:  registry,
		logger:  logger,
		latency: latency,
	}
}

// Restore adopts the persisted record as the initial session state. It runs
// once at process start, before any traffic is accepted, so an existing
// session never flashes as unauthenticated.
func (m *Manager) Restore(ctx context.Context) error {
	user, err := m.creds.Load(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.current = user
	m.mu.Unlock()
	if user != nil {
		m.logger.Info("session restored",
			zap.String("user_id", user.ID),
			zap.String("role", string(user.Role)))
	}
	return nil
}

// Login synthesizes a user from the supplied email and role. There is no
// credential verification in this system; the password is accepted as-is.
func (m *Manager) Login(ctx context.Context, credentials domain.Credentials) (*domain.User, error) {
	if !credentials.Role.Valid() {
		return nil, domain.ErrUnknownRole
	}
	if !m.loading.CompareAndSwap(false, true) {
		return nil, domain.ErrAuthInProgress
	}
	defer m.loading.Store(false)

	m.simulateLatency()

	user := &domain.User{
		ID:        uuid.NewString(),
		Email:     credentials.Email,
		FullName:  displayNameFromEmail(credentials.Email),
		Role:      credentials.Role,
		Verified:  credentials.Role == domain.RoleStudent,
		CreatedAt: time.Now().UTC(),
	}

	if err := m.creds.Save(ctx, user); err != nil {
		return nil, err
	}
	m.setCurrent(user)
	m.logger.Info("login succeeded",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return user, nil
}

// Register validates the draft, builds the identity record, and persists it.
// Nothing is persisted on any validation failure.
func (m *Manager) Register(ctx context.Context, draft *domain.RegistrationDraft) (*domain.User, error) {
	if draft == nil {
		return nil, domain.ErrInvalidPayload
	}
	if draft.Password != draft.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	if len(draft.Password) < minPasswordLen {
		return nil, domain.ErrWeakPassword
	}
	result, err := m.schema.Validate(draft.Role, draft)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &domain.ValidationError{MissingFields: result.MissingFields}
	}

	// Validation is instant; the loading flag covers only the simulated
	// round trip and the persist.
	if !m.loading.CompareAndSwap(false, true) {
		return nil, domain.ErrAuthInProgress
	}
	defer m.loading.Store(false)

	m.simulateLatency()

	user := &domain.User{
		ID:        uuid.NewString(),
		Email:     draft.Email,
		FullName:  draft.FullName,
		Role:      draft.Role,
		Verified:  draft.Role == domain.RoleStudent,
		Profile:   draft.Profile,
		CreatedAt: time.Now().UTC(),
	}

	if err := m.creds.Save(ctx, user); err != nil {
		return nil, err
	}
	m.setCurrent(user)
	m.logger.Info("registration succeeded",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.Bool("verified", user.Verified))
	return user, nil
}

// Logout clears the persisted record and resets in-memory state. Logging
// out while unauthenticated is not an error.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.creds.Clear(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	m.logger.Info("logged out")
	return nil
}

// CurrentUser returns the authenticated user, or nil.
func (m *Manager) CurrentUser() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Manager) IsAuthenticated() bool {
	return m.CurrentUser() != nil
}

// IsLoading reports whether a login or registration is in flight.
func (m *Manager) IsLoading() bool {
	return m.loading.Load()
}

func (m *Manager) setCurrent(user *domain.User) {
	m.mu.Lock()
	m.current = user
	m.mu.Unlock()
}

// simulateLatency stands in for the backend round-trip that does not exist.
// It resolves unconditionally: there is no real request to cancel or retry.
func (m *Manager) simulateLatency() {
	if m.latency > 0 {
		time.Sleep(m.latency)
	}
}

// displayNameFromEmail derives a presentable name from the email local part.
func displayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return email
	}
	return strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
}
