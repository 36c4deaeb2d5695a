// Package onboarding sequences the pre-authentication screens: login,
// role selection, registration, and the final commit into a session.
package onboarding

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/eduverse/backend/domain"
	"github.com/eduverse/backend/usecase/session"
)

// Step names one screen of the onboarding flow.
type Step string

const (
	StepLogin         Step = "login"
	StepRoleSelection Step = "role-selection"
	StepRegistration  Step = "registration"
	// StepSkillSelection exists in the step set but no transition targets
	// it; EnterSkillSelection is the unwired trigger.
	StepSkillSelection Step = "skill-selection"
	StepDone           Step = "done"
)

// State is a read-only snapshot of the flow.
type State struct {
	Step  Step                      `json:"step"`
	Role  domain.Role               `json:"role,omitempty"`
	Draft *domain.RegistrationDraft `json:"draft,omitempty"`
}

// Flow walks a single unauthenticated visitor through the onboarding
// screens and commits the result via the session manager.
type Flow struct {
	sessions *session.Manager
	logger   *zap.Logger

	mu    sync.Mutex
	step  Step
	role  domain.Role
	draft *domain.RegistrationDraft
}

func New(sessions *session.Manager, logger *zap.Logger) *Flow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{
		sessions: sessions,
		logger:   logger,
		step:     StepLogin,
	}
}

// State returns the current snapshot.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{Step: f.step, Role: f.role, Draft: f.draft}
}

// SwitchToRegister moves from the login screen to role selection.
func (f *Flow) SwitchToRegister() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepLogin {
		return f.invalidTransition("switch-to-register")
	}
	f.step = StepRoleSelection
	return nil
}

// SelectRole opens the registration screen for the chosen role with a
// fresh draft.
func (f *Flow) SelectRole(role domain.Role) error {
	if !role.Valid() {
		return domain.ErrUnknownRole
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepRoleSelection {
		return f.invalidTransition("select-role")
	}
	profile, err := domain.NewProfile(role)
	if err != nil {
		return err
	}
	f.step = StepRegistration
	f.role = role
	f.draft = &domain.RegistrationDraft{Role: role, Profile: profile}
	return nil
}

// UpdateDraft replaces the draft contents with the submitted form fields.
// The role and profile variant stay pinned to the selected role.
func (f *Flow) UpdateDraft(draft domain.RegistrationDraft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepRegistration {
		return f.invalidTransition("update-draft")
	}
	if draft.Profile != nil && draft.Profile.ProfileRole() != f.role {
		return domain.NewError(domain.ErrCodeInvalid, "profile does not match selected role")
	}
	draft.Role = f.role
	if draft.Profile == nil {
		draft.Profile = f.draft.Profile
	}
	f.draft = &draft
	return nil
}

// Back returns from registration to role selection, discarding the draft
// in full.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepRegistration {
		return f.invalidTransition("back")
	}
	f.step = StepRoleSelection
	f.role = ""
	f.draft = nil
	return nil
}

// BackToLogin abandons registration entirely, discarding the draft.
func (f *Flow) BackToLogin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepRegistration {
		return f.invalidTransition("back-to-login")
	}
	f.step = StepLogin
	f.role = ""
	f.draft = nil
	return nil
}

// Submit commits the draft through the session manager. On success the
// visitor is authenticated and the flow is finished.
func (f *Flow) Submit(ctx context.Context) (*domain.User, error) {
	f.mu.Lock()
	if f.step != StepRegistration {
		defer f.mu.Unlock()
		return nil, f.invalidTransition("submit")
	}
	draft := f.draft
	f.mu.Unlock()

	user, err := f.sessions.Register(ctx, draft)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.step = StepDone
	f.draft = nil
	f.mu.Unlock()
	return user, nil
}

// EnterSkillSelection moves to the learning-path skill selection screen.
// Nothing routes here: the screen ships with the flow but no transition or
// endpoint invokes it.
func (f *Flow) EnterSkillSelection() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepRegistration && f.step != StepDone {
		return f.invalidTransition("skill-selection")
	}
	f.step = StepSkillSelection
	return nil
}

// Reset returns the flow to the login screen, discarding any draft. Called
// after logout so the next visitor starts clean.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.step = StepLogin
	f.role = ""
	f.draft = nil
}

func (f *Flow) invalidTransition(event string) error {
	return domain.WrapError(domain.ErrCodeConflict, "invalid onboarding transition",
		fmt.Errorf("%s from %s", event, f.step))
}
