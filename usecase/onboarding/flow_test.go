package onboarding

import (
	"context"
	"testing"

	"github.com/eduverse/backend/domain"
	"github.com/eduverse/backend/internal/infrastructure/kvstore"
	"github.com/eduverse/backend/internal/schema"
	kvRepo "github.com/eduverse/backend/repository/kv"
	sessionUC "github.com/eduverse/backend/usecase/session"
)

func newFlow(t *testing.T) (*Flow, *sessionUC.Manager) {
	t.Helper()
	creds := kvRepo.NewCredentialStore(kvstore.NewMemory(), nil)
	sessions := sessionUC.New(creds, schema.New(), nil, 0)
	return New(sessions, nil), sessions
}

func fillStudentDraft(t *testing.T, f *Flow) {
	t.Helper()
	err := f.UpdateDraft(domain.RegistrationDraft{
		FullName:        "Sam Student",
		Email:           "sam@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Profile: &domain.StudentProfile{
			NationalID:       "123456789012",
			InstitutionName:  "Central University",
			CourseName:       "Physics",
			EnrollmentReason: "degree",
		},
	})
	if err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}
}

func TestHappyPathThroughRegistration(t *testing.T) {
	f, sessions := newFlow(t)

	if got := f.State().Step; got != StepLogin {
		t.Fatalf("initial step = %s, want login", got)
	}
	if err := f.SwitchToRegister(); err != nil {
		t.Fatalf("SwitchToRegister: %v", err)
	}
	if err := f.SelectRole(domain.RoleStudent); err != nil {
		t.Fatalf("SelectRole: %v", err)
	}
	state := f.State()
	if state.Step != StepRegistration || state.Role != domain.RoleStudent {
		t.Fatalf("state = %+v, want registration(student)", state)
	}
	if state.Draft == nil || state.Draft.Profile == nil {
		t.Fatal("expected initialized draft")
	}

	fillStudentDraft(t, f)

	user, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if user.Role != domain.RoleStudent || !user.Verified {
		t.Errorf("user = %+v, want verified student", user)
	}
	// Registration success ends the flow and authenticates the session; it
	// does not pass through skill selection.
	if got := f.State().Step; got != StepDone {
		t.Errorf("step = %s, want done", got)
	}
	if f.State().Draft != nil {
		t.Error("draft must be discarded on commit")
	}
	if !sessions.IsAuthenticated() {
		t.Error("expected authenticated session")
	}
}

func TestBackDiscardsDraft(t *testing.T) {
	tests := []struct {
		name   string
		back   func(*Flow) error
		target Step
	}{
		{"to role selection", (*Flow).Back, StepRoleSelection},
		{"to login", (*Flow).BackToLogin, StepLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newFlow(t)
			if err := f.SwitchToRegister(); err != nil {
				t.Fatalf("SwitchToRegister: %v", err)
			}
			if err := f.SelectRole(domain.RoleStudent); err != nil {
				t.Fatalf("SelectRole: %v", err)
			}
			fillStudentDraft(t, f)

			if err := tt.back(f); err != nil {
				t.Fatalf("back: %v", err)
			}
			state := f.State()
			if state.Step != tt.target {
				t.Errorf("step = %s, want %s", state.Step, tt.target)
			}
			if state.Draft != nil {
				t.Error("draft must be discarded in full")
			}
			if state.Role != "" {
				t.Errorf("role = %s, want cleared", state.Role)
			}
		})
	}
}

func TestInvalidTransitions(t *testing.T) {
	f, _ := newFlow(t)

	// Everything except switch-to-register is invalid from login.
	invalid := []struct {
		name string
		call func() error
	}{
		{"select-role", func() error { return f.SelectRole(domain.RoleStudent) }},
		{"back", f.Back},
		{"back-to-login", f.BackToLogin},
		{"update-draft", func() error { return f.UpdateDraft(domain.RegistrationDraft{}) }},
		{"submit", func() error { _, err := f.Submit(context.Background()); return err }},
		{"skill-selection", f.EnterSkillSelection},
	}
	for _, tt := range invalid {
		if err := tt.call(); !domain.IsDomainError(err, domain.ErrCodeConflict) {
			t.Errorf("%s from login: error = %v, want conflict", tt.name, err)
		}
		if got := f.State().Step; got != StepLogin {
			t.Fatalf("%s mutated step to %s", tt.name, got)
		}
	}

	if err := f.SwitchToRegister(); err != nil {
		t.Fatalf("SwitchToRegister: %v", err)
	}
	if err := f.SwitchToRegister(); !domain.IsDomainError(err, domain.ErrCodeConflict) {
		t.Errorf("second switch-to-register: error = %v, want conflict", err)
	}
}

func TestSelectRoleRejectsUnknownRole(t *testing.T) {
	f, _ := newFlow(t)
	if err := f.SwitchToRegister(); err != nil {
		t.Fatalf("SwitchToRegister: %v", err)
	}
	if err := f.SelectRole(domain.Role("educator")); err != domain.ErrUnknownRole {
		t.Fatalf("SelectRole error = %v, want ErrUnknownRole", err)
	}
}

func TestUpdateDraftPinsRoleAndProfile(t *testing.T) {
	f, _ := newFlow(t)
	if err := f.SwitchToRegister(); err != nil {
		t.Fatalf("SwitchToRegister: %v", err)
	}
	if err := f.SelectRole(domain.RoleCertifier); err != nil {
		t.Fatalf("SelectRole: %v", err)
	}

	// A profile for a different role is rejected.
	err := f.UpdateDraft(domain.RegistrationDraft{
		Profile: &domain.StudentProfile{NationalID: "123456789012"},
	})
	if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("UpdateDraft error = %v, want invalid", err)
	}

	// Omitting the profile keeps the variant opened by SelectRole.
	if err := f.UpdateDraft(domain.RegistrationDraft{FullName: "Carol Lang"}); err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}
	state := f.State()
	if state.Draft.Role != domain.RoleCertifier {
		t.Errorf("draft role = %s, want certifier", state.Draft.Role)
	}
	if _, ok := state.Draft.Profile.(*domain.CertifierProfile); !ok {
		t.Errorf("draft profile = %T, want *CertifierProfile", state.Draft.Profile)
	}
}

func TestSubmitFailureKeepsFlowInRegistration(t *testing.T) {
	f, sessions := newFlow(t)
	if err := f.SwitchToRegister(); err != nil {
		t.Fatalf("SwitchToRegister: %v", err)
	}
	if err := f.SelectRole(domain.RoleStudent); err != nil {
		t.Fatalf("SelectRole: %v", err)
	}
	if err := f.UpdateDraft(domain.RegistrationDraft{
		FullName: "Sam Student",
		Email:    "sam@example.com",
		Password: "secret1", ConfirmPassword: "other",
	}); err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}

	if _, err := f.Submit(context.Background()); err != domain.ErrPasswordMismatch {
		t.Fatalf("Submit error = %v, want ErrPasswordMismatch", err)
	}
	if got := f.State().Step; got != StepRegistration {
		t.Errorf("step = %s, want registration after failed submit", got)
	}
	if sessions.IsAuthenticated() {
		t.Error("failed submit must not authenticate")
	}
}

func TestSkillSelectionIsOffThePath(t *testing.T) {
	f, _ := newFlow(t)
	if err := f.SwitchToRegister(); err != nil {
		t.Fatalf("SwitchToRegister: %v", err)
	}
	if err := f.SelectRole(domain.RoleStudent); err != nil {
		t.Fatalf("SelectRole: %v", err)
	}
	fillStudentDraft(t, f)
	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// The trigger exists, but nothing in the flow or routes calls it.
	if err := f.EnterSkillSelection(); err != nil {
		t.Fatalf("EnterSkillSelection: %v", err)
	}
	if got := f.State().Step; got != StepSkillSelection {
		t.Errorf("step = %s, want skill-selection", got)
	}
}

func TestResetReturnsToLogin(t *testing.T) {
	f, _ := newFlow(t)
	if err := f.SwitchToRegister(); err != nil {
		t.Fatalf("SwitchToRegister: %v", err)
	}
	if err := f.SelectRole(domain.RoleStudent); err != nil {
		t.Fatalf("SelectRole: %v", err)
	}

	f.Reset()
	state := f.State()
	if state.Step != StepLogin || state.Draft != nil || state.Role != "" {
		t.Errorf("state after reset = %+v, want clean login", state)
	}
}
