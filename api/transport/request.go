package transport

import "encoding/json"

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	RememberMe bool   `json:"rememberMe"`
}

// RegisterRequest carries the full registration form. Profile is decoded
// against the variant selected by Role.
type RegisterRequest struct {
	FullName        string          `json:"fullName"`
	Email           string          `json:"email"`
	Password        string          `json:"password"`
	ConfirmPassword string          `json:"confirmPassword"`
	Role            string          `json:"role"`
	Profile         json.RawMessage `json:"profile"`
}

type SelectRoleRequest struct {
	Role string `json:"role"`
}

// DraftRequest patches the onboarding draft. The role is pinned by the
// flow, so it is absent here.
type DraftRequest struct {
	FullName        string          `json:"fullName"`
	Email           string          `json:"email"`
	Password        string          `json:"password"`
	ConfirmPassword string          `json:"confirmPassword"`
	Profile         json.RawMessage `json:"profile"`
}

// BackRequest selects which of the two back targets to take from the
// registration screen.
type BackRequest struct {
	Target string `json:"target"` // "role-selection" (default) or "login"
}

type SendNotificationRequest struct {
	ToName  string `json:"toName"`
	ToRole  string `json:"toRole"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Channel string `json:"channel"`
}
