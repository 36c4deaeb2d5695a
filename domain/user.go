package domain

import (
	"encoding/json"
	"time"
)

// User represents an authenticated identity in the platform. At most one
// user is current at a time; the persisted record doubles as the session.
type User struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	FullName  string      `json:"fullName"`
	Role      Role        `json:"role"`
	Verified  bool        `json:"verified"`
	Profile   RoleProfile `json:"profile,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// ProfileMatchesRole reports whether the attached profile variant carries
// the same tag as the user's role. A nil profile is consistent with any role.
func (u *User) ProfileMatchesRole() bool {
	if u == nil {
		return false
	}
	return u.Profile == nil || u.Profile.ProfileRole() == u.Role
}

// UnmarshalJSON dispatches the profile payload to the variant named by the
// role tag before decoding it.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := struct {
		*alias
		Profile json.RawMessage `json:"profile"`
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Profile) == 0 || string(aux.Profile) == "null" {
		u.Profile = nil
		return nil
	}
	profile, err := UnmarshalProfile(u.Role, aux.Profile)
	if err != nil {
		return err
	}
	u.Profile = profile
	return nil
}

// Credentials is the login input. It is consumed by the call that receives
// it and never stored.
type Credentials struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       Role   `json:"role"`
	RememberMe bool   `json:"rememberMe"`
}

// RegistrationDraft holds the partially filled registration form. It lives
// in memory only and is discarded on cancel or on successful commit.
type RegistrationDraft struct {
	FullName        string      `json:"fullName" validate:"required"`
	Email           string      `json:"email" validate:"required,email"`
	Password        string      `json:"password" validate:"required"`
	ConfirmPassword string      `json:"confirmPassword" validate:"required"`
	Role            Role        `json:"role"`
	Profile         RoleProfile `json:"-" validate:"-"`
}
