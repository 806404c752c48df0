package models

import "encoding/json"

// State is the authentication state of a client session.
type State int

const (
	// StateUnknown holds only while a stored credential is being verified.
	StateUnknown State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "invalid"
	}
}

// UserProfile is the account the credential belongs to.
type UserProfile struct {
	ID       ID     `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

func (p *UserProfile) UnmarshalJSON(b []byte) error {
	var w struct {
		UserID   ID      `json:"user_id"`
		ID       ID      `json:"id"`
		Username string  `json:"username"`
		Email    *string `json:"email"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*p = UserProfile{ID: w.UserID, Username: w.Username, Email: deref(w.Email)}
	if p.ID == "" {
		p.ID = w.ID
	}
	return nil
}

// Session is a snapshot of the controller state. Profile is non-nil exactly
// when State is StateAuthenticated.
type Session struct {
	State   State
	Profile *UserProfile
}

func (s Session) IsAuthenticated() bool {
	return s.State == StateAuthenticated && s.Profile != nil
}

// LoginResult is what a successful login returns.
type LoginResult struct {
	AccessToken string      `json:"access_token"`
	User        UserProfile `json:"user"`
}

// RegisterForm is the registration input as typed by the user.
type RegisterForm struct {
	Username        string `validate:"required,alphanumunicode,min=3,max=20"`
	Email           string `validate:"required,contains=@"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"eqfield=Password"`
}
