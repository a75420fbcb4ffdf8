package domain

import "github.com/google/uuid"

// Session is the authenticated identity plus its token pair. It is the
// JSON shape the login endpoint returns, persisted as-is.
type Session struct {
	UserID       uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	ImageURL     string    `json:"imageUrl"`
	Roles        []string  `json:"roles"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
}

// HasRole reports whether the session's identity holds the given role.
func (s *Session) HasRole(role Role) bool {
	for _, r := range s.Roles {
		if r == string(role) {
			return true
		}
	}
	return false
}

// SessionStore holds the current session in durable local storage. The
// HTTP transport reads it before every request; login, refresh, and
// logout are its only writers.
type SessionStore interface {
	Get() (*Session, bool)
	Set(session *Session) error
	Clear() error

	// UpdateAccessToken rewrites only the access token of the stored
	// session. It is a no-op when no session exists.
	UpdateAccessToken(token string) error
}
