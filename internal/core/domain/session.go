package domain

import "time"

// Session is the decoded identity carried by a live bearer token. A token is
// honoured only while both its signature verifies and the token is registered
// in the session store; either alone is not enough.
type Session struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin reports whether the session belongs to an admin.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
