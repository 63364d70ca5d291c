// Package session holds the client-side authenticated identity and the
// navigation guard rules evaluated against it.
package session

import "strings"

// Role is the role tag the server assigns to an account.
type Role string

// Known roles.
const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// User is the subset of the account record the client interprets.
// Additional server fields are not modeled; the server owns the schema.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
	Status   string `json:"status"`
}

// Session is the credential and identity held for the current login.
// It is created from the login response, persisted under a single record,
// and destroyed on logout or when the server rejects the credential.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// IsAuthenticated reports whether the session carries a usable credential.
// A cached user object without a token does not count: no token means
// unauthenticated, full stop.
func (s *Session) IsAuthenticated() bool {
	return s != nil && strings.TrimSpace(s.Token) != ""
}

// HasRole reports whether the session is authenticated as the given role.
func (s *Session) HasRole(role Role) bool {
	return s.IsAuthenticated() && s.User.Role == role
}
