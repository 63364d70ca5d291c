package api

import (
	"context"

	"github.com/shopforge/shopctl/internal/domain/session"
)

// loginRequest is the credentials payload for the login endpoint.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session. The password goes to the server
// as-is; it is never stored or hashed client-side.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Session, error) {
	var sess session.Session
	err := c.post(ctx, "/api/auth/login", loginRequest{Email: email, Password: password}, &sess)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}
