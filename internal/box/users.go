package box

import (
	"context"
	"net/http"
)

// Me retrieves the user the connection's tokens belong to. Useful for
// verifying that a stored token still matches the expected account.
func (conn *Connection) Me(ctx context.Context, opts ...RequestOption) (*User, error) {
	var user User
	if err := conn.request(ctx, http.MethodGet, []string{"users", "me"}, nil, nil, &user, opts...); err != nil {
		return nil, err
	}
	return &user, nil
}
