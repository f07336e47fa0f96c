package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/me/invdash/pkg/model"
)

// ListUsers returns all user accounts. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.Do(ctx, http.MethodGet, "/auth/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AddUser creates an account with the given role. Admin only.
func (c *Client) AddUser(ctx context.Context, username, email, password, role string) error {
	payload := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
		"role":     role,
	}
	return c.Do(ctx, http.MethodPost, "/auth/add-user", payload, nil)
}

// UpdateUserRole changes the role of the user with the given id.
// Admin only.
func (c *Client) UpdateUserRole(ctx context.Context, userID int, role string) error {
	payload := map[string]string{"role": role}
	return c.Do(ctx, http.MethodPut, fmt.Sprintf("/update_role/%d", userID), payload, nil)
}
