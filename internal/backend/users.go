package backend

import (
	"context"
	"fmt"
	"net/http"
)

// ListUsers - GET /users
func (c *Client) ListUsers(ctx context.Context, session string) ([]Record, error) {
	return c.list(ctx, session, "/users")
}

// RegisterUser - POST /users {email, username, password}
func (c *Client) RegisterUser(ctx context.Context, email, username, password string) error {
	_, err := c.send(ctx, "", http.MethodPost, "/users", Record{
		"email":    email,
		"username": username,
		"password": password,
	})
	return err
}

// UpdateUserRole - PUT /users/:id {role}
// Chỉ admin được gọi - backend enforce, front end gate trước
func (c *Client) UpdateUserRole(ctx context.Context, session string, id int64, role string) error {
	_, err := c.send(ctx, session, http.MethodPut, fmt.Sprintf("/users/%d", id), Record{"role": role})
	return err
}

// DeleteUser - DELETE /users/:id
func (c *Client) DeleteUser(ctx context.Context, session string, id int64) error {
	_, err := c.send(ctx, session, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil)
	return err
}
