package backend

import (
	"context"
	"encoding/json"
	"net/http"
)

// ========================================
// SESSION ENDPOINTS
// ========================================
// Backend dùng cookie-based session: GET /login trả về identity hiện tại,
// POST tạo session mới, DELETE kết thúc session.

// CurrentUser - GET /login
// Trả về (nil, nil) khi anonymous: backend trả {"error": ...} thay vì
// identity. Chỉ transport/status failure mới là error - và caller
// (SessionStore) cũng coi như anonymous.
func (c *Client) CurrentUser(ctx context.Context, session string) (Record, error) {
	record, err := c.object(ctx, session, "/login")
	if err != nil {
		return nil, err
	}
	if msg, ok := record["error"].(string); ok && msg != "" {
		return nil, nil
	}
	if len(record) == 0 {
		return nil, nil
	}
	return record, nil
}

// Login - POST /login {email, password}
// Response body chứa identity; session cookie nằm trong Set-Cookie header
// nên login đi qua LoginRaw để handler forward cookie về browser.
func (c *Client) Login(ctx context.Context, email, password string) (Record, []*http.Cookie, error) {
	return c.loginRaw(ctx, Record{"email": email, "password": password})
}

func (c *Client) loginRaw(ctx context.Context, credentials Record) (Record, []*http.Cookie, error) {
	data, cookies, err := c.doWithCookies(ctx, http.MethodPost, "/login", credentials)
	if err != nil {
		return nil, nil, err
	}
	record := Record{}
	_ = json.Unmarshal(data, &record)
	if msg, ok := record["error"].(string); ok && msg != "" {
		return nil, nil, &APIError{Status: http.StatusOK, Message: msg}
	}
	return record, cookies, nil
}

// Logout - DELETE /login
func (c *Client) Logout(ctx context.Context, session string) error {
	_, err := c.send(ctx, session, http.MethodDelete, "/login", nil)
	return err
}
