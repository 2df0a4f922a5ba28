package auth

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("forbidden: insufficient permissions")
	ErrLoginFailed      = errors.New("invalid email or password")
	ErrInvalidRole      = errors.New("invalid user role")
)
