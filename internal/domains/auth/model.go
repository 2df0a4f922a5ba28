package auth

import (
	"hacklog-frontend/internal/backend"
	"hacklog-frontend/internal/shared/coerce"
)

// Role enum - backend chỉ có 2 roles
type Role string

const (
	RoleUser  Role = "user"  // Regular member
	RoleAdmin Role = "admin" // Full access, bypass mọi role check
)

// IsValid kiểm tra role hợp lệ
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// String implements Stringer interface
func (r Role) String() string {
	return string(r)
}

// ParseRole - unknown/absent role coerce về RoleUser (total normalization)
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// SessionUser là projection của User cho "ai đang đăng nhập"
// nil = anonymous
type SessionUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// IsAdmin - nil-safe
func (u *SessionUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// NormalizeSessionUser chuyển raw /login payload thành SessionUser
// Record nil hoặc thiếu id → anonymous (nil)
func NormalizeSessionUser(record backend.Record) *SessionUser {
	if record == nil {
		return nil
	}
	id := coerce.Int64(record["id"])
	if id == 0 {
		return nil
	}
	return &SessionUser{
		ID:       id,
		Username: coerce.String(record["username"]),
		Email:    coerce.String(record["email"]),
		Role:     ParseRole(coerce.String(record["role"])),
	}
}
