package view

import (
	"context"
	"sync"

	"hacklog-frontend/internal/domains/auth"
)

// UserPage own user rows cho admin users view
// Cùng lifecycle model với Page: per-session, liveness, snapshot/restore.
type UserPage struct {
	mu      sync.Mutex
	users   []User
	loaded  bool
	closed  bool
	issued  uint64
	applied uint64
}

func NewUserPage() *UserPage {
	return &UserPage{}
}

func (p *UserPage) Refresh(ctx context.Context, loader *Loader, session string) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPageClosed
	}
	p.issued++
	gen := p.issued
	p.mu.Unlock()

	users, err := loader.LoadUsers(ctx, session)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || gen <= p.applied {
		return nil
	}
	p.applied = gen
	p.users = users
	p.loaded = true
	return nil
}

func (p *UserPage) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

func (p *UserPage) Rows() []User {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]User, len(p.users))
	copy(out, p.users)
	return out
}

func (p *UserPage) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// SetRole flip role của một user row (optimistic role change)
func (p *UserPage) SetRole(id int64, role auth.Role) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.users {
		if p.users[i].ID == id {
			p.users[i].Role = role
			return
		}
	}
}

// Role đọc role hiện tại của một user row
func (p *UserPage) Role(id int64) (auth.Role, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.users {
		if p.users[i].ID == id {
			return p.users[i].Role, true
		}
	}
	return "", false
}

// TakeUser gỡ user row (optimistic user delete), trả về row + vị trí cũ
func (p *UserPage) TakeUser(id int64) (User, int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.users {
		if p.users[i].ID == id {
			user := p.users[i]
			p.users = append(p.users[:i], p.users[i+1:]...)
			return user, i, true
		}
	}
	return User{}, 0, false
}

// PutUser trả user đã gỡ về vị trí cũ (rollback của TakeUser)
func (p *UserPage) PutUser(user User, index int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index > len(p.users) {
		index = len(p.users)
	}
	p.users = append(p.users, User{})
	copy(p.users[index+1:], p.users[index:])
	p.users[index] = user
}
