package auth

import (
	"context"
	"sync"
)

// Resolver lookup identity hiện tại (backend GET /login)
// Trả về (nil, nil) khi anonymous
type Resolver func(ctx context.Context) (*SessionUser, error)

// Store giữ session state cho một browser session
// Refresh idempotent, gọi lại thoải mái (mỗi navigation) - chỉ giữ
// kết quả của lần gọi mới nhất.
type Store struct {
	resolver Resolver

	mu      sync.Mutex
	user    *SessionUser
	settled bool   // false cho tới khi refresh đầu tiên xong
	issued  uint64 // generation của refresh mới nhất đã phát
	applied uint64 // generation của kết quả đang giữ
}

func NewStore(resolver Resolver) *Store {
	return &Store{resolver: resolver}
}

// Refresh resolve identity và cập nhật store
// Mọi failure (network, "no session" response) → anonymous, không error.
// Guard: nếu một refresh phát sau đã hoàn thành trong lúc refresh này
// đang bay, kết quả cũ bị bỏ - không được ghi đè kết quả mới hơn.
func (s *Store) Refresh(ctx context.Context) *SessionUser {
	s.mu.Lock()
	s.issued++
	gen := s.issued
	s.mu.Unlock()

	user, err := s.resolver(ctx)
	if err != nil {
		user = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settled = true
	if gen <= s.applied {
		// Stale completion - một refresh mới hơn đã settle trước
		return s.user
	}
	s.applied = gen
	s.user = user
	return s.user
}

// User trả về session user hiện tại (nil = anonymous)
func (s *Store) User() *SessionUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Loading true cho tới khi refresh đầu tiên settle
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.settled
}

// Clear đưa store về anonymous ngay lập tức (sau logout)
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.settled = true
	s.applied = s.issued
}
