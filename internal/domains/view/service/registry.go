package service

import (
	"sync"
	"time"

	"hacklog-frontend/internal/domains/auth"
	"hacklog-frontend/internal/domains/mutate"
	"hacklog-frontend/internal/domains/view"
	"hacklog-frontend/internal/shared/notify"
)

// PageSet là toàn bộ per-session view state: session store, article page,
// user page, mutator và notification center. Owned bởi đúng một browser
// session - không share, không cần cross-session locking.
type PageSet struct {
	Token    string // backend session cookie value ("" = anonymous)
	Store    *auth.Store
	Articles *view.Page
	Users    *view.UserPage
	Mutator  *mutate.Mutator
	Notices  *notify.Center
}

// Registry map session token → PageSet, idle entries bị evict theo TTL
// "Navigation away" của SPA tương ứng với session expire ở đây.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
	ttl     time.Duration
	now     func() time.Time
}

type registryEntry struct {
	pageSet  *PageSet
	lastSeen time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get trả về PageSet của token, tạo mới qua build nếu chưa có
// Mỗi lần access là một lần sweep expired entries (pages của entry bị
// evict được Close để in-flight refreshes discard kết quả).
func (r *Registry) Get(token string, build func() *PageSet) *PageSet {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for key, entry := range r.entries {
		if now.Sub(entry.lastSeen) > r.ttl {
			entry.pageSet.Articles.Close()
			entry.pageSet.Users.Close()
			delete(r.entries, key)
		}
	}

	entry, ok := r.entries[token]
	if !ok {
		entry = &registryEntry{pageSet: build()}
		r.entries[token] = entry
	}
	entry.lastSeen = now
	return entry.pageSet
}

// Drop evict một session ngay lập tức (logout)
func (r *Registry) Drop(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[token]; ok {
		entry.pageSet.Articles.Close()
		entry.pageSet.Users.Close()
		delete(r.entries, token)
	}
}
