package notify

import (
	"sync"
	"time"
)

// Transient user-facing notifications (toasts). Mutation outcomes và
// secondary failures đi qua đây; primary read failures là blocking
// page error, không phải notice.

type Level string

const (
	LevelSuccess Level = "success"
	LevelDanger  Level = "danger"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

type Notice struct {
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultDismissAfter: auto-dismiss delay, match SPA toast (3s)
const DefaultDismissAfter = 3 * time.Second

// Center giữ active notices cho một page set
// Notices tự expire sau dismissAfter; clock inject được cho tests.
type Center struct {
	mu           sync.Mutex
	notices      []Notice
	dismissAfter time.Duration
	now          func() time.Time
}

func NewCenter(dismissAfter time.Duration) *Center {
	if dismissAfter <= 0 {
		dismissAfter = DefaultDismissAfter
	}
	return &Center{dismissAfter: dismissAfter, now: time.Now}
}

// WithClock override time source (tests)
func (c *Center) WithClock(now func() time.Time) *Center {
	c.now = now
	return c
}

func (c *Center) Add(level Level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, Notice{
		Level:     level,
		Message:   message,
		CreatedAt: c.now(),
	})
}

// Active trả về notices chưa expire, đồng thời purge notices cũ
func (c *Center) Active() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-c.dismissAfter)
	kept := c.notices[:0]
	for _, n := range c.notices {
		if n.CreatedAt.After(cutoff) {
			kept = append(kept, n)
		}
	}
	c.notices = kept

	out := make([]Notice, len(kept))
	copy(out, kept)
	return out
}
