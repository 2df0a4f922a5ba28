package mutate

import (
	"context"
	"sync"

	"hacklog-frontend/internal/shared/notify"
)

// Optimistic mutation state machine. Local change apply ngay lập tức,
// remote call chạy sau; thành công thì giữ, thất bại thì restore đúng
// pre-mutation snapshot. Rollback guarantee nằm trong structure của
// machine, không phải trong từng call site.

type State int

const (
	StateIdle State = iota
	StateApplying
	StateCommitted
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StateApplying:
		return "applying"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled_back"
	}
	return "idle"
}

// Mutation parameterize một optimistic mutation:
// {local-apply, remote-call, local-revert} + notices.
type Mutation struct {
	// Key identify entity bị mutate (vd "article:3", "user:2")
	// Guard chống re-entry trên cùng entity khi đang Applying.
	Key string

	Apply  func()                          // local change, chạy trước remote call
	Call   func(ctx context.Context) error // remote request
	Revert func()                          // restore pre-mutation snapshot

	// OnCommit dọn dependent derived data sau khi commit
	// (vd xóa like entry của article vừa delete) - không chạy khi rollback
	OnCommit func()

	// SuccessMessage emit khi commit; rỗng = không notice (low-friction
	// actions như like). FailureMessage emit khi rollback.
	SuccessMessage string
	FailureMessage string
}

// Outcome báo kết quả mutation cho caller
// Err chỉ set khi RolledBack (remote failure) - không propagate exception.
type Outcome struct {
	State State
	Err   error
}

// Mutator chạy mutations với per-key in-flight guard
// Scope: một page set (một browser session) - không phải global lock.
type Mutator struct {
	mu       sync.Mutex
	inflight map[string]bool
	notices  *notify.Center
}

func NewMutator(notices *notify.Center) *Mutator {
	return &Mutator{
		inflight: make(map[string]bool),
		notices:  notices,
	}
}

// Do chạy một mutation qua state machine
//   - Idle → Applying: Apply chạy ngay, UI thấy state mới không cần đợi
//   - Applying → Committed: Call OK → giữ state, chạy OnCommit, emit success
//   - Applying → RolledBack: Call fail → Revert, emit failure
//
// Cùng Key đang Applying → ErrMutationInFlight, mutation không chạy.
// Keys khác nhau overlap tự do.
func (m *Mutator) Do(ctx context.Context, mut Mutation) (Outcome, error) {
	m.mu.Lock()
	if m.inflight[mut.Key] {
		m.mu.Unlock()
		return Outcome{State: StateIdle}, ErrMutationInFlight
	}
	m.inflight[mut.Key] = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.inflight, mut.Key)
		m.mu.Unlock()
	}()

	// Idle → Applying
	mut.Apply()

	if err := mut.Call(ctx); err != nil {
		// Applying → RolledBack
		mut.Revert()
		if mut.FailureMessage != "" && m.notices != nil {
			m.notices.Add(notify.LevelDanger, mut.FailureMessage)
		}
		return Outcome{State: StateRolledBack, Err: err}, nil
	}

	// Applying → Committed
	if mut.OnCommit != nil {
		mut.OnCommit()
	}
	if mut.SuccessMessage != "" && m.notices != nil {
		m.notices.Add(notify.LevelSuccess, mut.SuccessMessage)
	}
	return Outcome{State: StateCommitted}, nil
}
