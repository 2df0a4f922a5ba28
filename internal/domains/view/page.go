package view

import (
	"context"
	"sync"
)

// Page own joined row set cho một article view instance
// Không share cross-session; bỏ đi khi session expire (Registry TTL).
// Liveness: sau Close(), response đến muộn bị discard thay vì apply.
type Page struct {
	mu      sync.Mutex
	rows    []Row
	likes   map[int64]int
	loaded  bool
	closed  bool
	issued  uint64
	applied uint64
}

func NewPage() *Page {
	return &Page{likes: map[int64]int{}}
}

// Refresh load lại rows qua loader
// Overlapping refreshes: last-issued wins; kết quả stale bị bỏ.
func (p *Page) Refresh(ctx context.Context, loader *Loader, session string) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPageClosed
	}
	p.issued++
	gen := p.issued
	p.mu.Unlock()

	rows, likes, err := loader.LoadArticles(ctx, session)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || gen <= p.applied {
		// View đã teardown hoặc một refresh mới hơn đã settle - discard
		return nil
	}
	p.applied = gen
	p.rows = rows
	p.likes = likes
	p.loaded = true
	return nil
}

// Loaded true sau lần refresh thành công đầu tiên
func (p *Page) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Rows trả về copy của row set hiện tại
func (p *Page) Rows() []Row {
	p.mu.Lock()
	defer p.mu.Unlock()
	return copyRows(p.rows)
}

// Close đánh dấu view teardown
func (p *Page) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// ========================================
// MUTATION HELPERS
// ========================================
// Được OptimisticMutator gọi qua closures: apply trước remote call,
// revert khi call fail. Revert chỉ đụng đúng entity bị mutate -
// mutations trên ids khác được phép overlap và không bị wipe.

// TakeRow gỡ row theo article id (optimistic delete)
// Trả về row và vị trí cũ để revert re-insert đúng chỗ.
func (p *Page) TakeRow(id int64) (Row, int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.rows {
		if p.rows[i].ID == id {
			row := p.rows[i]
			p.rows = append(p.rows[:i], p.rows[i+1:]...)
			return row, i, true
		}
	}
	return Row{}, 0, false
}

// PutRow trả row đã gỡ về vị trí cũ (rollback của TakeRow)
// Index ngoài range (rows đã shrink trong lúc mutation bay) → append cuối
func (p *Page) PutRow(row Row, index int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index > len(p.rows) {
		index = len(p.rows)
	}
	p.rows = append(p.rows, Row{})
	copy(p.rows[index+1:], p.rows[index:])
	p.rows[index] = row
}

// DropLikes xóa derived like entry của một article
// Chỉ gọi khi delete commit - không bao giờ trên rollback
func (p *Page) DropLikes(id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.likes, id)
}

// SetFeatured flip featured flag của một row
func (p *Page) SetFeatured(id int64, featured bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.rows {
		if p.rows[i].ID == id {
			p.rows[i].Featured = featured
			return
		}
	}
}

// Featured đọc featured flag hiện tại của một row
func (p *Page) Featured(id int64) (bool, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.rows {
		if p.rows[i].ID == id {
			return p.rows[i].Featured, true
		}
	}
	return false, false
}

// IncrementLikes tăng like count (optimistic like)
// Monotone non-decreasing trừ khi fresh fetch correct lại
func (p *Page) IncrementLikes(id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.likes[id]++
	for i := range p.rows {
		if p.rows[i].ID == id {
			p.rows[i].Likes++
			return
		}
	}
}

// DecrementLikes undo một optimistic increment (rollback của like)
// Clamp tại 0 - count không bao giờ âm
func (p *Page) DecrementLikes(id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.likes[id] > 0 {
		p.likes[id]--
	}
	for i := range p.rows {
		if p.rows[i].ID == id {
			if p.rows[i].Likes > 0 {
				p.rows[i].Likes--
			}
			return
		}
	}
}

func copyRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	for i := range out {
		if len(rows[i].Tags) > 0 {
			out[i].Tags = append([]string(nil), rows[i].Tags...)
		}
	}
	return out
}
