package service

import (
	"context"
	"fmt"

	"hacklog-frontend/internal/backend"
	"hacklog-frontend/internal/domains/auth"
	"hacklog-frontend/internal/domains/mutate"
	"hacklog-frontend/internal/domains/view"
	viewService "hacklog-frontend/internal/domains/view/service"
)

// MutationService build các concrete optimistic mutations trên page state
// Mọi mutation theo cùng một shape: apply local trên đúng entity → remote
// call → commit hoặc revert đúng entity đó. Revert không đụng rows khác -
// mutations trên ids khác nhau overlap tự do, commit của nhau không bị wipe.
// Remote failure không bao giờ propagate ra ngoài outcome - page sống tiếp
// với state đã rollback.
//
// Caller resolve PageSet một lần rồi truyền vào: mutation chạy trên set
// nào thì rows/notices đọc ra từ đúng set đó (quan trọng cho anonymous -
// PageSet ephemeral, resolve lại theo token là một set khác).
type MutationService struct {
	api   *backend.Client
	pages *viewService.PageService
}

func NewMutationService(api *backend.Client, pages *viewService.PageService) *MutationService {
	return &MutationService{api: api, pages: pages}
}

// ensureArticles load page nếu chưa mount (mutation cần current state)
func (s *MutationService) ensureArticles(ctx context.Context, ps *viewService.PageSet) error {
	if ps.Articles.Loaded() {
		return nil
	}
	return ps.Articles.Refresh(ctx, s.pages.Loader(), ps.Token)
}

func (s *MutationService) ensureUsers(ctx context.Context, ps *viewService.PageSet) error {
	if ps.Users.Loaded() {
		return nil
	}
	return ps.Users.Refresh(ctx, s.pages.Loader(), ps.Token)
}

// ========================================
// ARTICLE MUTATIONS
// ========================================

// DeleteArticle xóa bài optimistically
// Commit dọn luôn derived like entry; rollback re-insert đúng row cũ
// về đúng vị trí cũ.
func (s *MutationService) DeleteArticle(ctx context.Context, ps *viewService.PageSet, id int64) (mutate.Outcome, error) {
	if err := s.ensureArticles(ctx, ps); err != nil {
		return mutate.Outcome{}, err
	}

	var removed view.Row
	var index int
	var taken bool
	return ps.Mutator.Do(ctx, mutate.Mutation{
		Key:   fmt.Sprintf("article:%d", id),
		Apply: func() { removed, index, taken = ps.Articles.TakeRow(id) },
		Call: func(ctx context.Context) error {
			return s.api.DeleteArticle(ctx, ps.Token, id)
		},
		Revert: func() {
			if taken {
				ps.Articles.PutRow(removed, index)
			}
		},
		OnCommit: func() {
			ps.Articles.DropLikes(id)
			s.pages.Loader().InvalidateAll(ctx)
		},
		SuccessMessage: "Article deleted",
		FailureMessage: "Failed to delete article",
	})
}

// ToggleFeatured flip featured flag
// Backend lưu 0/1 nên gửi int, không phải bool.
func (s *MutationService) ToggleFeatured(ctx context.Context, ps *viewService.PageSet, id int64) (mutate.Outcome, error) {
	if err := s.ensureArticles(ctx, ps); err != nil {
		return mutate.Outcome{}, err
	}

	current, ok := ps.Articles.Featured(id)
	if !ok {
		return mutate.Outcome{}, view.ErrArticleNotFound
	}
	target := !current

	return ps.Mutator.Do(ctx, mutate.Mutation{
		Key:   fmt.Sprintf("article:%d", id),
		Apply: func() { ps.Articles.SetFeatured(id, target) },
		Call: func(ctx context.Context) error {
			featured := 0
			if target {
				featured = 1
			}
			return s.api.UpdateArticle(ctx, ps.Token, id, backend.Record{"featured": featured})
		},
		Revert: func() { ps.Articles.SetFeatured(id, current) },
		OnCommit: func() {
			s.pages.Loader().Invalidate(ctx, view.CacheKeyArticles)
		},
		SuccessMessage: "Article updated",
		FailureMessage: "Failed to update article",
	})
}

// Like tăng like count optimistically
// Low-friction action: không success notice, chỉ báo khi fail.
func (s *MutationService) Like(ctx context.Context, ps *viewService.PageSet, id int64) (mutate.Outcome, error) {
	if err := s.ensureArticles(ctx, ps); err != nil {
		return mutate.Outcome{}, err
	}

	return ps.Mutator.Do(ctx, mutate.Mutation{
		Key:   fmt.Sprintf("article:%d", id),
		Apply: func() { ps.Articles.IncrementLikes(id) },
		Call: func(ctx context.Context) error {
			return s.api.RecordLike(ctx, ps.Token, id)
		},
		Revert: func() { ps.Articles.DecrementLikes(id) },
		OnCommit: func() {
			s.pages.Loader().Invalidate(ctx, view.CacheKeyLikes)
		},
		FailureMessage: "Failed to like article",
	})
}

// ========================================
// USER MUTATIONS (admin)
// ========================================

// ChangeRole đổi role user optimistically
// Row hiển thị role mới ngay; reject thì revert về đúng role cũ.
func (s *MutationService) ChangeRole(ctx context.Context, ps *viewService.PageSet, id int64, role auth.Role) (mutate.Outcome, error) {
	if !role.IsValid() {
		return mutate.Outcome{}, auth.ErrInvalidRole
	}

	if err := s.ensureUsers(ctx, ps); err != nil {
		return mutate.Outcome{}, err
	}

	prior, ok := ps.Users.Role(id)
	if !ok {
		return mutate.Outcome{}, view.ErrUserNotFound
	}

	return ps.Mutator.Do(ctx, mutate.Mutation{
		Key:   fmt.Sprintf("user:%d", id),
		Apply: func() { ps.Users.SetRole(id, role) },
		Call: func(ctx context.Context) error {
			return s.api.UpdateUserRole(ctx, ps.Token, id, role.String())
		},
		Revert: func() { ps.Users.SetRole(id, prior) },
		OnCommit: func() {
			s.pages.Loader().Invalidate(ctx, view.CacheKeyUsers)
		},
		SuccessMessage: "User role updated",
		FailureMessage: "Failed to update user role",
	})
}

// DeleteUser xóa user optimistically
func (s *MutationService) DeleteUser(ctx context.Context, ps *viewService.PageSet, id int64) (mutate.Outcome, error) {
	if err := s.ensureUsers(ctx, ps); err != nil {
		return mutate.Outcome{}, err
	}

	var removed view.User
	var index int
	var taken bool
	return ps.Mutator.Do(ctx, mutate.Mutation{
		Key:   fmt.Sprintf("user:%d", id),
		Apply: func() { removed, index, taken = ps.Users.TakeUser(id) },
		Call: func(ctx context.Context) error {
			return s.api.DeleteUser(ctx, ps.Token, id)
		},
		Revert: func() {
			if taken {
				ps.Users.PutUser(removed, index)
			}
		},
		OnCommit: func() {
			s.pages.Loader().Invalidate(ctx, view.CacheKeyUsers)
		},
		SuccessMessage: "User deleted",
		FailureMessage: "Failed to delete user",
	})
}
