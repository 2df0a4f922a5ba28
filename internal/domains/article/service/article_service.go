package service

import (
	"context"
	"errors"
	"fmt"

	"hacklog-frontend/internal/backend"
	"hacklog-frontend/internal/domains/article"
	"hacklog-frontend/internal/domains/auth"
	"hacklog-frontend/internal/domains/view"
	"hacklog-frontend/pkg/logger"
)

// ArticleService xử lý create/update flows của article forms
// Không optimistic: form submit đợi backend xác nhận rồi mới navigate
// (giống CreateArticle/EditArticle pages của SPA).
type ArticleService struct {
	api    *backend.Client
	loader *view.Loader
}

func NewArticleService(api *backend.Client, loader *view.Loader) *ArticleService {
	return &ArticleService{api: api, loader: loader}
}

// Create tạo bài mới rồi link tags theo inserted id
// Tag linking là best effort: từng tag lỗi bị bỏ qua, bài vẫn tạo xong.
func (s *ArticleService) Create(ctx context.Context, token string, sess *auth.SessionUser, req article.CreateArticleRequest) (int64, error) {
	// 1. VALIDATE INPUT
	// DTO validation đã chạy ở handler, double-check cho an toàn
	if err := req.Validate(); err != nil {
		return 0, err
	}
	if sess == nil {
		return 0, auth.ErrNotAuthenticated
	}

	// 2. CREATE ARTICLE
	// featured mặc định 0 - chỉ admin toggle sau
	id, err := s.api.CreateArticle(ctx, token, backend.Record{
		"authorId": sess.ID,
		"title":    req.Title,
		"content":  req.Content,
		"excerpt":  req.Excerpt,
		"featured": 0,
	})
	if err != nil {
		return 0, fmt.Errorf("create article: %w", err)
	}

	// 3. LINK TAGS (best effort)
	if id != 0 {
		s.linkTags(ctx, token, id, req.TagIDs)
	}

	// 4. INVALIDATE CACHED LISTS
	s.loader.InvalidateAll(ctx)

	return id, nil
}

// Update sửa bài với ownership check rồi relink tags
// Rule từ SPA: author sửa bài mình, admin sửa tất cả.
func (s *ArticleService) Update(ctx context.Context, token string, sess *auth.SessionUser, id int64, req article.UpdateArticleRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if sess == nil {
		return auth.ErrNotAuthenticated
	}

	// 1. OWNERSHIP CHECK
	record, err := s.api.GetArticle(ctx, token, id)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 404 {
			return article.ErrNotFound
		}
		return fmt.Errorf("load article %d: %w", id, err)
	}
	current := view.NormalizeArticle(record)
	if current.ID == 0 {
		return article.ErrNotFound
	}
	if current.AuthorID != sess.ID && sess.Role != auth.RoleAdmin {
		return article.ErrNotOwner
	}

	// 2. UPDATE FIELDS
	if err := s.api.UpdateArticle(ctx, token, id, backend.Record{
		"title":   req.Title,
		"content": req.Content,
		"excerpt": req.Excerpt,
	}); err != nil {
		return fmt.Errorf("update article %d: %w", id, err)
	}

	// 3. RELINK TAGS: unlink hết rồi link lại (best effort)
	if err := s.api.UnlinkTags(ctx, token, id); err != nil {
		logger.Warn("unlink tags failed", err)
	}
	s.linkTags(ctx, token, id, req.TagIDs)

	// 4. INVALIDATE CACHED LISTS
	s.loader.InvalidateAll(ctx)

	return nil
}

func (s *ArticleService) linkTags(ctx context.Context, token string, articleID int64, tagIDs []int64) {
	for _, tagID := range tagIDs {
		if err := s.api.LinkTag(ctx, token, articleID, tagID); err != nil {
			// Tag link lỗi không fail cả operation
			logger.Warn("link tag failed", err)
		}
	}
}
