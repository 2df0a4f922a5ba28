package service

import (
	"context"
	"time"

	"hacklog-frontend/internal/backend"
	"hacklog-frontend/internal/domains/auth"
	"hacklog-frontend/internal/domains/mutate"
	"hacklog-frontend/internal/domains/view"
	"hacklog-frontend/internal/shared/coerce"
	"hacklog-frontend/internal/shared/notify"
)

// PageService orchestrate page lifecycle: resolve session, load + join
// collections, derive projections. Mỗi GET view tương ứng một "mount":
// pull fresh state (qua short-TTL cache), mutations giữ state consistent
// giữa các lần pull.
type PageService struct {
	api      *backend.Client
	loader   *view.Loader
	registry *Registry
}

func NewPageService(api *backend.Client, loader *view.Loader, pageTTL time.Duration) *PageService {
	return &PageService{
		api:      api,
		loader:   loader,
		registry: NewRegistry(pageTTL),
	}
}

// Loader expose cho mutation service (cache invalidation on commit)
func (s *PageService) Loader() *view.Loader {
	return s.loader
}

// PageSet trả về per-session state cho token
// Anonymous ("" token) nhận PageSet ephemeral - không đăng ký vào
// registry, vì không có identity để own nó qua nhiều requests.
func (s *PageService) PageSet(token string) *PageSet {
	if token == "" {
		return s.buildPageSet("")
	}
	return s.registry.Get(token, func() *PageSet {
		return s.buildPageSet(token)
	})
}

func (s *PageService) buildPageSet(token string) *PageSet {
	notices := notify.NewCenter(notify.DefaultDismissAfter)
	return &PageSet{
		Token: token,
		Store: auth.NewStore(func(ctx context.Context) (*auth.SessionUser, error) {
			record, err := s.api.CurrentUser(ctx, token)
			if err != nil {
				return nil, err
			}
			return auth.NormalizeSessionUser(record), nil
		}),
		Articles: view.NewPage(),
		Users:    view.NewUserPage(),
		Mutator:  mutate.NewMutator(notices),
		Notices:  notices,
	}
}

// DropSession evict page state sau logout
func (s *PageService) DropSession(token string) {
	if token != "" {
		s.registry.Drop(token)
	}
}

// ========================================
// ARTICLE VIEWS
// ========================================

// ArticlesView load + join + project article rows cho một page mount
// mineOnly giới hạn rows về bài của session user (My Articles page).
func (s *PageService) ArticlesView(ctx context.Context, token string, criteria view.Criteria, mineOnly bool) ([]view.Row, []notify.Notice, error) {
	ps := s.PageSet(token)

	if err := ps.Articles.Refresh(ctx, s.loader, token); err != nil {
		return nil, ps.Notices.Active(), err
	}

	rows := ps.Articles.Rows()
	if mineOnly {
		sess := ps.Store.User()
		if sess == nil {
			sess = ps.Store.Refresh(ctx)
		}
		if sess == nil {
			return nil, ps.Notices.Active(), auth.ErrNotAuthenticated
		}
		mine := rows[:0]
		for _, row := range rows {
			if row.AuthorID == sess.ID {
				mine = append(mine, row)
			}
		}
		rows = mine
	}

	return view.Project(rows, criteria), ps.Notices.Active(), nil
}

// ArticleDetail fetch một bài qua /article_details (join sẵn author)
func (s *PageService) ArticleDetail(ctx context.Context, token string, id int64) (*view.Row, error) {
	record, err := s.api.GetArticleDetails(ctx, token, id)
	if err != nil {
		return nil, err
	}
	if msg, ok := record["error"].(string); ok && msg != "" {
		return nil, view.ErrArticleNotFound
	}

	article := view.NormalizeArticle(record)
	if article.ID == 0 {
		return nil, view.ErrArticleNotFound
	}

	authorName := coerce.String(record["authorUsername"])
	if authorName == "" {
		authorName = view.AuthorPlaceholder
	}
	return &view.Row{
		Article:    article,
		AuthorName: authorName,
		Likes:      int(coerce.Int64(record["likes"])),
	}, nil
}

// TagList cho tag picker và tag filter dropdown
func (s *PageService) TagList(ctx context.Context, token string) ([]view.Tag, error) {
	return s.loader.LoadTags(ctx, token)
}

// ========================================
// USER VIEWS
// ========================================

// UsersView load user rows cho admin users page
func (s *PageService) UsersView(ctx context.Context, token string) ([]view.User, []notify.Notice, error) {
	ps := s.PageSet(token)
	if err := ps.Users.Refresh(ctx, s.loader, token); err != nil {
		return nil, ps.Notices.Active(), err
	}
	return ps.Users.Rows(), ps.Notices.Active(), nil
}
