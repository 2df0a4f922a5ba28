package view

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"hacklog-frontend/internal/backend"
	"hacklog-frontend/pkg/cache"
	"hacklog-frontend/pkg/logger"
)

// Join ghép ba collections thành view rows
// Một row per article, giữ nguyên thứ tự input (deterministic).
// Author không resolve → placeholder; article không có likes → 0.
func Join(articles []Article, users []User, likes map[int64]int) []Row {
	usernames := make(map[int64]string, len(users))
	for _, u := range users {
		usernames[u.ID] = u.Username
	}

	rows := make([]Row, 0, len(articles))
	for _, a := range articles {
		name, ok := usernames[a.AuthorID]
		if !ok || name == "" {
			name = AuthorPlaceholder
		}
		rows = append(rows, Row{
			Article:    a,
			AuthorName: name,
			Likes:      likes[a.ID],
		})
	}
	return rows
}

// Loader fetch source collections từ backend, với read-through cache
// cho list responses (short TTL - mutations invalidate).
type Loader struct {
	api     *backend.Client
	cache   cache.Cache
	listTTL time.Duration
}

const (
	CacheKeyArticles = "hacklog:articles"
	CacheKeyUsers    = "hacklog:users"
	CacheKeyLikes    = "hacklog:likes"
	CacheKeyTags     = "hacklog:tags"
)

// NewLoader - c có thể nil (cache disabled)
func NewLoader(api *backend.Client, c cache.Cache, listTTL time.Duration) *Loader {
	return &Loader{api: api, cache: c, listTTL: listTTL}
}

// LoadArticles fetch articles + users + likes đồng thời rồi join
//   - articles hoặc users fail → error (fatal cho join)
//   - likes fail → degrade về empty map, chỉ warn log
//
// Trả về (rows, likes) - likes map là canonical derived data cho page state.
func (l *Loader) LoadArticles(ctx context.Context, session string) ([]Row, map[int64]int, error) {
	var (
		articles []Article
		users    []User
		likes    map[int64]int
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := l.cachedList(gctx, session, CacheKeyArticles, l.api.ListArticles)
		if err != nil {
			return err
		}
		articles = NormalizeArticles(records)
		return nil
	})

	g.Go(func() error {
		records, err := l.cachedList(gctx, session, CacheKeyUsers, l.api.ListUsers)
		if err != nil {
			return err
		}
		users = NormalizeUsers(records)
		return nil
	})

	g.Go(func() error {
		records, err := l.cachedList(gctx, session, CacheKeyLikes, l.api.ListLikes)
		if err != nil {
			// Secondary source: không fail cả join vì likes
			logger.Warn("likes fetch failed, defaulting to zero counts", err)
			likes = map[int64]int{}
			return nil
		}
		likes = NormalizeLikes(records)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return Join(articles, users, likes), likes, nil
}

// LoadUsers fetch users collection cho admin users view
func (l *Loader) LoadUsers(ctx context.Context, session string) ([]User, error) {
	records, err := l.cachedList(ctx, session, CacheKeyUsers, l.api.ListUsers)
	if err != nil {
		return nil, err
	}
	return NormalizeUsers(records), nil
}

// LoadTags fetch tag list cho tag picker / tag filter
func (l *Loader) LoadTags(ctx context.Context, session string) ([]Tag, error) {
	records, err := l.cachedList(ctx, session, CacheKeyTags, l.api.ListTags)
	if err != nil {
		return nil, err
	}
	return NormalizeTags(records), nil
}

// Invalidate xóa cached lists sau khi mutation commit
func (l *Loader) Invalidate(ctx context.Context, keys ...string) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("cache invalidation failed", err)
	}
}

// InvalidateAll - dùng sau create/update article (tags có thể đổi theo)
func (l *Loader) InvalidateAll(ctx context.Context) {
	l.Invalidate(ctx, CacheKeyArticles, CacheKeyUsers, CacheKeyLikes, CacheKeyTags)
}

type listFetch func(ctx context.Context, session string) ([]backend.Record, error)

// cachedList: read-through cache cho raw list responses
// Cache error không chặn request - fall back thẳng về API
func (l *Loader) cachedList(ctx context.Context, session, key string, fetch listFetch) ([]backend.Record, error) {
	if l.cache != nil {
		var cached []backend.Record
		found, err := l.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("cache read failed", err)
		} else if found {
			return cached, nil
		}
	}

	records, err := fetch(ctx, session)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, key, records, l.listTTL); err != nil {
			logger.Warn("cache write failed", err)
		}
	}
	return records, nil
}
