package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hacklog-frontend/internal/backend"
	"hacklog-frontend/internal/domains/auth"
	"hacklog-frontend/internal/domains/view"
)

func newTestPageService(t *testing.T, handler http.Handler) *PageService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	api := backend.NewClient(srv.URL, "connect.sid", 2*time.Second)
	loader := view.NewLoader(api, nil, 30*time.Second)
	return NewPageService(api, loader, 15*time.Minute)
}

func hacklogMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/articles_with_tags", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":1,"authorId":10,"title":"Go tips","tags":"go","created":"2024-01-01T00:00:00Z"},
			{"id":2,"authorId":11,"title":"Web notes","tags":"web","created":"2024-01-02T00:00:00Z"},
			{"id":3,"authorId":10,"title":"More Go","tags":"go,web","created":"2024-01-03T00:00:00Z"}
		]`))
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":10,"username":"alice","role":"user"},{"id":11,"username":"bob","role":"admin"}]`))
	})
	mux.HandleFunc("/likes", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"articleId":2,"count":5}]`))
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("connect.sid"); err != nil {
			w.Write([]byte(`{"error":"not logged in"}`))
			return
		}
		w.Write([]byte(`{"id":10,"username":"alice","role":"user"}`))
	})
	return mux
}

func TestArticlesView(t *testing.T) {
	svc := newTestPageService(t, hacklogMux())

	rows, _, err := svc.ArticlesView(context.Background(), "tok", view.Criteria{}, false)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "alice", rows[0].AuthorName)
	assert.Equal(t, 5, rows[1].Likes)
}

func TestArticlesViewProjection(t *testing.T) {
	svc := newTestPageService(t, hacklogMux())

	rows, _, err := svc.ArticlesView(context.Background(), "tok",
		view.Criteria{Tag: "go", Sort: view.SortNewest}, false)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(3), rows[0].ID)
	assert.Equal(t, int64(1), rows[1].ID)
}

func TestArticlesViewMineOnly(t *testing.T) {
	svc := newTestPageService(t, hacklogMux())

	// Session user is alice (id 10)
	rows, _, err := svc.ArticlesView(context.Background(), "tok", view.Criteria{}, true)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, int64(10), row.AuthorID)
	}
}

func TestArticlesViewMineOnlyAnonymous(t *testing.T) {
	svc := newTestPageService(t, hacklogMux())

	_, _, err := svc.ArticlesView(context.Background(), "", view.Criteria{}, true)
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
}

func TestArticleDetail(t *testing.T) {
	mux := hacklogMux()
	mux.HandleFunc("/article_details/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"title":"Go tips","authorUsername":"alice","likes":7,"tags":"go"}`))
	})
	mux.HandleFunc("/article_details/99", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"no such article"}`))
	})

	svc := newTestPageService(t, mux)

	row, err := svc.ArticleDetail(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", row.AuthorName)
	assert.Equal(t, 7, row.Likes)
	assert.Equal(t, []string{"go"}, row.Tags)

	_, err = svc.ArticleDetail(context.Background(), "", 99)
	assert.ErrorIs(t, err, view.ErrArticleNotFound)
}

func TestArticleDetailMissingAuthor(t *testing.T) {
	mux := hacklogMux()
	mux.HandleFunc("/article_details/2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":2,"title":"Orphan"}`))
	})

	svc := newTestPageService(t, mux)
	row, err := svc.ArticleDetail(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Equal(t, view.AuthorPlaceholder, row.AuthorName)
	assert.Equal(t, 0, row.Likes)
}

func TestUsersView(t *testing.T) {
	svc := newTestPageService(t, hacklogMux())

	users, _, err := svc.UsersView(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, auth.RoleAdmin, users[1].Role)
}

func TestTagList(t *testing.T) {
	mux := hacklogMux()
	mux.HandleFunc("/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"name":"go"}]`))
	})

	svc := newTestPageService(t, mux)
	tags, err := svc.TagList(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []view.Tag{{ID: 1, Name: "go"}}, tags)
}

// Same token gets the same PageSet back; anonymous gets a fresh one per call.
func TestPageSetIdentity(t *testing.T) {
	svc := newTestPageService(t, hacklogMux())

	assert.Same(t, svc.PageSet("tok"), svc.PageSet("tok"))
	assert.NotSame(t, svc.PageSet(""), svc.PageSet(""))
}

func TestDropSession(t *testing.T) {
	svc := newTestPageService(t, hacklogMux())

	first := svc.PageSet("tok")
	svc.DropSession("tok")
	assert.NotSame(t, first, svc.PageSet("tok"))
}
