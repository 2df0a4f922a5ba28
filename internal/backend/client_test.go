package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "connect.sid", 2*time.Second)
}

func TestListForwardsSessionCookie(t *testing.T) {
	var gotCookie string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("connect.sid"); err == nil {
			gotCookie = c.Value
		}
		w.Write([]byte(`[{"id":1}]`))
	})

	records, err := client.ListArticles(context.Background(), "sess-token")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "sess-token", gotCookie)
}

func TestListNonArrayDegradesToEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":"object"}`))
	})

	records, err := client.ListTags(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestErrorBodyJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"article not found"}`, http.StatusNotFound)
	})

	_, err := client.GetArticle(context.Background(), "", 99)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "article not found", apiErr.Message)
}

func TestErrorBodyPlainText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	})

	_, err := client.ListUsers(context.Background(), "")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "Internal Server Error", apiErr.Message)
}

// Backend sometimes answers 200 with {"error": ...} - still a failure.
func TestSendOkStatusWithErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"duplicate email"}`))
	})

	err := client.RegisterUser(context.Background(), "a@x.io", "alice", "secret")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "duplicate email", apiErr.Message)
}

func TestInsertedIDAliases(t *testing.T) {
	assert.Equal(t, int64(7), InsertedID(Record{"insertId": float64(7)}))
	assert.Equal(t, int64(8), InsertedID(Record{"__insertId": float64(8)}))
	assert.Equal(t, int64(9), InsertedID(Record{"id": float64(9)}))
	assert.Equal(t, int64(3), InsertedID(Record{"insertId": "3"}))
	// First alias present wins
	assert.Equal(t, int64(1), InsertedID(Record{"insertId": float64(1), "id": float64(2)}))
	assert.Equal(t, int64(0), InsertedID(Record{}))
}

func TestCurrentUserAnonymous(t *testing.T) {
	// Backend answers GET /login with {"error": ...} when no session exists;
	// that is anonymous, not a failure.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"not logged in"}`))
	})

	record, err := client.CurrentUser(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestCurrentUserLoggedIn(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":4,"username":"dave","role":"admin"}`))
	})

	record, err := client.CurrentUser(context.Background(), "tok")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "dave", record["username"])
}

func TestLoginCapturesSetCookie(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "connect.sid", Value: "fresh-session"})
		w.Write([]byte(`{"id":1,"username":"alice"}`))
	})

	record, cookies, err := client.Login(context.Background(), "a@x.io", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", record["username"])
	require.Len(t, cookies, 1)
	assert.Equal(t, "fresh-session", cookies[0].Value)
}

func TestUnlinkTagsQuery(t *testing.T) {
	var gotURL string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.RequestURI()
		w.Write([]byte(`{}`))
	})

	require.NoError(t, client.UnlinkTags(context.Background(), "tok", 5))
	assert.Equal(t, "/article_tags?where=articleId=5", gotURL)
}
