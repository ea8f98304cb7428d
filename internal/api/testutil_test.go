package api_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/joestump/joe-bookmarks/internal/api"
	"github.com/joestump/joe-bookmarks/internal/auth"
	"github.com/joestump/joe-bookmarks/internal/bookmark"
	"github.com/joestump/joe-bookmarks/internal/logger"
	"github.com/joestump/joe-bookmarks/internal/store"
	"github.com/joestump/joe-bookmarks/internal/testutil"
)

const testToken = "test-api-token"

// testEnv holds the router and the store behind it.
type testEnv struct {
	Router    http.Handler
	Bookmarks *store.BookmarkStore
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the API router with a real store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	bs := store.NewBookmarkStore(testutil.NewTestDB(t))
	return &testEnv{
		Router:    newRouter(bs, false),
		Bookmarks: bs,
	}
}

func newRouter(bs store.BookmarkStoreIface, dev bool) http.Handler {
	log := logger.Nop()
	return api.NewAPIRouter(api.Deps{
		BearerAuth: auth.NewBearerTokenMiddleware(testToken, log),
		Bookmarks:  bs,
		Logger:     log,
		DevErrors:  dev,
	})
}

// seedBookmark stores a bookmark directly through the store.
func seedBookmark(t *testing.T, env *testEnv, d bookmark.Draft) *bookmark.Bookmark {
	t.Helper()
	b, err := env.Bookmarks.Insert(context.Background(), d)
	if err != nil {
		t.Fatalf("seed bookmark: %v", err)
	}
	return b
}

// do sends an authenticated request with an optional JSON body.
func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	authRequest(req, testToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// authRequest adds a Bearer token to the request.
func authRequest(r *http.Request, token string) *http.Request {
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}
