package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/joestump/joe-bookmarks/internal/api"
	"github.com/joestump/joe-bookmarks/internal/auth"
	"github.com/joestump/joe-bookmarks/internal/handler"
	"github.com/joestump/joe-bookmarks/internal/logger"
	"github.com/joestump/joe-bookmarks/internal/store"
	"github.com/joestump/joe-bookmarks/internal/testutil"
)

const testToken = "router-test-token"

type downProbe struct{}

func (downProbe) Ping(ctx context.Context) error          { return errors.New("connection refused") }
func (downProbe) Count(ctx context.Context) (int, error) { return 0, errors.New("connection refused") }

func newDeps(t *testing.T) handler.Deps {
	t.Helper()
	log := logger.Nop()
	bs := store.NewBookmarkStore(testutil.NewTestDB(t))
	return handler.Deps{
		API: api.Deps{
			BearerAuth: auth.NewBearerTokenMiddleware(testToken, log),
			Bookmarks:  bs,
			Logger:     log,
		},
		Probe:             bs,
		Logger:            log,
		RequestTimeout:    5 * time.Second,
		CORSAllowedOrigin: "*",
		StartTime:         time.Now(),
	}
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Hello(t *testing.T) {
	r := handler.NewRouter(newDeps(t))
	rec := serve(r, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); got != "Hello, bookmarks." {
		t.Errorf("body = %q, want %q", got, "Hello, bookmarks.")
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	r := handler.NewRouter(newDeps(t))
	rec := serve(r, httptest.NewRequest("GET", "/", nil))

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "no-referrer",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestRouter_Healthz(t *testing.T) {
	r := handler.NewRouter(newDeps(t))
	rec := serve(r, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("status field = %q, want ok", body.Status)
	}
}

func TestRouter_Readyz(t *testing.T) {
	t.Run("database up", func(t *testing.T) {
		r := handler.NewRouter(newDeps(t))
		rec := serve(r, httptest.NewRequest("GET", "/readyz", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("database down", func(t *testing.T) {
		deps := newDeps(t)
		deps.Probe = downProbe{}
		r := handler.NewRouter(deps)
		rec := serve(r, httptest.NewRequest("GET", "/readyz", nil))
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
		}
		if !strings.Contains(rec.Body.String(), `"ready":false`) {
			t.Errorf("body = %s", rec.Body.String())
		}
	})
}

func TestRouter_Metrics(t *testing.T) {
	r := handler.NewRouter(newDeps(t))

	// One API call so the operation counter has a sample.
	req := httptest.NewRequest("GET", "/api/bookmarks", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	serve(r, req)

	rec := serve(r, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	for _, name := range []string{"bookmarks_total", "bookmarks_operations_total", "bookmarks_http_request_duration_seconds"} {
		if !strings.Contains(rec.Body.String(), name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}

func TestRouter_APIMounted(t *testing.T) {
	r := handler.NewRouter(newDeps(t))

	rec := serve(r, httptest.NewRequest("GET", "/api/bookmarks", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	req := httptest.NewRequest("POST", "/api/bookmarks", strings.NewReader(`{"title":"t","url":"https://x.test","rating":3}`))
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec = serve(r, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if loc := rec.Header().Get("Location"); loc != "/api/bookmarks/"+created.ID {
		t.Errorf("Location = %q, want %q", loc, "/api/bookmarks/"+created.ID)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	r := handler.NewRouter(newDeps(t))

	req := httptest.NewRequest("OPTIONS", "/api/bookmarks", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	rec := serve(r, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "PATCH") {
		t.Errorf("Allow-Methods = %q, want PATCH listed", got)
	}
}

func TestRouter_CORSDisabled(t *testing.T) {
	deps := newDeps(t)
	deps.CORSAllowedOrigin = ""
	r := handler.NewRouter(deps)

	rec := serve(r, httptest.NewRequest("GET", "/", nil))
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want empty", got)
	}
}

func TestRouter_SwaggerDoc(t *testing.T) {
	r := handler.NewRouter(newDeps(t))
	rec := serve(r, httptest.NewRequest("GET", "/docs/doc.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "/bookmarks/{id}") {
		t.Errorf("doc.json does not describe /bookmarks/{id}")
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	r := handler.NewRouter(newDeps(t))
	rec := serve(r, httptest.NewRequest("GET", "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
