package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"elampillai/internal/logging"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORSAllowedOrigin(t *testing.T) {
	h := CORS([]string{"http://localhost:5173", " http://admin.example "})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shops", nil)
	req.Header.Set("Origin", "http://admin.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://admin.example" {
		t.Fatalf("Allow-Origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("Allow-Credentials = %q", got)
	}
}

func TestCORSUnknownOrigin(t *testing.T) {
	h := CORS([]string{"http://localhost:5173"})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shops", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("Allow-Origin = %q, want empty", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCORSWildcardAndPreflight(t *testing.T) {
	called := false
	h := CORS([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/shops", nil)
	req.Header.Set("Origin", "http://anywhere.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", rec.Code)
	}
	if called {
		t.Fatalf("preflight should not reach the handler")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("Allow-Origin = %q", got)
	}
}

func TestRequestLoggingSetsRequestID(t *testing.T) {
	var seen string
	h := RequestLogging()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if seen == "" || rec.Header().Get("X-Request-ID") != seen {
		t.Fatalf("request id not propagated: ctx=%q header=%q", seen, rec.Header().Get("X-Request-ID"))
	}
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "given-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen != "given-id" {
		t.Fatalf("incoming request id ignored: %q", seen)
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"internal server error"`) {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

// captureLog points the global logger at a buffer for the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	logging.SetGlobalLogger(logging.New(logging.Config{Level: "debug", Output: &buf}))
	return &buf
}

func TestRequestLoggingEvent(t *testing.T) {
	buf := captureLog(t)

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}), Session(time.Hour), RequestLogging())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/posts/p1/comments/c9", nil))

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}

	want := map[string]any{
		"level":       "warn",
		"request_id":  rec.Header().Get("X-Request-ID"),
		"session_id":  rec.Header().Get("X-Session-ID"),
		"resource":    "posts",
		"post_id":     "p1",
		"comment_id":  "c9",
		"method":      http.MethodDelete,
		"status_code": float64(http.StatusNotFound),
	}
	for key, value := range want {
		if entry[key] != value {
			t.Errorf("%s = %v, want %v", key, entry[key], value)
		}
	}
}

func TestRequestLoggingShopRoute(t *testing.T) {
	buf := captureLog(t)

	h := Chain(okHandler, RequestLogging(), Recovery())
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/shops/42/edit", nil))

	if !strings.Contains(buf.String(), `"shop_id":"42"`) || !strings.Contains(buf.String(), `"level":"info"`) {
		t.Fatalf("unexpected log: %q", buf.String())
	}
	if strings.Contains(buf.String(), "session_id") {
		t.Fatalf("session_id logged without a session: %q", buf.String())
	}
}

func TestSessionIssuesAndReusesID(t *testing.T) {
	var seen string
	h := Session(time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.SessionID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/posts/1/comments", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("issued session id %q is not a uuid", seen)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie || cookies[0].Value != seen {
		t.Fatalf("unexpected cookies: %v", cookies)
	}

	first := seen
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts/1/comments", nil)
	req.AddCookie(cookies[0])
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != first {
		t.Fatalf("cookie session not reused: %q != %q", seen, first)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/posts/1/comments", nil)
	req.Header.Set("X-Session-ID", "not-a-uuid")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen == "not-a-uuid" {
		t.Fatalf("invalid session id accepted")
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	Chain(okHandler, mw("outer"), mw("inner")).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Fatalf("order = %v", order)
	}
}
