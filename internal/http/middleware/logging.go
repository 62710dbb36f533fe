package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"elampillai/internal/logging"
)

// statusRecorder remembers the first status code a handler answered with.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status != 0 {
		return
	}
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.WriteHeader(http.StatusOK)
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) code() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

// RequestLogging tags every request with an X-Request-ID and logs one event
// per request once the handler returns. The event carries the request and
// session IDs from the context plus the shop, post or comment addressed by
// the path.
func RequestLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", requestID)
			r = r.WithContext(logging.WithRequestID(r.Context(), requestID))

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			logger := logging.FromContext(r.Context())
			status := rec.code()

			var event *zerolog.Event
			switch {
			case status >= 500:
				event = logger.Error()
			case status >= 400:
				event = logger.Warn()
			default:
				event = logger.Info()
			}

			withRoute(event, r.URL.Path).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status_code", status).
				Dur("duration_ms", time.Since(start)).
				Msg("request handled")
		})
	}
}

// withRoute adds the record a path addresses:
// /api/v1/shops/{id} gives shop_id, /api/v1/posts/{id}/comments/{commentID}
// gives post_id and comment_id.
func withRoute(event *zerolog.Event, path string) *zerolog.Event {
	rest, ok := strings.CutPrefix(path, "/api/v1/")
	if !ok {
		return event
	}

	parts := strings.Split(strings.Trim(rest, "/"), "/")
	event = event.Str("resource", parts[0])
	if len(parts) < 2 {
		return event
	}

	switch parts[0] {
	case "shops":
		event = event.Str("shop_id", parts[1])
	case "posts":
		event = event.Str("post_id", parts[1])
		if len(parts) >= 4 && parts[2] == "comments" {
			event = event.Str("comment_id", parts[3])
		}
	}
	return event
}

// Recovery turns a handler panic into a logged 500 JSON error.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					withRoute(logging.FromContext(r.Context()).Error(), r.URL.Path).
						Str("method", r.Method).
						Interface("panic", err).
						Msg("recovered from panic")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// Chain applies middlewares so that the first one listed runs outermost
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
