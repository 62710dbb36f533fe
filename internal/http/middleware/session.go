package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"elampillai/internal/logging"
)

// SessionCookie names the cookie carrying the visitor session ID.
const SessionCookie = "elampillai_session"

// Session makes sure every request carries a visitor session ID. The ID is
// read from the X-Session-ID header or the session cookie; a new one is
// issued when neither is present or the value is not a UUID.
func Session(ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get("X-Session-ID")
			if sessionID == "" {
				if c, err := r.Cookie(SessionCookie); err == nil {
					sessionID = c.Value
				}
			}
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = uuid.NewString()
			}

			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			w.Header().Set("X-Session-ID", sessionID)

			next.ServeHTTP(w, r.WithContext(logging.WithSessionID(r.Context(), sessionID)))
		})
	}
}
