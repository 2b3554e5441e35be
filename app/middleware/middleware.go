package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"plume/app/auth"
	"plume/internal/logger"
)

type contextKey string

const userCtxKey = contextKey("user_id")

// LoginPath is where anonymous requests to protected routes are sent.
const LoginPath = "/auth/login/"

// RequestLogger logs information about each request
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Info("http", fmt.Sprintf("%s %s took %s", r.Method, r.URL.Path, time.Since(start)))
		})
	}
}

// Recoverer recovers from panics and logs the error
func Recoverer(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("http", fmt.Sprintf("panic serving %s", r.URL.Path), fmt.Errorf("%v", rec))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Authenticate resolves the session cookie, if any, and stores the viewer's
// user ID in the request context. Requests without a valid session pass
// through anonymously.
func Authenticate(sessions *auth.Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err == nil {
				if userID, err := sessions.Verify(cookie.Value); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), userCtxKey, userID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireLogin redirects anonymous requests to the login page, carrying the
// originally requested path so the user can return there after signing in.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserID(r.Context()); !ok {
			target := LoginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserID extracts the authenticated viewer's ID from the request context
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userCtxKey).(int)
	return id, ok
}
