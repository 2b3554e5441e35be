package middleware

import (
	"bytes"
	"net/http"
	"time"

	"plume/app/cache"
	"plume/internal/logger"
)

// responseRecorder captures a handler's rendered output so it can be stored.
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// CachePage memoizes the wrapped handler's rendered response under a fixed
// key for the given window. Only bare GET requests (no query string) are
// served from or stored into the cache, and any cache backend failure falls
// through to a direct render.
func CachePage(store cache.Store, key string, window time.Duration, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || r.URL.RawQuery != "" {
				next.ServeHTTP(w, r)
				return
			}

			if body, err := store.Get(key); err == nil {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.Write(body)
				return
			} else if err != cache.ErrMiss {
				log.Error("cache", "page cache read failed, rendering directly", err)
			}

			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status == http.StatusOK {
				if err := store.Set(key, rec.body.Bytes(), window); err != nil {
					log.Error("cache", "page cache write failed", err)
				}
			}
		})
	}
}
