package middleware

import (
	"fmt"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"storefront/internal/messages"
	"storefront/internal/pkg/logger"
)

// RequestLogger logs method, path, status and duration of every request.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			fields := map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  chimw.GetReqID(r.Context()),
			}
			if ww.Status() >= http.StatusBadRequest {
				log.Warn("request completed with error status", fields)
				return
			}
			log.Info("request completed", fields)
		})
	}
}

// Recoverer turns a panic into 500 {"message": "Internal server error"}.
func Recoverer(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error("panic while serving "+r.Method+" "+r.URL.Path, fmt.Errorf("%v", rec))
					writeMessage(w, http.StatusInternalServerError, messages.InternalServer)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
