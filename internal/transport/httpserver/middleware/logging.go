package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"dogwalk-app-go/pkg/logger"
)

// RequestLogger stores a request-scoped logger in the context and logs one
// line per request once the response is written.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			scoped := log.With("request_id", chimw.GetReqID(r.Context()), "method", r.Method, "path", r.URL.Path)
			ctx := logger.WithContext(r.Context(), scoped)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			scoped.Info("http request", "status", status, "bytes", ww.BytesWritten(), "duration_ms", time.Since(start).Milliseconds())
		})
	}
}
