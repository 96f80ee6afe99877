package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"catalog-service/internal/logger"
)

// RequestLogger attaches a request-scoped zap logger to the context and
// logs one line per request once it completes. It expects chi's RequestID
// middleware to run first.
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			reqLog := log.With(zap.String("requestId", middleware.GetReqID(r.Context())))
			next.ServeHTTP(ww, r.WithContext(logger.WithLogger(r.Context(), reqLog)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			reqLog.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Int64("latency_ms", time.Since(start).Milliseconds()),
				zap.String("client_ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
			)
		})
	}
}

// NewRouter builds the chi router with the standard middleware stack and
// the catalog routes.
func NewRouter(h *HTTPHandler, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log.Named("access")))
	r.Use(middleware.Recoverer)
	h.RegisterRoutes(r)
	return r
}
