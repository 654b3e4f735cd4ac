package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

type requestIDKey struct{}

func requestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		dur := time.Since(start)

		// The mux fills in the matched pattern on the way down.
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(route, recorder.status, dur)

		s.logger.Info().
			Str("request_id", requestIDFromContext(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", dur).
			Msg("http request")
	})
}

// quotaMiddleware caps requests per sharer id. Requests without a usable id pass
// through and are rejected by the handlers that need one.
func (s *HTTPServer) quotaMiddleware(next http.Handler) http.Handler {
	if s.quota == nil || !s.cfg.Quota.Enabled {
		return next
	}

	limit := s.cfg.Quota.Limit
	if limit <= 0 {
		limit = models.DefaultQuotaLimit
	}
	windowSeconds := s.cfg.Quota.WindowSeconds
	if windowSeconds <= 0 {
		windowSeconds = models.DefaultQuotaWindow
	}
	window := time.Duration(windowSeconds) * time.Second

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(strings.TrimSpace(r.Header.Get(models.SharerHeader)), 10, 64)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		allowed, err := s.quota.CheckRateLimit(r.Context(), id, limit, window)
		if err != nil {
			s.logger.Error().Err(err).Int64("sharer_id", id).Msg("quota check failed")
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			metrics.IncQuotaRejection()
			writeError(w, http.StatusTooManyRequests, "request quota exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
