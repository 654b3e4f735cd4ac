package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/service"

	"github.com/rs/zerolog"
)

// Services bundles the core operations the gateway dispatches to.
type Services struct {
	Users    *service.UserService
	Items    *service.ItemService
	Bookings *service.BookingService
	Comments *service.CommentService
	Requests *service.RequestService
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HTTPServer is the JSON gateway in front of the core services.
type HTTPServer struct {
	cfg    config.APIConfig
	svc    Services
	store  Pinger
	quota  domain.QuotaRepository
	auth   *HTTPAuth
	server *http.Server
	logger zerolog.Logger
	sheet  string
	now    func() time.Time
}

// HTTPOption tweaks an HTTPServer at construction.
type HTTPOption func(*HTTPServer)

// WithQuota enables the per-sharer request quota backed by repo.
func WithQuota(repo domain.QuotaRepository) HTTPOption {
	return func(s *HTTPServer) { s.quota = repo }
}

// WithExportSheet sets the worksheet name of booking exports.
func WithExportSheet(name string) HTTPOption {
	return func(s *HTTPServer) { s.sheet = name }
}

// WithClock replaces the clock used by input validation.
func WithClock(now func() time.Time) HTTPOption {
	return func(s *HTTPServer) { s.now = now }
}

func NewHTTPServer(cfg config.APIConfig, svc Services, store Pinger, logger *zerolog.Logger, opts ...HTTPOption) *HTTPServer {
	srv := &HTTPServer{
		cfg:    cfg,
		svc:    svc,
		store:  store,
		auth:   NewHTTPAuth(cfg),
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	if logger != nil {
		srv.logger = logger.With().Str("component", "http").Logger()
	}
	for _, opt := range opts {
		opt(srv)
	}

	mux := http.NewServeMux()
	srv.routes(mux)

	handler := requestIDMiddleware(
		srv.loggingMiddleware(
			srv.auth.Wrap(
				srv.quotaMiddleware(mux))))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /users", s.handleCreateUser)
	mux.HandleFunc("GET /users", s.handleListUsers)
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)
	mux.HandleFunc("PATCH /users/{id}", s.handleUpdateUser)
	mux.HandleFunc("DELETE /users/{id}", s.handleDeleteUser)

	mux.HandleFunc("POST /items", s.handleCreateItem)
	mux.HandleFunc("GET /items", s.handleListItems)
	mux.HandleFunc("GET /items/search", s.handleSearchItems)
	mux.HandleFunc("GET /items/{id}", s.handleGetItem)
	mux.HandleFunc("PATCH /items/{id}", s.handleUpdateItem)
	mux.HandleFunc("POST /items/{id}/comment", s.handleAddComment)

	mux.HandleFunc("POST /bookings", s.handleCreateBooking)
	mux.HandleFunc("GET /bookings", s.handleListBookerBookings)
	mux.HandleFunc("GET /bookings/owner", s.handleListOwnerBookings)
	mux.HandleFunc("GET /bookings/owner/export", s.handleExportOwnerBookings)
	mux.HandleFunc("GET /bookings/{id}", s.handleGetBooking)
	mux.HandleFunc("PATCH /bookings/{id}", s.handleSetApproval)

	mux.HandleFunc("POST /requests", s.handleCreateRequest)
	mux.HandleFunc("GET /requests", s.handleListOwnRequests)
	mux.HandleFunc("GET /requests/all", s.handleListOtherRequests)
	mux.HandleFunc("GET /requests/{id}", s.handleGetRequest)
}

// Handler exposes the fully wrapped handler, mostly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Error().Err(err).Msg("health check failed")
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeDomainError maps a service error onto a status code. Forbidden is reported as
// not found so callers cannot discover resources they have no access to.
func (s *HTTPServer) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		s.logger.Error().Err(err).Str("request_id", requestIDFromContext(r.Context())).
			Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch de.Kind {
	case domain.KindNotFound, domain.KindForbidden:
		writeError(w, http.StatusNotFound, de.Message)
	case domain.KindBadRequest:
		writeError(w, http.StatusBadRequest, de.Message)
	case domain.KindConflict:
		writeError(w, http.StatusConflict, de.Message)
	default:
		writeError(w, http.StatusInternalServerError, de.Message)
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
