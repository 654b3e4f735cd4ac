package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"shareit/internal/api"
	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/events"
	"shareit/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startGateway(t *testing.T, cfg config.APIConfig) *httptest.Server {
	t.Helper()
	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(filepath.Join(t.TempDir(), "smoke.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	bus := events.NewEventBus()
	clock := service.RealClock()
	users := service.NewUserService(db, &logger)
	svc := api.Services{
		Users:    users,
		Items:    service.NewItemService(db, db, users, service.NewProjector(db, db), &logger),
		Bookings: service.NewBookingService(db, db, users, bus, clock, &logger),
		Comments: service.NewCommentService(db, db, db, users, bus, clock, &logger),
		Requests: service.NewRequestService(db, db, users, clock, &logger),
	}

	ts := httptest.NewServer(api.NewHTTPServer(cfg, svc, db, &logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestRun(t *testing.T) {
	logger := zerolog.Nop()
	mr := miniredis.RunT(t)

	ts := startGateway(t, config.APIConfig{})
	err := run(context.Background(), options{baseURL: ts.URL, redisAddr: mr.Addr()}, &logger)
	require.NoError(t, err)
}

func TestRun_WithAuth(t *testing.T) {
	logger := zerolog.Nop()
	cfg := config.APIConfig{
		Auth: config.APIAuthConfig{
			Enabled:      true,
			HeaderAPIKey: "x-api-key",
			HeaderExtra:  "x-api-extra",
			APIKeys:      []config.APIClientKey{{Key: "k", Extra: "e", Name: "smoke"}},
		},
	}
	ts := startGateway(t, cfg)

	require.NoError(t, run(context.Background(), options{baseURL: ts.URL, apiKey: "k", apiExtra: "e"}, &logger))

	err := run(context.Background(), options{baseURL: ts.URL}, &logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create owner")
	assert.Contains(t, err.Error(), "401")
}

func TestRun_GatewayDown(t *testing.T) {
	logger := zerolog.Nop()
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	assert.Error(t, run(context.Background(), options{baseURL: url}, &logger))
}
