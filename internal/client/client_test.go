package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"shareit/internal/api"
	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"
	"shareit/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatewayConfig() config.APIConfig {
	return config.APIConfig{
		Auth: config.APIAuthConfig{
			Enabled:      true,
			HeaderAPIKey: "x-api-key",
			HeaderExtra:  "x-api-extra",
			APIKeys: []config.APIClientKey{
				{Key: "gateway-key", Extra: "gateway-extra", Name: "gateway"},
			},
		},
		RateLimit: config.APIRateLimitConfig{RPS: 100, Burst: 200},
	}
}

// newGateway serves the real HTTP adapter over sqlite. wrap, when set, sits in front of it.
func newGateway(t *testing.T, wrap func(http.Handler) http.Handler) *httptest.Server {
	t.Helper()
	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(filepath.Join(t.TempDir(), "client.db"), &logger)
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

	var handler http.Handler = api.NewHTTPServer(gatewayConfig(), svc, db, &logger).Handler()
	if wrap != nil {
		handler = wrap(handler)
	}
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestClient_BookingFlow(t *testing.T) {
	ts := newGateway(t, nil)
	c := New(ts.URL, "gateway-key", "gateway-extra")
	ctx := context.Background()

	alice, err := c.CreateUser(ctx, "alice", "alice@example.com")
	require.NoError(t, err)
	bob, err := c.CreateUser(ctx, "bob", "bob@example.com")
	require.NoError(t, err)

	fetched, err := c.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", fetched.Email)

	item, err := c.CreateItem(ctx, alice.ID, models.Item{Name: "Drill", Description: "Cordless drill", Available: true})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, item.OwnerID)

	start := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	booking, err := c.CreateBooking(ctx, bob.ID, models.BookingRequest{ItemID: item.ID, Start: start, End: start.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, booking.Status)
	assert.True(t, start.Equal(booking.Start))

	approved, err := c.SetApproval(ctx, alice.ID, booking.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)

	_, err = c.SetApproval(ctx, alice.ID, booking.ID, true)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, domain.MsgApprovedAlreadySet, apiErr.Message)

	owned, err := c.ListBookings(ctx, alice.ID, true, "FUTURE", models.Page{Offset: 0, Limit: 10})
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, booking.ID, owned[0].ID)

	mine, err := c.ListBookings(ctx, bob.ID, false, "APPROVED", models.Page{Offset: 0, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	info, err := c.GetItem(ctx, alice.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drill", info.Name)
	assert.NotNil(t, info.Comments)

	_, err = c.GetUser(ctx, 999)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, domain.MsgUserNotFound, apiErr.Message)

	_, err = c.ListBookings(ctx, alice.ID, true, "SOMEDAY", models.Page{Offset: 0, Limit: 10})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Unknown state: SOMEDAY", apiErr.Message)
}

func TestClient_WrongKey(t *testing.T) {
	ts := newGateway(t, nil)
	ctx := context.Background()

	_, err := New(ts.URL, "stolen-key", "gateway-extra").GetUser(ctx, 1)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	_, err = New(ts.URL, "", "").GetUser(ctx, 1)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestClient_SearchCache(t *testing.T) {
	var hits atomic.Int32
	ts := newGateway(t, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/items/search" {
				hits.Add(1)
			}
			next.ServeHTTP(w, r)
		})
	})

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	c := New(ts.URL, "gateway-key", "gateway-extra")
	c.UseRedisCache(rdb, time.Minute)
	ctx := context.Background()

	owner, err := c.CreateUser(ctx, "alice", "alice@example.com")
	require.NoError(t, err)
	_, err = c.CreateItem(ctx, owner.ID, models.Item{Name: "Drill", Description: "Cordless drill", Available: true})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		items, err := c.SearchItems(ctx, owner.ID, "cordless drill")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Drill", items[0].Name)
	}
	assert.Equal(t, int32(1), hits.Load())
	assert.True(t, mr.Exists(cachePrefix+"search:cordless drill"))

	mr.FastForward(2 * time.Minute)
	_, err = c.SearchItems(ctx, owner.ID, "cordless drill")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_SearchWithoutCache(t *testing.T) {
	ts := newGateway(t, nil)
	c := New(ts.URL, "gateway-key", "gateway-extra")
	ctx := context.Background()

	owner, err := c.CreateUser(ctx, "alice", "alice@example.com")
	require.NoError(t, err)

	items, err := c.SearchItems(ctx, owner.ID, "")
	require.NoError(t, err)
	assert.Empty(t, items)
}
