package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"shareit/internal/client"
	"shareit/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type options struct {
	baseURL   string
	apiKey    string
	apiExtra  string
	redisAddr string
	timeout   time.Duration
}

func main() {
	var opts options
	flag.StringVar(&opts.baseURL, "url", "http://localhost:8080", "gateway base URL")
	flag.StringVar(&opts.apiKey, "api-key", os.Getenv("GATEWAY_API_KEY"), "API key, when auth is enabled")
	flag.StringVar(&opts.apiExtra, "api-extra", os.Getenv("GATEWAY_API_EXTRA"), "API key extra secret")
	flag.StringVar(&opts.redisAddr, "redis", "", "redis address for the search cache (optional)")
	flag.DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "smoke").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	if err := run(ctx, opts, &logger); err != nil {
		logger.Error().Err(err).Msg("smoke run failed")
		os.Exit(1)
	}
	logger.Info().Msg("smoke run passed")
}

// run walks one lending cycle against a live gateway: two users, an item, a search,
// a booking and its approval, then the owner's booking list.
func run(ctx context.Context, opts options, logger *zerolog.Logger) error {
	c := client.New(opts.baseURL, opts.apiKey, opts.apiExtra)
	if opts.redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: opts.redisAddr})
		defer rdb.Close()
		c.UseRedisCache(rdb, time.Minute)
	}

	suffix := time.Now().UTC().Format("20060102150405.000")
	owner, err := c.CreateUser(ctx, "smoke-owner", fmt.Sprintf("owner-%s@smoke.test", suffix))
	if err != nil {
		return fmt.Errorf("create owner: %w", err)
	}
	booker, err := c.CreateUser(ctx, "smoke-booker", fmt.Sprintf("booker-%s@smoke.test", suffix))
	if err != nil {
		return fmt.Errorf("create booker: %w", err)
	}
	logger.Info().Int64("owner_id", owner.ID).Int64("booker_id", booker.ID).Msg("users created")

	name := "smoke-item-" + suffix
	item, err := c.CreateItem(ctx, owner.ID, models.Item{Name: name, Description: "smoke test item", Available: true})
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}

	found, err := c.SearchItems(ctx, booker.ID, name)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if !containsItem(found, item.ID) {
		return fmt.Errorf("search for %q did not return item %d", name, item.ID)
	}
	logger.Info().Int64("item_id", item.ID).Int("found", len(found)).Msg("item searchable")

	start := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	booking, err := c.CreateBooking(ctx, booker.ID, models.BookingRequest{ItemID: item.ID, Start: start, End: start.Add(time.Hour)})
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	if _, err := c.SetApproval(ctx, owner.ID, booking.ID, true); err != nil {
		return fmt.Errorf("approve booking: %w", err)
	}

	_, err = c.SetApproval(ctx, owner.ID, booking.ID, true)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		return fmt.Errorf("second approval: want 400, got %v", err)
	}
	logger.Info().Int64("booking_id", booking.ID).Msg("booking approved once")

	owned, err := c.ListBookings(ctx, owner.ID, true, "FUTURE", models.Page{Offset: 0, Limit: 10})
	if err != nil {
		return fmt.Errorf("list owner bookings: %w", err)
	}
	for _, b := range owned {
		if b.ID == booking.ID && b.Status == models.StatusApproved {
			return nil
		}
	}
	return fmt.Errorf("approved booking %d missing from owner FUTURE list", booking.ID)
}

func containsItem(items []models.Item, id int64) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}
