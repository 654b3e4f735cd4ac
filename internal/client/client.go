// Package client is a typed HTTP client for the shareit API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"shareit/internal/models"

	"github.com/redis/go-redis/v9"
)

const cachePrefix = "shareit:client:"

// APIError is a non-2xx reply from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

// Client calls the shareit HTTP API on behalf of sharers.
type Client struct {
	baseURL    string
	apiKey     string
	apiExtra   string
	httpClient *http.Client

	redis    *redis.Client
	cacheTTL time.Duration
}

// New constructs a client with baseURL and the optional API key pair.
func New(baseURL, apiKey, apiExtra string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		apiExtra:   apiExtra,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// UseRedisCache caches item search results for ttl.
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

func (c *Client) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	var user models.User
	body := map[string]string{"name": name, "email": email}
	if err := c.send(ctx, http.MethodPost, "/users", 0, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := c.send(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), 0, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateItem(ctx context.Context, sharer int64, item models.Item) (*models.Item, error) {
	body := map[string]any{
		"name":        item.Name,
		"description": item.Description,
		"available":   item.Available,
	}
	if item.RequestID != nil {
		body["requestId"] = *item.RequestID
	}

	var created models.Item
	if err := c.send(ctx, http.MethodPost, "/items", sharer, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) GetItem(ctx context.Context, sharer, id int64) (*models.ItemInfo, error) {
	var info models.ItemInfo
	if err := c.send(ctx, http.MethodGet, fmt.Sprintf("/items/%d", id), sharer, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SearchItems finds available items by text, served from the cache when enabled.
func (c *Client) SearchItems(ctx context.Context, sharer int64, text string) ([]models.Item, error) {
	cacheKey := cachePrefix + "search:" + text
	var items []models.Item

	if c.readCache(ctx, cacheKey, &items) {
		return items, nil
	}

	path := "/items/search?text=" + url.QueryEscape(text)
	if err := c.send(ctx, http.MethodGet, path, sharer, nil, &items); err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, items)
	return items, nil
}

func (c *Client) CreateBooking(ctx context.Context, sharer int64, req models.BookingRequest) (*models.Booking, error) {
	body := map[string]any{
		"itemId": req.ItemID,
		"start":  req.Start.UTC().Format(time.RFC3339),
		"end":    req.End.UTC().Format(time.RFC3339),
	}
	var booking models.Booking
	if err := c.send(ctx, http.MethodPost, "/bookings", sharer, body, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) SetApproval(ctx context.Context, sharer, bookingID int64, approved bool) (*models.Booking, error) {
	path := fmt.Sprintf("/bookings/%d?approved=%s", bookingID, strconv.FormatBool(approved))
	var booking models.Booking
	if err := c.send(ctx, http.MethodPatch, path, sharer, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListBookings lists the sharer's bookings as booker, or as item owner when owner is set.
func (c *Client) ListBookings(ctx context.Context, sharer int64, owner bool, state string, page models.Page) ([]models.Booking, error) {
	path := "/bookings"
	if owner {
		path += "/owner"
	}
	q := url.Values{}
	q.Set("state", state)
	q.Set("from", strconv.Itoa(page.Offset))
	q.Set("size", strconv.Itoa(page.Limit))

	var bookings []models.Booking
	if err := c.send(ctx, http.MethodGet, path+"?"+q.Encode(), sharer, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.cacheTTL).Err()
}

func (c *Client) send(ctx context.Context, method, path string, sharer int64, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sharer != 0 {
		req.Header.Set(models.SharerHeader, strconv.FormatInt(sharer, 10))
	}
	c.addHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) addHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
	if c.apiExtra != "" {
		req.Header.Set("x-api-extra", c.apiExtra)
	}
}
