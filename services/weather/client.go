package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"branchbook/models"
	"branchbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	requestTimeout = 5 * time.Second
	cacheKey       = utils.WeatherCachePrefix + "current"
)

var ErrUnavailable = errors.New("weather service unavailable")

// Client fetches the current weather from a fixed URL and caches the result in Redis.
type Client struct {
	URL        string
	HTTPClient *http.Client
	Cache      *redis.Client
	TTL        time.Duration
	Logger     *zap.Logger
}

func NewClient(url string, cache *redis.Client, ttl time.Duration) *Client {
	return &Client{
		URL:        url,
		HTTPClient: &http.Client{Timeout: requestTimeout},
		Cache:      cache,
		TTL:        ttl,
		Logger:     utils.GetLogger(),
	}
}

func (c *Client) Current(ctx context.Context) (*models.Weather, error) {
	if w := c.cached(ctx); w != nil {
		return w, nil
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var w models.Weather
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	if w.City == "" {
		return nil, fmt.Errorf("%w: response missing city", ErrUnavailable)
	}

	c.store(ctx, &w)
	return &w, nil
}

func (c *Client) cached(ctx context.Context) *models.Weather {
	if c.Cache == nil {
		return nil
	}
	data, err := c.Cache.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger().Warn("weather cache read failed", zap.Error(err))
		}
		return nil
	}
	var w models.Weather
	if err := json.Unmarshal(data, &w); err != nil {
		return nil
	}
	return &w
}

func (c *Client) store(ctx context.Context, w *models.Weather) {
	if c.Cache == nil || c.TTL <= 0 {
		return
	}
	b, err := json.Marshal(w)
	if err != nil {
		return
	}
	if err := c.Cache.Set(ctx, cacheKey, b, c.TTL).Err(); err != nil {
		c.logger().Warn("weather cache write failed", zap.Error(err))
	}
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
