package delivery

import (
	"context"
	"encoding/json"
	"errors"

	pkgredis "github.com/arkodas/banglamart-backend/pkg/redis"
)

// LocationCache persists a shopper's last confirmed location. Entries never
// expire on their own; a new successful lookup overwrites the old one.
type LocationCache struct {
	client *pkgredis.Client
}

// NewLocationCache wraps the shared redis client.
func NewLocationCache(client *pkgredis.Client) *LocationCache {
	return &LocationCache{client: client}
}

// Save stores the resolved location under the shopper's client id.
func (c *LocationCache) Save(ctx context.Context, clientID string, loc ResolvedLocation) error {
	if c == nil || c.client == nil {
		return errors.New("location cache not configured")
	}
	payload, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.client.LocationKey(clientID), string(payload), 0)
}

// Get returns the cached location, or (nil, nil) when nothing is stored.
func (c *LocationCache) Get(ctx context.Context, clientID string) (*ResolvedLocation, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("location cache not configured")
	}
	raw, err := c.client.Get(ctx, c.client.LocationKey(clientID))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var loc ResolvedLocation
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// CountEstimate bumps the running total of estimates served. The counter is
// operational telemetry only; losing increments is acceptable.
func (c *LocationCache) CountEstimate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("location cache not configured")
	}
	_, err := c.client.Incr(ctx, c.client.CounterKey("estimates"))
	return err
}

// Clear drops the cached location if present.
func (c *LocationCache) Clear(ctx context.Context, clientID string) error {
	if c == nil || c.client == nil {
		return errors.New("location cache not configured")
	}
	return c.client.Del(ctx, c.client.LocationKey(clientID))
}
