// Package redis keeps the last location a schedule was computed for, so the
// app can come back to a useful default without a GPS fix.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sleepyhq/sleepy/internal/model"
)

const lastLocationKey = "sleepy:last_location"

type Client struct {
	rdb *redis.Client
}

func New(address, username, password string) *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       0,
	})}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// SaveLastLocation stores the location with no expiry; only the most recent
// one is kept.
func (c *Client) SaveLastLocation(ctx context.Context, loc model.Location) error {
	payload, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("marshal last location: %w", err)
	}
	if err := c.rdb.Set(ctx, lastLocationKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("store last location: %w", err)
	}
	return nil
}

// LastLocation returns the most recently saved location, or (nil, nil) when
// none has been recorded yet.
func (c *Client) LastLocation(ctx context.Context) (*model.Location, error) {
	payload, err := c.rdb.Get(ctx, lastLocationKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read last location: %w", err)
	}
	var loc model.Location
	if err := json.Unmarshal(payload, &loc); err != nil {
		return nil, fmt.Errorf("decode last location: %w", err)
	}
	return &loc, nil
}
