// Package redis implements a Redis adapter for traversal notifications.
//
// Publishes traversal completion events as JSON to a configurable pub/sub
// channel and, when a key prefix is set, stores the latest event per corpus
// so jobs started later can read it. Retries with exponential backoff on
// connection errors.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pithecene-io/tagstream/adapter"
)

// DefaultChannel is the default pub/sub channel name.
const DefaultChannel = "tagstream:traversal_completed"

// DefaultTimeout is the default per-publish timeout.
const DefaultTimeout = 5 * time.Second

// DefaultRetries is the default number of retry attempts.
const DefaultRetries = 3

// Config configures the Redis adapter.
type Config struct {
	// URL is the Redis connection URL (required).
	// Format: redis://[:password@]host:port[/db]
	URL string
	// Channel is the pub/sub channel name (default: tagstream:traversal_completed).
	Channel string
	// KeyPrefix enables storing the latest event under KeyPrefix+corpus.
	// Empty disables storage.
	KeyPrefix string
	// TTL is the expiry of stored events; zero keeps them.
	TTL time.Duration
	// Timeout is the per-publish timeout (default 5s).
	Timeout time.Duration
	// Retries is the number of retry attempts on failure (default 3).
	Retries int
}

// Adapter publishes traversal completion events via Redis PUBLISH.
type Adapter struct {
	config Config
	client *goredis.Client
}

// New creates a Redis adapter from the given config.
// Returns an error if the URL is empty or invalid.
func New(cfg Config) (*Adapter, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis adapter requires a URL")
	}

	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis adapter: invalid URL: %w", err)
	}

	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries < 0 {
		return nil, fmt.Errorf("retries must be >= 0, got %d", cfg.Retries)
	}
	if cfg.TTL < 0 {
		return nil, fmt.Errorf("ttl must be >= 0, got %v", cfg.TTL)
	}

	return &Adapter{
		config: cfg,
		client: goredis.NewClient(opts),
	}, nil
}

// LatestKey returns the storage key for corpus, or "" when storage is off.
func (a *Adapter) LatestKey(corpus string) string {
	if a.config.KeyPrefix == "" {
		return ""
	}
	return a.config.KeyPrefix + corpus
}

// Publish sends the event to the configured channel and stores it when a
// key prefix is configured. Both commands run in one MULTI/EXEC.
// Retries with exponential backoff on failures.
func (a *Adapter) Publish(ctx context.Context, event *adapter.TraversalCompletedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("redis: marshal event: %w", err)
	}
	key := a.LatestKey(event.Corpus)

	var lastErr error
	// attempts = 1 initial + retries
	attempts := 1 + a.config.Retries

	for i := range attempts {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("redis: context canceled: %w", err)
		}

		if i > 0 {
			backoff := time.Duration(1<<uint(i-1)) * 500 * time.Millisecond
			select {
			case <-ctx.Done():
				return fmt.Errorf("redis: context canceled during backoff: %w", ctx.Err())
			case <-time.After(backoff):
			}
		}

		publishCtx, cancel := context.WithTimeout(ctx, a.config.Timeout)
		_, lastErr = a.client.TxPipelined(publishCtx, func(pipe goredis.Pipeliner) error {
			pipe.Publish(publishCtx, a.config.Channel, body)
			if key != "" {
				pipe.Set(publishCtx, key, body, a.config.TTL)
			}
			return nil
		})
		cancel()

		if lastErr == nil {
			return nil
		}
	}

	return fmt.Errorf("redis: failed after %d attempts: %w", attempts, lastErr)
}

// Latest returns the stored event for corpus. It returns (nil, nil) when
// nothing is stored or storage is off.
func (a *Adapter) Latest(ctx context.Context, corpus string) (*adapter.TraversalCompletedEvent, error) {
	key := a.LatestKey(corpus)
	if key == "" {
		return nil, nil
	}
	body, err := a.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get %s: %w", key, err)
	}
	var ev adapter.TraversalCompletedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("redis: decode %s: %w", key, err)
	}
	return &ev, nil
}

// Close releases adapter resources.
func (a *Adapter) Close() error {
	return a.client.Close()
}

// Verify Adapter implements the adapter interface.
var _ adapter.Adapter = (*Adapter)(nil)
