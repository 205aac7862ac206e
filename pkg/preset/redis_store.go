package preset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/run-bigpig/genconfig/pkg/genconfig"
	"github.com/run-bigpig/genconfig/pkg/interfaces"
)

// RedisStore is a Redis-backed PresetStore, for sharing base configurations
// between the processes serving one deployment.
type RedisStore struct {
	client     *redis.Client
	keyPrefix  string
	ttl        time.Duration
	retryDelay time.Duration
	maxRetries int
}

// RedisOption represents an option for configuring the Redis store
type RedisOption func(*RedisStore)

// WithKeyPrefix sets a custom prefix for Redis keys
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *RedisStore) {
		r.keyPrefix = prefix
	}
}

// WithTTL sets the TTL for stored presets. Zero keeps them forever.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *RedisStore) {
		r.ttl = ttl
	}
}

// WithRetry configures the retry behavior for Redis round-trips
func WithRetry(maxRetries int, retryDelay time.Duration) RedisOption {
	return func(r *RedisStore) {
		r.maxRetries = maxRetries
		r.retryDelay = retryDelay
	}
}

// NewRedisStore creates a Redis-backed preset store
func NewRedisStore(client *redis.Client, options ...RedisOption) *RedisStore {
	store := &RedisStore{
		client:     client,
		keyPrefix:  "genconfig:preset:", // Default prefix
		retryDelay: 100 * time.Millisecond,
		maxRetries: 3,
	}

	for _, option := range options {
		option(store)
	}

	return store
}

// presetRecord is the JSON envelope stored per preset.
type presetRecord struct {
	Revision string                      `json:"revision"`
	Config   *genconfig.GenerationConfig `json:"config"`
}

// Save stores the configuration under the given name and returns the new
// revision id.
func (r *RedisStore) Save(ctx context.Context, name string, cfg *genconfig.GenerationConfig) (string, error) {
	record := presetRecord{
		Revision: uuid.New().String(),
		Config:   cfg,
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal preset %q: %w", name, err)
	}

	err = r.withRetry(ctx, func() error {
		return r.client.Set(ctx, r.key(name), payload, r.ttl).Err()
	})
	if err != nil {
		return "", fmt.Errorf("failed to save preset %q: %w", name, err)
	}

	return record.Revision, nil
}

// Get returns the configuration stored under the given name.
func (r *RedisStore) Get(ctx context.Context, name string) (*genconfig.GenerationConfig, error) {
	var payload []byte
	err := r.withRetry(ctx, func() error {
		var getErr error
		payload, getErr = r.client.Get(ctx, r.key(name)).Bytes()
		if errors.Is(getErr, redis.Nil) {
			// A missing key is a definitive answer, not a transient failure.
			return backoff.Permanent(interfaces.ErrPresetNotFound)
		}
		return getErr
	})
	if err != nil {
		if errors.Is(err, interfaces.ErrPresetNotFound) {
			return nil, interfaces.ErrPresetNotFound
		}
		return nil, fmt.Errorf("failed to get preset %q: %w", name, err)
	}

	var record presetRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preset %q: %w", name, err)
	}
	if record.Config == nil {
		return nil, fmt.Errorf("preset %q has no config payload", name)
	}

	return record.Config, nil
}

// Delete removes the named preset.
func (r *RedisStore) Delete(ctx context.Context, name string) error {
	err := r.withRetry(ctx, func() error {
		return r.client.Del(ctx, r.key(name)).Err()
	})
	if err != nil {
		return fmt.Errorf("failed to delete preset %q: %w", name, err)
	}
	return nil
}

// List returns the names of all stored presets.
func (r *RedisStore) List(ctx context.Context) ([]string, error) {
	var keys []string
	err := r.withRetry(ctx, func() error {
		var listErr error
		keys, listErr = r.client.Keys(ctx, r.keyPrefix+"*").Result()
		return listErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}

	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, strings.TrimPrefix(key, r.keyPrefix))
	}
	return names, nil
}

func (r *RedisStore) key(name string) string {
	return r.keyPrefix + name
}

// withRetry executes the function with exponential backoff retry logic
func (r *RedisStore) withRetry(ctx context.Context, fn func() error) error {
	exponentialBackoff := backoff.NewExponentialBackOff()
	exponentialBackoff.InitialInterval = r.retryDelay
	exponentialBackoff.MaxElapsedTime = time.Duration(r.maxRetries) * r.retryDelay * 2

	return backoff.Retry(fn, backoff.WithContext(exponentialBackoff, ctx))
}
