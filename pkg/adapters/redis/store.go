// Package redis implements a shared core.Store on Redis. Changes are
// announced over pub/sub so several processes can follow one note list.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/introspection"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/aretw0/twodo/pkg/core"
)

// DefaultPrefix namespaces every key the store writes.
const DefaultPrefix = "twodo:"

// Config holds the configuration for the Redis store.
type Config struct {
	// URL is a redis:// connection string. Ignored when Client is set.
	URL    string
	Client *goredis.Client
	Prefix string
	Logger *slog.Logger
	// ReadOnly makes Set and Remove fail with core.ErrReadOnly.
	ReadOnly bool
}

// Store implements core.Store and core.Watchable.
type Store struct {
	client   *goredis.Client
	prefix   string
	origin   string
	logger   *slog.Logger
	readOnly bool
}

// message is the pub/sub payload announcing a change.
type message struct {
	Type      core.EventType `json:"type"`
	Key       string         `json:"key"`
	Timestamp int64          `json:"timestamp"`
	Origin    string         `json:"origin"`
}

// NewStore creates a Redis-backed store. The connection is checked by Initialize.
func NewStore(cfg Config) (*Store, error) {
	client := cfg.Client
	if client == nil {
		opt, err := goredis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		client = goredis.NewClient(opt)
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Store{
		client:   client,
		prefix:   cfg.Prefix,
		origin:   uuid.NewString(),
		logger:   cfg.Logger,
		readOnly: cfg.ReadOnly,
	}, nil
}

// Origin identifies writes made through this store in change events.
func (s *Store) Origin() string {
	return s.origin
}

// Initialize pings the server.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, core.ErrInvalidKey
	}
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return data, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return core.ErrInvalidKey
	}
	if s.readOnly {
		return core.ErrReadOnly
	}
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	s.publish(ctx, core.EventSet, key)
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if key == "" {
		return core.ErrInvalidKey
	}
	if s.readOnly {
		return core.ErrReadOnly
	}
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	s.publish(ctx, core.EventRemove, key)
	return nil
}

// Keys scans the prefix and filters with a glob pattern.
func (s *Store) Keys(ctx context.Context, pattern string) ([]string, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid key pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := strings.TrimPrefix(iter.Val(), s.prefix)
		if pattern != "" {
			if match, _ := doublestar.Match(pattern, key); !match {
				continue
			}
		}
		keys = append(keys, key)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}
	slices.Sort(keys)
	return keys, nil
}

func (s *Store) channel() string {
	return s.prefix + "events"
}

// publish announces a change. A failed publish only loses the notification.
func (s *Store) publish(ctx context.Context, t core.EventType, key string) {
	payload, _ := json.Marshal(message{Type: t, Key: key, Timestamp: time.Now().Unix(), Origin: s.origin})
	if err := s.client.Publish(ctx, s.channel(), payload).Err(); err != nil {
		s.logger.Warn("failed to publish change", "key", key, "error", err)
	}
}

// Watch subscribes to change announcements for keys matching pattern.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid key pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	pubsub := s.client.Subscribe(ctx, s.channel())
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	events := make(chan core.Event)
	go func() {
		defer close(events)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var m message
				if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
					s.logger.Debug("ignoring malformed change message", "error", err)
					continue
				}
				if pattern != "" {
					if match, _ := doublestar.Match(pattern, m.Key); !match {
						continue
					}
				}
				select {
				case events <- core.Event{Type: m.Type, Key: m.Key, Timestamp: m.Timestamp, Origin: m.Origin}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return events, nil
}

// StoreState exposes internal state for observability.
type StoreState struct {
	Addr     string `json:"addr"`
	Prefix   string `json:"prefix"`
	Origin   string `json:"origin"`
	ReadOnly bool   `json:"read_only"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	return StoreState{
		Addr:     s.client.Options().Addr,
		Prefix:   s.prefix,
		Origin:   s.origin,
		ReadOnly: s.readOnly,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "redis"
}

var _ core.Store = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
