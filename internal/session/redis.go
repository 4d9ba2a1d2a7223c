package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of the go-redis client used for session storage.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

type record struct {
	UserID string `json:"user_id"`
	Plan   Plan   `json:"plan"`
}

// Redis resolves tokens stored as JSON under prefix+token.
type Redis struct {
	client RedisClient
	prefix string
}

// NewRedis creates a Redis-backed lookup.
func NewRedis(client RedisClient, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// Dial connects to url and verifies the connection.
func Dial(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (r *Redis) key(token string) string {
	return r.prefix + token
}

// Lookup reads and decodes the session for token.
func (r *Redis) Lookup(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	data, err := r.client.Get(ctx, r.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	id, err := uuid.Parse(rec.UserID)
	if err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	plan := rec.Plan
	if plan == "" {
		plan = PlanFree
	}

	return &Session{UserID: id, Plan: plan, Token: token}, nil
}

// Put stores s under its token for ttl. A zero ttl keeps the key until removed.
// It exists for seeding development sessions.
func (r *Redis) Put(ctx context.Context, s Session, ttl time.Duration) error {
	data, err := json.Marshal(record{UserID: s.UserID.String(), Plan: s.Plan})
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(s.Token), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}
