package subscriptions

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps subscription relations in Redis sets so multiple
// instances share one view. Keys:
//
//	subs:publisher:<id>  -> set of reader emails
//	subs:journalist:<id> -> set of reader emails
type RedisStore struct {
	client *redis.Client
}

// RedisConfig configures the Redis connection.
type RedisConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
}

// NewRedisStore creates a Redis-backed subscription store and verifies the
// connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Client exposes the underlying connection so other components (the
// idempotency ledger) can share it.
func (r *RedisStore) Client() *redis.Client {
	return r.client
}

// Close releases the underlying connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func publisherKey(id string) string  { return "subs:publisher:" + id }
func journalistKey(id string) string { return "subs:journalist:" + id }

func (r *RedisStore) SubscribePublisher(ctx context.Context, publisherID, email string) error {
	return r.client.SAdd(ctx, publisherKey(publisherID), email).Err()
}

func (r *RedisStore) UnsubscribePublisher(ctx context.Context, publisherID, email string) error {
	return r.client.SRem(ctx, publisherKey(publisherID), email).Err()
}

func (r *RedisStore) SubscribeJournalist(ctx context.Context, journalistID, email string) error {
	return r.client.SAdd(ctx, journalistKey(journalistID), email).Err()
}

func (r *RedisStore) UnsubscribeJournalist(ctx context.Context, journalistID, email string) error {
	return r.client.SRem(ctx, journalistKey(journalistID), email).Err()
}

func (r *RedisStore) PublisherSubscribers(ctx context.Context, publisherID string) ([]string, error) {
	return r.client.SMembers(ctx, publisherKey(publisherID)).Result()
}

func (r *RedisStore) JournalistSubscribers(ctx context.Context, journalistID string) ([]string, error) {
	return r.client.SMembers(ctx, journalistKey(journalistID)).Result()
}
