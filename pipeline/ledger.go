package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"newswire/config"
)

// RedisLedger records dispatched transition keys with SETNX so that at most
// one consumer instance wins a redelivered event. Keys expire after
// LedgerTTL; redeliveries arriving later than that are treated as new,
// which matches the broker's own retention horizon.
type RedisLedger struct {
	client *redis.Client
}

// NewRedisLedger creates a ledger on an existing Redis client.
func NewRedisLedger(client *redis.Client) *RedisLedger {
	return &RedisLedger{client: client}
}

func (l *RedisLedger) FirstDelivery(ctx context.Context, key string) (bool, error) {
	return l.client.SetNX(ctx, "dispatched:"+key, 1, config.LedgerTTL).Result()
}

// MemoryLedger is the in-process ledger used when Redis is not configured.
// It only guards within one process lifetime. Entries expire after
// LedgerTTL, matching the Redis ledger, and are pruned on write so the map
// stays bounded in a long-lived process.
type MemoryLedger struct {
	mu   sync.Mutex
	seen map[string]time.Time
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{seen: make(map[string]time.Time)}
}

func (l *MemoryLedger) FirstDelivery(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for k, at := range l.seen {
		if now.Sub(at) > config.LedgerTTL {
			delete(l.seen, k)
		}
	}

	if _, ok := l.seen[key]; ok {
		return false, nil
	}
	l.seen[key] = now
	return true, nil
}
