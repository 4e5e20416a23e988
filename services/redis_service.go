package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisService struct {
	client *redis.Client
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func NewRedisService(config *RedisConfig) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &RedisService{
		client: client,
	}, nil
}

const seenTransactionTTL = 24 * time.Hour

func seenTransactionKey(transactionID string) string {
	return fmt.Sprintf("seen_txn:%s", transactionID)
}

// MarkTransactionSeen records a transaction id in the fast-path duplicate
// cache. The database's unique index remains the source of truth; this only
// spares a round trip for retried webhook deliveries.
func (r *RedisService) MarkTransactionSeen(ctx context.Context, transactionID string) error {
	return r.client.Set(ctx, seenTransactionKey(transactionID), 1, seenTransactionTTL).Err()
}

// TransactionSeen reports whether the id was recently recorded. A cache miss
// or a redis error both read as "not seen" so the caller falls through to the
// durable check.
func (r *RedisService) TransactionSeen(ctx context.Context, transactionID string) bool {
	n, err := r.client.Exists(ctx, seenTransactionKey(transactionID)).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// Close closes the Redis connection
func (r *RedisService) Close() error {
	return r.client.Close()
}
