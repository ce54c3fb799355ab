package redis

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// Lock serializes order transitions: while an admin's complete/cancel
// request is in flight, a second submission for the same order is
// rejected instead of racing it.
type Lock struct {
	Client *redis.Client
	Logger *log.Logger
}

func NewLock(client *redis.Client) *Lock {
	return &Lock{
		Client: client,
		Logger: log.Default(),
	}
}

// getActionLockDuration returns the lock TTL from the environment or the
// default. The TTL is a backstop; the lock is released explicitly when
// the transition finishes.
func (l *Lock) getActionLockDuration() time.Duration {
	defaultDuration := 30 * time.Second

	lockTTLStr := os.Getenv("ORDER_ACTION_TTL_SECONDS")
	if lockTTLStr == "" {
		return defaultDuration
	}

	lockTTLSec, err := strconv.Atoi(lockTTLStr)
	if err != nil {
		l.Logger.Println("REDIS: Invalid ORDER_ACTION_TTL_SECONDS value '" + lockTTLStr + "', using default 30 seconds")
		return defaultDuration
	}
	return time.Duration(lockTTLSec) * time.Second
}

func lockKey(orderID string) string {
	return "order_action:" + orderID
}

// Acquire takes the action lock for an order. Returns false when another
// transition already holds it.
func (l *Lock) Acquire(ctx context.Context, orderID string) (bool, error) {
	return l.Client.SetNX(ctx, lockKey(orderID), "1", l.getActionLockDuration()).Result()
}

// Release drops the action lock. Releasing an already-expired lock is
// not an error.
func (l *Lock) Release(ctx context.Context, orderID string) error {
	_, err := l.Client.Del(ctx, lockKey(orderID)).Result()
	return err
}
