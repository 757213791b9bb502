// Package lock provides a Redis-backed named lock used to keep outbox
// processors in different replicas from draining the same batch.
package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "article-catalog:lock:"

// releaseScript deletes the key only while it still holds our owner id, so
// an expired lock re-acquired by another replica is never released by us.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// extendScript resets the TTL only while the key still holds our owner id.
var extendScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("pexpire", KEYS[1], ARGV[2])
	else
		return 0
	end
`)

// ErrNotHeld is returned by Extend when the lock expired or has another owner.
var ErrNotHeld = errors.New("lock not held")

// RedisLock implements outbox.Locker with SET NX and a TTL.
type RedisLock struct {
	client  redis.UniversalClient
	ownerID string
}

// NewRedisLock returns a lock bound to client with a fresh owner id.
func NewRedisLock(client redis.UniversalClient) *RedisLock {
	return &RedisLock{client: client, ownerID: newOwnerID()}
}

// NewClient parses a redis:// URL and returns a connected client.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("lock.NewClient: parse url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("lock.NewClient: ping: %w", err)
	}
	return client, nil
}

// Acquire takes the named lock for ttl.
// Returns false without error when another owner holds it.
func (l *RedisLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, keyPrefix+name, l.ownerID, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("lock.RedisLock.Acquire %s: %w", name, err)
	}
	return ok, nil
}

// Extend resets the TTL of a lock this instance holds.
// Returns ErrNotHeld when the lock expired or was taken by another owner.
func (l *RedisLock) Extend(ctx context.Context, name string, ttl time.Duration) error {
	n, err := extendScript.Run(ctx, l.client, []string{keyPrefix + name}, l.ownerID, ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("lock.RedisLock.Extend %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("lock.RedisLock.Extend %s: %w", name, ErrNotHeld)
	}
	return nil
}

// Release drops the named lock if this instance still owns it.
// Releasing a lock that expired or belongs to someone else is a no-op.
func (l *RedisLock) Release(ctx context.Context, name string) error {
	err := releaseScript.Run(ctx, l.client, []string{keyPrefix + name}, l.ownerID).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("lock.RedisLock.Release %s: %w", name, err)
	}
	return nil
}

// OwnerID identifies this lock holder (hostname:pid:random).
func (l *RedisLock) OwnerID() string {
	return l.ownerID
}

func newOwnerID() string {
	hostname, _ := os.Hostname()
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%s:%d:%s", hostname, os.Getpid(), hex.EncodeToString(b))
}
