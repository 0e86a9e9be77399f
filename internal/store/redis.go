package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/voyagen/m3ugroups/internal/cache"
	"github.com/voyagen/m3ugroups/internal/models"
)

const (
	lockTTL         = 10 * time.Second
	defaultLockWait = 2 * time.Second
)

// Redis stores snapshots as JSON values with a TTL. Updates of one session are
// serialized with a SET NX lock so a concurrent reader sees either the old or
// the new snapshot.
type Redis struct {
	cache    *cache.Redis
	ttl      time.Duration
	lockWait time.Duration
}

// NewRedis creates a Redis-backed Store.
func NewRedis(c *cache.Redis, ttl time.Duration) *Redis {
	return &Redis{cache: c, ttl: ttl, lockWait: defaultLockWait}
}

func sessionKey(id string) string { return cache.Key("session", id) }
func lockKey(id string) string    { return cache.Key("lock", "session", id) }

func (r *Redis) Create(ctx context.Context, sessionID string, snap *models.Snapshot) error {
	if err := cache.Set(ctx, r.cache, sessionKey(sessionID), snap, r.ttl); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, sessionID string) (*models.Snapshot, error) {
	snap, err := cache.Get[models.Snapshot](ctx, r.cache, sessionKey(sessionID))
	if err != nil {
		if cache.IsMiss(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &snap, nil
}

func (r *Redis) Update(ctx context.Context, sessionID string, fn func(*models.Snapshot) error) (*models.Snapshot, error) {
	unlock, err := cache.LockWithRetry(ctx, r.cache, lockKey(sessionID), lockTTL, r.lockWait)
	if err != nil {
		if errors.Is(err, cache.ErrLocked) {
			return nil, ErrBusy
		}
		return nil, fmt.Errorf("Update: %w", err)
	}
	defer unlock()

	snap, err := r.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(snap); err != nil {
		return nil, err
	}
	if err := cache.Set(ctx, r.cache, sessionKey(sessionID), snap, r.ttl); err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	return snap, nil
}

func (r *Redis) Delete(ctx context.Context, sessionID string) error {
	n, err := cache.Del(ctx, r.cache, sessionKey(sessionID))
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
