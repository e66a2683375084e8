package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const (
	sequenceKeyPrefix = "recon:seq:"
	lockKeyPrefix     = "recon:lock:"
	sequenceTTL       = 24 * time.Hour
)

// PeriodSequencer keeps a write generation per key in redis so replicas agree on which write
// is the newest. Commits are serialized with a redis lock.
type PeriodSequencer struct {
	client  *redis.Client
	locker  *redislock.Client
	lockTTL time.Duration
	retry   redislock.RetryStrategy
}

// NewPeriodSequencer creates a sequencer on client.
func NewPeriodSequencer(client *redis.Client) *PeriodSequencer {
	return &PeriodSequencer{
		client:  client,
		locker:  redislock.New(client),
		lockTTL: 30 * time.Second,
		retry:   redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 100),
	}
}

// Begin draws the next generation for key. Generations start at 1.
func (s *PeriodSequencer) Begin(ctx context.Context, key string) (int64, error) {
	seqKey := sequenceKeyPrefix + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, seqKey)
	pipe.Expire(ctx, seqKey, sequenceTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("platform/cache: next generation of %s: %w", key, err)
	}
	return incr.Val(), nil
}

// Commit runs fn under the lock of key if gen is still the newest generation.
func (s *PeriodSequencer) Commit(ctx context.Context, key string, gen int64, fn func(ctx context.Context) error) error {
	lock, err := s.locker.Obtain(ctx, lockKeyPrefix+key, s.lockTTL, &redislock.Options{RetryStrategy: s.retry})
	if errors.Is(err, redislock.ErrNotObtained) {
		return fmt.Errorf("platform/cache: lock of %s is busy: %w", key, err)
	} else if err != nil {
		return fmt.Errorf("platform/cache: obtain lock of %s: %w", key, err)
	}
	defer func() {
		_ = lock.Release(context.WithoutCancel(ctx))
	}()

	current, err := s.client.Get(ctx, sequenceKeyPrefix+key).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("platform/cache: read generation of %s: %w", key, err)
	}
	if current != gen {
		return fmt.Errorf("generation %d of %s replaced by %d: %w", gen, key, current, apperrors.ErrSuperseded)
	}
	return fn(ctx)
}
