package trending

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore — реализация Store поверх Redis: ZSET на бакет, счёт статьи —
// score элемента. Скользящий TTL достигается EXPIRE при каждой записи и
// каждом успешном чтении. ZINCRBY атомарен на стороне Redis, поэтому
// конкурентные инкременты не теряются.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore создаёт клиент Redis из URL (например, redis://host:6379/0).
// Если prefix пустой — используется "trending:".
func NewRedisStore(redisURL, prefix string, ttl time.Duration) (*RedisStore, error) {
	const op = "trending.NewRedisStore"

	if prefix == "" {
		prefix = "trending:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}, nil
}

func (s *RedisStore) key(bucket string) string { return s.prefix + bucket }

// Increment — см. Store. ZINCRBY и EXPIRE идут одним TxPipeline.
func (s *RedisStore) Increment(ctx context.Context, bucket string, articleID uuid.UUID, delta float64) error {
	const op = "trending.redis.Increment"

	pipe := s.rdb.TxPipeline()
	pipe.ZIncrBy(ctx, s.key(bucket), delta, articleID.String())
	pipe.Expire(ctx, s.key(bucket), s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// TopK — см. Store. Непарсящиеся элементы ZSET пропускаются.
func (s *RedisStore) TopK(ctx context.Context, bucket string, k int) ([]uuid.UUID, error) {
	const op = "trending.redis.TopK"

	if k <= 0 {
		return nil, nil
	}

	ids, err := s.rdb.ZRevRange(ctx, s.key(bucket), 0, int64(k-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(ids) == 0 {
		return nil, nil
	}

	// Чтение тоже продлевает жизнь бакета.
	if err := s.rdb.Expire(ctx, s.key(bucket), s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("%s: refresh ttl: %w", op, err)
	}

	out := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			continue
		}
		out = append(out, id)
	}

	return out, nil
}

// Clear — см. Store.
func (s *RedisStore) Clear(ctx context.Context, bucket string) error {
	const op = "trending.redis.Clear"

	if err := s.rdb.Del(ctx, s.key(bucket)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Size — см. Store.
func (s *RedisStore) Size(ctx context.Context, bucket string) (int, error) {
	const op = "trending.redis.Size"

	n, err := s.rdb.ZCard(ctx, s.key(bucket)).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return int(n), nil
}

// Close закрывает клиент Redis.
func (s *RedisStore) Close() error { return s.rdb.Close() }

var _ Store = (*RedisStore)(nil)
