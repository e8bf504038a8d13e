// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"games_backend/internal/feature/games/domain/entity"
	"games_backend/internal/feature/games/usecase"
	"games_backend/internal/platform/storage"
)

// CachingGameRepository decorates a GameRepository with Redis caching of
// reads. Every write invalidates the whole namespace; reads fall through to
// the inner repository on a miss or whenever Redis is not configured.
type CachingGameRepository struct {
	inner     usecase.GameRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.GameRepository = (*CachingGameRepository)(nil)

// NewCachingGameRepository decorates a GameRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses
// "games".
func NewCachingGameRepository(rdb *redis.Client, ttl time.Duration, inner usecase.GameRepository, namespace string) *CachingGameRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "games"
	}
	return &CachingGameRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindByID retrieves a game, checking the cache first.
func (c *CachingGameRepository) FindByID(ctx context.Context, id string) (*entity.Game, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.namespace + ":id:" + id
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var game entity.Game
		if err := json.Unmarshal(b, &game); err == nil {
			return &game, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	game, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(game); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return game, nil
}

// Find retrieves games matching the filter, checking the cache first.
func (c *CachingGameRepository) Find(ctx context.Context, filter storage.Filter) ([]*entity.Game, error) {
	if c.rdb == nil {
		return c.inner.Find(ctx, filter)
	}

	key := c.findKey(filter)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var games []*entity.Game
		if err := json.Unmarshal(b, &games); err == nil {
			return games, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	games, err := c.inner.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(games); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return games, nil
}

// Create stores a game and invalidates the cache namespace.
func (c *CachingGameRepository) Create(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	created, err := c.inner.Create(ctx, game)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return created, nil
}

// Update merges fields onto a game and invalidates the cache namespace.
func (c *CachingGameRepository) Update(ctx context.Context, id string, fields storage.Fields) (*entity.Game, error) {
	updated, err := c.inner.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return updated, nil
}

// Delete removes a game and invalidates the cache namespace.
func (c *CachingGameRepository) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := c.inner.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	c.invalidate(ctx)
	return deleted, nil
}

// findKey builds a deterministic cache key for a filter; json.Marshal sorts
// map keys.
func (c *CachingGameRepository) findKey(filter storage.Filter) string {
	b, err := json.Marshal(filter)
	if err != nil {
		return c.namespace + ":find:all"
	}
	return c.namespace + ":find:" + string(b)
}

func (c *CachingGameRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	// Best effort: a failed invalidation only shortens cache accuracy, the
	// entries still expire by TTL.
	_ = c.deleteByPattern(ctx, c.namespace+":*")
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingGameRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
