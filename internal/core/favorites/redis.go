package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const maxTxRetries = 5

// RedisStore keeps favorites in redis: a hash of id to JSON snapshot and a
// sorted set scored by an insertion counter.
type RedisStore struct {
	client   *redis.Client
	hashKey  string
	orderKey string
	seqKey   string
}

// NewRedisStore connects to cfg.RedisURL and verifies the connection.
func NewRedisStore(ctx context.Context, cfg config.FavoritesConfig) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.Timeout > 0 {
		opts.DialTimeout = cfg.Timeout
		opts.ReadTimeout = cfg.Timeout
		opts.WriteTimeout = cfg.Timeout
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	common.LogInfo("Favorites store initialized",
		zap.String("backend", "redis"),
		zap.String("addr", opts.Addr),
		zap.String("key", cfg.Key),
	)

	return &RedisStore{
		client:   client,
		hashKey:  cfg.Key + ":recipes",
		orderKey: cfg.Key + ":order",
		seqKey:   cfg.Key + ":seq",
	}, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (recipe.Recipe, bool, error) {
	data, err := s.client.HGet(ctx, s.hashKey, id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return recipe.Recipe{}, false, nil
		}
		return recipe.Recipe{}, false, unavailable(err)
	}

	var r recipe.Recipe
	if err := common.ParseJSONBytes(data, &r); err != nil {
		return recipe.Recipe{}, false, fmt.Errorf("failed to decode favorite %s: %w", id, err)
	}
	return r, true, nil
}

func (s *RedisStore) Contains(ctx context.Context, id string) (bool, error) {
	ok, err := s.client.HExists(ctx, s.hashKey, id).Result()
	if err != nil {
		return false, unavailable(err)
	}
	return ok, nil
}

func (s *RedisStore) Add(ctx context.Context, r recipe.Recipe) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode favorite %s: %w", r.ID, err)
	}

	return s.watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.HExists(ctx, s.hashKey, r.ID).Result()
		if err != nil || exists {
			return err
		}
		return s.insert(ctx, tx, r.ID, data)
	})
}

func (s *RedisStore) Remove(ctx context.Context, id string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, s.hashKey, id)
		pipe.ZRem(ctx, s.orderKey, id)
		return nil
	})
	if err != nil {
		return unavailable(err)
	}
	common.LogDebug("Favorite removed", zap.String("recipe_id", id))
	return nil
}

func (s *RedisStore) Toggle(ctx context.Context, r recipe.Recipe) (bool, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return false, fmt.Errorf("failed to encode favorite %s: %w", r.ID, err)
	}

	var added bool
	err = s.watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.HExists(ctx, s.hashKey, r.ID).Result()
		if err != nil {
			return err
		}
		if exists {
			added = false
			_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.HDel(ctx, s.hashKey, r.ID)
				pipe.ZRem(ctx, s.orderKey, r.ID)
				return nil
			})
			return err
		}
		added = true
		return s.insert(ctx, tx, r.ID, data)
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

func (s *RedisStore) List(ctx context.Context) ([]recipe.Recipe, error) {
	ids, err := s.client.ZRange(ctx, s.orderKey, 0, -1).Result()
	if err != nil {
		return nil, unavailable(err)
	}
	if len(ids) == 0 {
		return []recipe.Recipe{}, nil
	}

	values, err := s.client.HMGet(ctx, s.hashKey, ids...).Result()
	if err != nil {
		return nil, unavailable(err)
	}

	out := make([]recipe.Recipe, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// removed between the two reads
			continue
		}
		var r recipe.Recipe
		if err := common.ParseJSON(raw, &r); err != nil {
			return nil, fmt.Errorf("failed to decode favorite %s: %w", ids[i], err)
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) insert(ctx context.Context, tx *redis.Tx, id string, data []byte) error {
	seq, err := tx.Incr(ctx, s.seqKey).Result()
	if err != nil {
		return err
	}
	_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.hashKey, id, data)
		pipe.ZAdd(ctx, s.orderKey, &redis.Z{Score: float64(seq), Member: id})
		return nil
	})
	if err == nil {
		common.LogDebug("Favorite added", zap.String("recipe_id", id))
	}
	return err
}

// watch runs fn in an optimistic transaction over the favorites hash,
// retrying when another client changed it first.
func (s *RedisStore) watch(ctx context.Context, fn func(tx *redis.Tx) error) error {
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := s.client.Watch(ctx, fn, s.hashKey)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			common.LogDebug("Favorites transaction conflict, retrying", zap.Int("attempt", attempt+1))
			continue
		}
		return unavailable(err)
	}
	return unavailable(fmt.Errorf("transaction failed after %d attempts", maxTxRetries))
}

func unavailable(err error) error {
	return common.ErrFavoritesUnavailable.WithCause(err)
}
