package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	schemaKeyPrefix   = "propcheck:schema:"
	schemaIndexKey    = "propcheck:schemas"
	registerKeyPrefix = "propcheck:register:"
	registerIndexKey  = "propcheck:registers"
)

// RedisOptions configures the Redis-backed Store.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379").
	URL string

	// ConnectTimeout is the maximum time to wait for connection establishment.
	ConnectTimeout time.Duration
}

// RedisStore implements Store on go-redis/v9, holding entities as JSON
// values with set-based indexes for listing.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	redisOpts.DialTimeout = opts.ConnectTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) PutSchema(ctx context.Context, sc *Schema) error {
	data, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	key := schemaKeyPrefix + sc.ID.String()
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, schemaIndexKey, sc.ID.String())
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) GetSchema(ctx context.Context, id uuid.UUID) (*Schema, error) {
	data, err := s.client.Get(ctx, schemaKeyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var sc Schema
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}
	return &sc, nil
}

func (s *RedisStore) DeleteSchema(ctx context.Context, id uuid.UUID) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, schemaKeyPrefix+id.String())
	pipe.SRem(ctx, schemaIndexKey, id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) ListSchemas(ctx context.Context) ([]*Schema, error) {
	ids, err := s.client.SMembers(ctx, schemaIndexKey).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*Schema, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		sc, err := s.GetSchema(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}

func (s *RedisStore) PutRegister(ctx context.Context, r *Register) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal register: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, registerKeyPrefix+r.ID.String(), data, 0)
	pipe.SAdd(ctx, registerIndexKey, r.ID.String())
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) GetRegister(ctx context.Context, id uuid.UUID) (*Register, error) {
	data, err := s.client.Get(ctx, registerKeyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var r Register
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal register: %w", err)
	}
	return &r, nil
}

func (s *RedisStore) DeleteRegister(ctx context.Context, id uuid.UUID) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, registerKeyPrefix+id.String())
	pipe.SRem(ctx, registerIndexKey, id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) ListRegisters(ctx context.Context) ([]*Register, error) {
	ids, err := s.client.SMembers(ctx, registerIndexKey).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*Register, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		r, err := s.GetRegister(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }
