package store

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/redis/go-redis/v9"

	"github.com/dragswitch/dragswitch/pkg/errors"
)

// RedisKeyPrefix namespaces arrangement keys.
const RedisKeyPrefix = "dragswitch:arrangement:"

// RedisStore keeps each arrangement as a JSON string under one key.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects lazily to the server named by a redis:// URL.
func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "parse redis url")
	}
	return NewRedisStoreFromClient(redis.NewClient(opts)), nil
}

// NewRedisStoreFromClient wraps an existing client. The store owns it.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(board string) string { return RedisKeyPrefix + board }

func (s *RedisStore) Get(ctx context.Context, board string) (*Arrangement, error) {
	if err := errors.ValidateID(board); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, redisKey(board)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(err, "redis get %s", board)
	}
	var arr Arrangement
	if err := json.Unmarshal(data, &arr); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "parse arrangement %s", board)
	}
	return &arr, nil
}

func (s *RedisStore) Set(ctx context.Context, arr *Arrangement) error {
	if err := validate(arr); err != nil {
		return err
	}
	data, err := json.Marshal(arr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal arrangement")
	}
	if err := s.client.Set(ctx, redisKey(arr.Board), data, 0).Err(); err != nil {
		return wrapErr(err, "redis set %s", arr.Board)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, board string) error {
	if err := errors.ValidateID(board); err != nil {
		return err
	}
	if err := s.client.Del(ctx, redisKey(board)).Err(); err != nil {
		return wrapErr(err, "redis del %s", board)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
