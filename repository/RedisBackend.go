package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps each blob under its own Redis key, the same way the
// previous revision kept serialized carts.
type RedisBackend struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisBackend(redis_conn *redis.Client, _ctx context.Context) (*RedisBackend, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redis_conn.Ping(_ctx).Err()
	if err != nil {
		return nil, err
	}
	return &RedisBackend{
		rdb: redis_conn,
		ctx: _ctx,
	}, nil
}

func (b *RedisBackend) Load(key string) (data []byte, found bool, err error) {
	val, e := b.rdb.Get(b.ctx, key).Bytes()
	if e != nil {
		if e == redis.Nil {
			return
		}
		err = e
		return
	}
	data = val
	found = true
	return
}

func (b *RedisBackend) Save(key string, data []byte) error {
	return b.rdb.Set(b.ctx, key, data, 0).Err()
}

func (b *RedisBackend) Delete(key string) error {
	return b.rdb.Del(b.ctx, key).Err()
}
