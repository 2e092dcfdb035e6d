package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const stockKeyPrefix = "stock:"

// Returns the remaining stock, or -1 when the key does not exist.
var decrementStockScript = redis.NewScript(`
local key = KEYS[1]
local quantity = tonumber(ARGV[1])

local current = redis.call('GET', key)
if not current then
	return -1
end

local remaining = tonumber(current) - quantity
if remaining < 0 then
	remaining = 0
end

redis.call('SET', key, remaining)
return remaining
`)

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) SetStock(ctx context.Context, code string, quantity int) error {
	key := stockKeyPrefix + code
	return r.client.Set(ctx, key, quantity, 0).Err()
}

func (r *RedisAdapter) GetStock(ctx context.Context, code string) (int, bool, error) {
	key := stockKeyPrefix + code

	qty, err := r.client.Get(ctx, key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	return qty, true, nil
}

func (r *RedisAdapter) DecrementStock(ctx context.Context, code string, quantity int) error {
	key := stockKeyPrefix + code
	return decrementStockScript.Run(ctx, r.client, []string{key}, quantity).Err()
}
