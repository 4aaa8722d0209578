package middleware

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Atomic INCR-with-expiry: the first hit in a window starts the clock, every
// hit reports the remaining TTL so rejections can carry Retry-After.
const fixedWindowLua = `
local hits = redis.call("INCR", KEYS[1])
if hits == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {hits, redis.call("PTTL", KEYS[1])}
`

var fixedWindowScript = redis.NewScript(fixedWindowLua)

// RedisFixedWindowLimiter shares one fixed window per key across all API
// instances.
type RedisFixedWindowLimiter struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisFixedWindowLimiter(client redis.UniversalClient, prefix string) *RedisFixedWindowLimiter {
	if prefix == "" {
		prefix = "rl"
	}
	return &RedisFixedWindowLimiter{client: client, prefix: prefix}
}

func (l *RedisFixedWindowLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	if l.client == nil {
		return false, window, errors.New("redis client is nil")
	}
	if key == "" {
		key = "unknown"
	}
	windowMS := window.Milliseconds()
	if windowMS <= 0 {
		windowMS = 1000
	}

	raw, err := fixedWindowScript.Run(ctx, l.client, []string{l.prefix + ":" + key}, windowMS).Result()
	if err != nil {
		return false, window, err
	}
	hits, ttlMS, err := decodeFixedWindowReply(raw)
	if err != nil {
		return false, window, err
	}
	if ttlMS <= 0 {
		ttlMS = windowMS
	}
	return hits <= int64(limit), time.Duration(ttlMS) * time.Millisecond, nil
}

func decodeFixedWindowReply(raw any) (hits, ttlMS int64, err error) {
	pair, ok := raw.([]interface{})
	if !ok || len(pair) != 2 {
		return 0, 0, fmt.Errorf("unexpected redis script reply %T", raw)
	}
	if hits, err = redisInt64(pair[0]); err != nil {
		return 0, 0, err
	}
	if ttlMS, err = redisInt64(pair[1]); err != nil {
		return 0, 0, err
	}
	return hits, ttlMS, nil
}

func redisInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis value type %T", v)
	}
}
