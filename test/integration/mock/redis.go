//go:build integration

package mock

import (
	"context"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var miniRedis *miniredis.Miniredis
var redisConn *redis.Client

// NewRedis returns a client on a shared in-process Redis.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		var err error
		miniRedis, err = miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisConn = redis.NewClient(&redis.Options{Addr: miniRedis.Addr()})
	})

	return redisConn
}

func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.TODO()).Err()
}

// FastForwardRedis expires keys as if d had passed.
func FastForwardRedis(d time.Duration) {
	if miniRedis != nil {
		miniRedis.FastForward(d)
	}
}
