package config

import (
	"os"

	"github.com/redis/go-redis/v9"
)

// RedisClient is nil when REDIS_ADDR is unset; callers must treat Redis
// as optional.
var RedisClient *redis.Client

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		RedisClient = nil
		return
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
}
