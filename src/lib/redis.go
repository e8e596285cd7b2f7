package lib

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// GetRedisClient returns the shared client for host, which is either a
// redis:// URL or a bare host:port.
func GetRedisClient(host string) *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	opt := &redis.Options{Addr: host}
	if strings.HasPrefix(host, "redis://") || strings.HasPrefix(host, "rediss://") {
		parsed, err := redis.ParseURL(host)
		if err != nil {
			log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
			return nil
		}
		opt = parsed
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

func PingRedis(ctx context.Context, rdb *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[redis] Error reaching server: %s\n", err.Error())
		return err
	}
	return nil
}
