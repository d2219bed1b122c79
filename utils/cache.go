// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"branchbook/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (weather lookups).
	CacheClient *redis.Client
	// ChatCacheClient is the dedicated client for chat history windows.
	ChatCacheClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "Cache")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitChatCache initializes the Redis client holding chat history windows.
func InitChatCache() {
	ChatCacheClient = newRedisClient(config.AppConfig.RedisChatDB, "Chat Cache")
}

// GetChatCacheClient returns the Redis client for chat history windows.
func GetChatCacheClient() *redis.Client {
	if ChatCacheClient == nil {
		InitChatCache()
	}
	return ChatCacheClient
}
