// File: services/intelligence/contextStore.go
package ai

import (
	"context"
	"encoding/json"
	"time"

	"branchbook/models"
	"branchbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisHistoryStore keeps a bounded window of recent turns per session.
type RedisHistoryStore struct {
	client *redis.Client
	ttl    time.Duration
	maxLen int64
}

func NewRedisHistoryStore(client *redis.Client, ttl time.Duration, maxLen int) *RedisHistoryStore {
	if maxLen <= 0 {
		maxLen = defaultHistoryTurns
	}
	return &RedisHistoryStore{client: client, ttl: ttl, maxLen: int64(maxLen)}
}

func historyKey(sessionID string) string {
	return utils.ChatHistoryPrefix + sessionID
}

func (s *RedisHistoryStore) Recent(ctx context.Context, sessionID string, limit int) ([]models.Turn, error) {
	if limit <= 0 {
		return nil, nil
	}
	items, err := s.client.LRange(ctx, historyKey(sessionID), int64(-limit), -1).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	turns := make([]models.Turn, 0, len(items))
	for _, item := range items {
		var t models.Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			utils.GetLogger().Warn("skipping malformed history entry", zap.String("sessionID", sessionID), zap.Error(err))
			continue
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (s *RedisHistoryStore) Push(ctx context.Context, sessionID string, turns ...models.Turn) error {
	if len(turns) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(turns))
	for _, t := range turns {
		b, err := json.Marshal(t)
		if err != nil {
			return err
		}
		values = append(values, b)
	}
	key := historyKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.LTrim(ctx, key, -s.maxLen, -1)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}
