package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/inference-gateway/adk/types"
)

// RedisTaskStore is a TaskStore backend keyed on a Redis instance. Each task
// is a single string value under a task key; a per-context set indexes task
// IDs so ListByContext does not require a full key scan.
type RedisTaskStore struct {
	client *redis.Client
	logger *zap.Logger
}

const (
	redisTaskKeyPrefix    = "a2a:task:"
	redisContextKeyPrefix = "a2a:task:context:"
)

// NewRedisTaskStore creates a TaskStore backed by the given Redis client.
// The caller owns the client's lifecycle.
func NewRedisTaskStore(client *redis.Client, logger *zap.Logger) *RedisTaskStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisTaskStore{client: client, logger: logger}
}

var _ TaskStore = (*RedisTaskStore)(nil)

func (s *RedisTaskStore) Save(ctx context.Context, task *types.Task) error {
	if task == nil {
		return wrapInternal("cannot save a nil task", nil)
	}

	data, err := json.Marshal(task)
	if err != nil {
		return wrapInternal("failed to serialize task", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisTaskKeyPrefix+task.ID, data, 0)
	pipe.SAdd(ctx, redisContextKeyPrefix+task.ContextID, task.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return wrapInternal("failed to save task in redis", err)
	}

	s.logger.Debug("task saved", zap.String("task_id", task.ID))

	return nil
}

func (s *RedisTaskStore) Get(ctx context.Context, taskID string) (*types.Task, error) {
	data, err := s.client.Get(ctx, redisTaskKeyPrefix+taskID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, wrapInternal("failed to get task from redis", err)
	}

	var task types.Task
	if err := json.Unmarshal([]byte(data), &task); err != nil {
		return nil, wrapInternal(fmt.Sprintf("failed to deserialize task %s", taskID), err)
	}

	return &task, nil
}

func (s *RedisTaskStore) Delete(ctx context.Context, taskID string) error {
	task, err := s.Get(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return nil
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, redisTaskKeyPrefix+taskID)
	pipe.SRem(ctx, redisContextKeyPrefix+task.ContextID, taskID)

	if _, err := pipe.Exec(ctx); err != nil {
		return wrapInternal("failed to delete task from redis", err)
	}

	return nil
}

func (s *RedisTaskStore) List(ctx context.Context) ([]*types.Task, error) {
	keys, err := s.client.Keys(ctx, redisTaskKeyPrefix+"*").Result()
	if err != nil {
		return nil, wrapInternal("failed to list task keys", err)
	}

	var out []*types.Task
	for _, key := range keys {
		data, err := s.client.Get(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, wrapInternal("failed to read task during list", err)
		}

		var task types.Task
		if err := json.Unmarshal([]byte(data), &task); err != nil {
			s.logger.Error("skipping corrupt task payload", zap.String("key", key), zap.Error(err))
			continue
		}
		out = append(out, &task)
	}

	return out, nil
}

func (s *RedisTaskStore) ListByContext(ctx context.Context, contextID string) ([]*types.Task, error) {
	ids, err := s.client.SMembers(ctx, redisContextKeyPrefix+contextID).Result()
	if err != nil {
		return nil, wrapInternal("failed to list context task ids", err)
	}

	out := make([]*types.Task, 0, len(ids))
	for _, id := range ids {
		task, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if task != nil {
			out = append(out, task)
		}
	}

	return out, nil
}
