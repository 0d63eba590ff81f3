package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/klokku/schedulekeeper/pkg/schedule"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// RedisBackend keeps one key per group. Every call on an instance, whatever the group,
// is serialized through a single lock around the client.
type RedisBackend struct {
	mu     sync.Mutex
	client *redis.Client
}

// NewRedisBackend connects using a redis:// URL such as "redis://localhost:6379/0".
func NewRedisBackend(url string) (*RedisBackend, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewRedisBackendWithClient(redis.NewClient(opts)), nil
}

func NewRedisBackendWithClient(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func redisKey(groupId string) string {
	return "schedule:" + groupId
}

func (b *RedisBackend) Load(ctx context.Context, groupId string) (schedule.Schedule, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := b.client.Get(ctx, redisKey(groupId)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return decode(data)
}

func (b *RedisBackend) Get(ctx context.Context, groupId string) (schedule.Schedule, bool) {
	return get(ctx, b, groupId)
}

func (b *RedisBackend) Set(ctx context.Context, groupId string, s schedule.Schedule) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.client.Set(ctx, redisKey(groupId), data, 0).Err(); err != nil {
		err := fmt.Errorf("failed to set schedule: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (b *RedisBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.client.Close()
}
