package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"
)

// InMemoryRedisClient is a minimal xredis.Client backed by process memory.
// Only the operations the leaderboard uses are supported.
type InMemoryRedisClient struct {
	mutex sync.Mutex
	zsets map[string]map[string]float64
}

func NewInMemoryRedisClient() *InMemoryRedisClient {
	return &InMemoryRedisClient{
		zsets: make(map[string]map[string]float64),
	}
}

func (c *InMemoryRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	_, ok := c.zsets[key]
	return ok, nil
}

func (c *InMemoryRedisClient) Del(ctx context.Context, keys ...string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, key := range keys {
		delete(c.zsets, key)
	}

	return nil
}

func (c *InMemoryRedisClient) ZAdd(ctx context.Context, key string, z redis.Z) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.zsets[key]; !ok {
		c.zsets[key] = make(map[string]float64)
	}

	c.zsets[key][z.Member.(string)] = z.Score
	return nil
}

func (c *InMemoryRedisClient) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var result []redis.Z
	for member, score := range c.zsets[key] {
		result = append(result, redis.Z{Member: member, Score: score})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}

		return result[i].Member.(string) > result[j].Member.(string)
	})

	if offset >= len(result) {
		return nil, nil
	}

	end := offset + limit
	if end > len(result) {
		end = len(result)
	}

	return result[offset:end], nil
}
