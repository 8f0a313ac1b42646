package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LeaderboardCache mirrors a room's cumulative points in a Redis ZSET
type LeaderboardCache interface {
	UpdateScore(ctx context.Context, roomID, playerID string, points int) error
	GetTop(ctx context.Context, roomID string, limit int) ([]LeaderboardEntry, error)
	GetRank(ctx context.Context, roomID, playerID string) (int64, error)
	Remove(ctx context.Context, roomID, playerID string) error
	Clear(ctx context.Context, roomID string) error
}

// LeaderboardEntry represents a single leaderboard entry
type LeaderboardEntry struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name,omitempty"`
	Points   int    `json:"points"`
	Rank     int    `json:"rank"`
}

type leaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLeaderboardCache creates a new leaderboard cache
func NewLeaderboardCache(client *redis.Client, ttl time.Duration) LeaderboardCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &leaderboardCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *leaderboardCache) key(roomID string) string {
	return fmt.Sprintf("room:%s:lb", roomID)
}

func (c *leaderboardCache) UpdateScore(ctx context.Context, roomID, playerID string, points int) error {
	key := c.key(roomID)
	pipe := c.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(points),
		Member: playerID,
	})
	pipe.Expire(ctx, key, c.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// GetTop returns up to limit entries, best first. A limit below 1 returns everyone.
func (c *leaderboardCache) GetTop(ctx context.Context, roomID string, limit int) ([]LeaderboardEntry, error) {
	stop := int64(limit - 1)
	if limit < 1 {
		stop = -1
	}
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(roomID), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(results))
	for i, z := range results {
		entries[i] = LeaderboardEntry{
			PlayerID: z.Member.(string),
			Points:   int(z.Score),
			Rank:     i + 1,
		}
	}
	return entries, nil
}

func (c *leaderboardCache) GetRank(ctx context.Context, roomID, playerID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, c.key(roomID), playerID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err // 1-indexed
}

func (c *leaderboardCache) Remove(ctx context.Context, roomID, playerID string) error {
	return c.client.ZRem(ctx, c.key(roomID), playerID).Err()
}

func (c *leaderboardCache) Clear(ctx context.Context, roomID string) error {
	return c.client.Del(ctx, c.key(roomID)).Err()
}
