package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jaimelunalarcon/manglar-app/models"
)

var cacheCtx = context.Background()

// WeekCache 按周ID缓存原始领取记录，降低看板轮询的数据库压力。
// 缓存只存落库字段，期限派生字段始终在读取时计算，不会缓存过期的展示状态。
// client 为 nil 时所有操作都是空操作。
type WeekCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewWeekCache(client *redis.Client) *WeekCache {
	return &WeekCache{
		client: client,
		ttl:    30 * time.Second,
	}
}

func (c *WeekCache) key(weekID string) string {
	return "manglar:week:" + weekID
}

// Get 读取一周的缓存，未命中或反序列化失败按未命中处理
func (c *WeekCache) Get(weekID string) ([]models.Assignment, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(cacheCtx, c.key(weekID)).Bytes()
	if err != nil {
		return nil, false
	}

	var rows []models.Assignment
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, false
	}
	return rows, true
}

// Set 写入一周的缓存，缓存尽力而为，失败不影响主流程
func (c *WeekCache) Set(weekID string, rows []models.Assignment) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return
	}
	c.client.Set(cacheCtx, c.key(weekID), raw, c.ttl)
}

// Invalidate 任一变更后使对应周的缓存失效
func (c *WeekCache) Invalidate(weekID string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(cacheCtx, c.key(weekID))
}
