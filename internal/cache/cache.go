package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"wisefido-breath/internal/models"
)

// Cache 实时呼吸数据缓存 + 已确认事件的 Streams 发布
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	stream string
	logger *zap.Logger
}

// NewCache 创建缓存管理器
func NewCache(client *redis.Client, prefix string, ttl time.Duration, stream string, logger *zap.Logger) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		stream: stream,
		logger: logger,
	}
}

// realtimeKey 实时数据缓存键：{prefix}{device_id}:realtime
func (c *Cache) realtimeKey(deviceID string) string {
	return fmt.Sprintf("%s%s:realtime", c.prefix, deviceID)
}

// SetRealtimeVitals 写入实时数据（带 TTL）
func (c *Cache) SetRealtimeVitals(ctx context.Context, vitals *models.RealtimeVitals) error {
	jsonData, err := json.Marshal(vitals)
	if err != nil {
		return fmt.Errorf("failed to marshal realtime vitals: %w", err)
	}

	if err := c.client.Set(ctx, c.realtimeKey(vitals.DeviceID), jsonData, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set realtime cache: %w", err)
	}

	return nil
}

// GetRealtimeVitals 读取实时数据
func (c *Cache) GetRealtimeVitals(ctx context.Context, deviceID string) (*models.RealtimeVitals, error) {
	val, err := c.client.Get(ctx, c.realtimeKey(deviceID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("realtime vitals not found for device: %s", deviceID)
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var vitals models.RealtimeVitals
	if err := json.Unmarshal([]byte(val), &vitals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal realtime vitals: %w", err)
	}

	return &vitals, nil
}

// PublishEvent 将已确认事件 XADD 到输出流，返回消息ID
func (c *Cache) PublishEvent(ctx context.Context, event *models.BreathEvent) (string, error) {
	id, err := c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.stream,
		Values: map[string]interface{}{
			"event_id":      event.EventID,
			"session_id":    event.SessionID,
			"device_id":     event.DeviceID,
			"event_type":    event.EventType,
			"confirmed_at":  strconv.FormatInt(event.ConfirmedAt.UnixMilli(), 10),
			"duration_secs": strconv.FormatFloat(event.DurationSecs, 'f', -1, 64),
			"breath_rate":   strconv.FormatFloat(event.BreathRate, 'f', -1, 64),
			"ahi":           strconv.FormatFloat(event.AHI, 'f', -1, 64),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to publish event to stream: %w", err)
	}

	c.logger.Debug("Published breath event to stream",
		zap.String("stream", c.stream),
		zap.String("event_type", event.EventType),
		zap.String("message_id", id),
	)

	return id, nil
}
