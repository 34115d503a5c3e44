package sensor

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"wisefido-breath/internal/mqtt"
)

// sampleMessage MQTT 采样消息格式
type sampleMessage struct {
	Value     float64 `json:"value"`
	Timestamp int64   `json:"ts"` // unix 毫秒
}

// MQTTSource 订阅 breath/{device_id}/data 的采样源
// 订阅回调只更新最新值，Read 在采样循环的 goroutine 里读取
type MQTTSource struct {
	client *mqtt.Client
	topic  string
	logger *zap.Logger

	mu     sync.Mutex
	latest float64
}

// NewMQTTSource 创建 MQTT 采样源
func NewMQTTSource(client *mqtt.Client, deviceID string, logger *zap.Logger) *MQTTSource {
	return &MQTTSource{
		client: client,
		topic:  fmt.Sprintf("breath/%s/data", deviceID),
		logger: logger,
	}
}

// Start 订阅采样主题
func (s *MQTTSource) Start() error {
	if err := s.client.Subscribe(s.topic, 1, s.handleMessage); err != nil {
		return fmt.Errorf("failed to subscribe to sample topic: %w", err)
	}

	s.logger.Info("MQTT sample source started", zap.String("topic", s.topic))
	return nil
}

// Stop 取消订阅
func (s *MQTTSource) Stop() error {
	if err := s.client.Unsubscribe(s.topic); err != nil {
		return fmt.Errorf("failed to unsubscribe from sample topic: %w", err)
	}
	return nil
}

// Read 返回最近收到的采样，没有消息到达时保持上一个值
func (s *MQTTSource) Read() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// handleMessage 解析采样消息并更新最新值
func (s *MQTTSource) handleMessage(topic string, payload []byte) error {
	var msg sampleMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal sample message: %w", err)
	}

	s.mu.Lock()
	s.latest = msg.Value
	s.mu.Unlock()

	return nil
}
