package sensor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"wisefido-breath/internal/simulator"
)

func TestMQTTSource_HandleMessage_UpdatesLatest(t *testing.T) {
	s := NewMQTTSource(nil, "breath-001", zap.NewNop())

	assert.Equal(t, "breath/breath-001/data", s.topic)
	assert.Equal(t, 0.0, s.Read())

	err := s.handleMessage(s.topic, []byte(`{"value": 1.25, "ts": 1700000000000}`))
	assert.NoError(t, err)
	assert.Equal(t, 1.25, s.Read())

	// 新消息覆盖旧值
	err = s.handleMessage(s.topic, []byte(`{"value": -0.5, "ts": 1700000000010}`))
	assert.NoError(t, err)
	assert.Equal(t, -0.5, s.Read())
}

func TestMQTTSource_HandleMessage_MalformedPayload(t *testing.T) {
	s := NewMQTTSource(nil, "breath-001", zap.NewNop())

	s.handleMessage(s.topic, []byte(`{"value": 2.0, "ts": 1}`))
	err := s.handleMessage(s.topic, []byte(`not json`))

	assert.Error(t, err)
	// 坏消息不影响已有的最新值
	assert.Equal(t, 2.0, s.Read())
}

func TestSimSource_Read_AdvancesWaveform(t *testing.T) {
	s := NewSimSource(simulator.New(3*time.Second, 1.0, 0, 0, 0))

	a := s.Read()
	b := s.Read()
	assert.NotEqual(t, a, b)
}
