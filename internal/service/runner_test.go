package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wisefido-breath/internal/detector"
	"wisefido-breath/internal/models"
	"wisefido-breath/internal/session"
	"wisefido-breath/internal/sink"
)

// constSource 固定值采样源
type constSource struct {
	value float64
	reads int
}

func (s *constSource) Read() float64 {
	s.reads++
	return s.value
}

func setupTestRunner(t *testing.T, src *constSource, clock *session.Clock) (*Runner, *bytes.Buffer) {
	var logBuf bytes.Buffer
	display, err := sink.NewConsoleDisplay(&bytes.Buffer{}, 0)
	require.NoError(t, err)

	monitor := detector.NewMonitor(time.Now())
	r := NewRunner(monitor, src, sink.NewLogSink(&logBuf), display, clock, zap.NewNop())
	return r, &logBuf
}

func TestRunner_Step_EmitsLogLinePerTick(t *testing.T) {
	src := &constSource{value: 0}
	r, logBuf := setupTestRunner(t, src, nil)

	base := time.Now()
	for i := 0; i < 5; i++ {
		r.step(base.Add(time.Duration(i) * 10 * time.Millisecond))
	}

	lines := strings.Split(strings.TrimSuffix(logBuf.String(), "\n"), "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, 5, src.reads)

	// 恒零输入的固定元组
	assert.Equal(t, "0.000\t0 0.00 0 0 0.0", lines[0])
}

func TestRunner_Step_DropsFastTicks(t *testing.T) {
	src := &constSource{value: 0}
	r, logBuf := setupTestRunner(t, src, nil)

	base := time.Now()
	r.step(base)
	// 不足一个采样周期的调用被丢弃
	r.step(base.Add(3 * time.Millisecond))
	r.step(base.Add(6 * time.Millisecond))
	r.step(base.Add(10 * time.Millisecond))

	assert.Equal(t, 2, strings.Count(logBuf.String(), "\n"))
	assert.Equal(t, 2, src.reads)
}

func TestRunner_Step_LateTickRunsWithoutCatchUp(t *testing.T) {
	src := &constSource{value: 0}
	r, logBuf := setupTestRunner(t, src, nil)

	base := time.Now()
	r.step(base)
	// 迟到 500ms：只执行一次，不补帧
	r.step(base.Add(500 * time.Millisecond))

	assert.Equal(t, 2, strings.Count(logBuf.String(), "\n"))
}

func TestRunner_Step_PausedClockDropsTicks(t *testing.T) {
	src := &constSource{value: 0}
	clock := session.NewClock()
	r, logBuf := setupTestRunner(t, src, clock)

	base := time.Now()
	r.step(base) // 会话未开始，丢弃
	assert.Equal(t, 0, src.reads)

	clock.Start()
	r.step(base.Add(20 * time.Millisecond))
	assert.Equal(t, 1, src.reads)

	clock.Pause()
	r.step(base.Add(40 * time.Millisecond))
	assert.Equal(t, 1, src.reads)

	clock.Resume()
	r.step(base.Add(60 * time.Millisecond))
	assert.Equal(t, 2, src.reads)
	assert.Equal(t, 2, strings.Count(logBuf.String(), "\n"))
}

func TestRunner_Step_ForwardsConfirmedEvents(t *testing.T) {
	src := &constSource{value: 0}
	r, _ := setupTestRunner(t, src, nil)

	var events []string
	r.OnEvent = func(eventType string, res detector.TickResult) {
		events = append(events, eventType)
	}
	var results int
	r.OnResult = func(res detector.TickResult) {
		results++
	}

	// 恒零输入 21 秒：apnea 在 10s 与 20s 各确认一次
	base := time.Now()
	for i := 0; i <= 2100; i++ {
		r.step(base.Add(time.Duration(i) * 10 * time.Millisecond))
	}

	assert.Equal(t, []string{models.EventTypeApnea, models.EventTypeApnea}, events)
	assert.Equal(t, 2101, results)
}

func TestRunner_Wait_ReturnsAfterLoopExit(t *testing.T) {
	src := &constSource{value: 0}
	r, _ := setupTestRunner(t, src, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		_ = r.Run(ctx)
	}()

	cancel()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
	defer waitCancel()
	require.NoError(t, r.Wait(waitCtx))
}

func TestRunner_Wait_HonorsContextDeadline(t *testing.T) {
	src := &constSource{value: 0}
	r, _ := setupTestRunner(t, src, nil)

	// 循环从未启动，Wait 只能等到 ctx 超时
	waitCtx, waitCancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer waitCancel()
	assert.ErrorIs(t, r.Wait(waitCtx), context.DeadlineExceeded)
}
