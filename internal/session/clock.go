package session

import (
	"sync"
	"time"
)

// Clock 睡眠会话计时器：Start / Pause / Resume / End
//
// Elapsed 只累计处于运行状态的时间，暂停期间不计入。
// 检测核心自己的会话起点（AHI 分母）不受这里影响。
type Clock struct {
	mu sync.Mutex

	active bool
	paused bool
	ended  bool

	startedAt    time.Time
	runningSince time.Time
	accumulated  time.Duration

	now func() time.Time // 注入时钟，便于测试
}

// NewClock 创建会话计时器
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// Start 开始新会话，清零累计时间
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.active = true
	c.paused = false
	c.ended = false
	c.startedAt = now
	c.runningSince = now
	c.accumulated = 0
}

// Pause 暂停计时
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active && !c.paused && !c.ended {
		c.accumulated += c.now().Sub(c.runningSince)
	}
	c.paused = true
}

// Resume 恢复计时
func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active || c.ended || !c.paused {
		return
	}
	c.paused = false
	c.runningSince = c.now()
}

// End 结束会话，返回最终累计时长
func (c *Clock) End() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active && !c.paused && !c.ended {
		c.accumulated += c.now().Sub(c.runningSince)
	}
	c.active = false
	c.paused = false
	c.ended = true
	return c.accumulated
}

// Elapsed 返回当前累计时长（含进行中的活动段）
func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active || c.paused || c.ended {
		return c.accumulated
	}
	return c.accumulated + c.now().Sub(c.runningSince)
}

// Running 返回会话是否正在计时
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active && !c.paused && !c.ended
}

// StartedAt 返回会话开始时刻
func (c *Clock) StartedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startedAt
}
