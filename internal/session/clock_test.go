package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeNow 可推进的注入时钟
type fakeNow struct {
	t time.Time
}

func (f *fakeNow) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func newTestClock() (*Clock, *fakeNow) {
	f := &fakeNow{t: time.Date(2026, 8, 24, 22, 0, 0, 0, time.UTC)}
	c := NewClock()
	c.now = func() time.Time { return f.t }
	return c, f
}

func TestClock_Elapsed_ExcludesPausedTime(t *testing.T) {
	c, f := newTestClock()

	c.Start()
	f.advance(10 * time.Minute)
	c.Pause()
	f.advance(5 * time.Minute)
	c.Resume()
	f.advance(20 * time.Minute)

	assert.Equal(t, 30*time.Minute, c.Elapsed())
}

func TestClock_End_FinalizesAccumulated(t *testing.T) {
	c, f := newTestClock()

	c.Start()
	f.advance(time.Hour)
	total := c.End()

	assert.Equal(t, time.Hour, total)
	assert.False(t, c.Running())

	// 结束后时间不再累计
	f.advance(time.Hour)
	assert.Equal(t, time.Hour, c.Elapsed())
}

func TestClock_Running_States(t *testing.T) {
	c, _ := newTestClock()

	assert.False(t, c.Running())

	c.Start()
	assert.True(t, c.Running())

	c.Pause()
	assert.False(t, c.Running())

	c.Resume()
	assert.True(t, c.Running())

	c.End()
	assert.False(t, c.Running())
}

func TestClock_Pause_Idempotent(t *testing.T) {
	c, f := newTestClock()

	c.Start()
	f.advance(time.Minute)
	c.Pause()
	f.advance(time.Minute)
	c.Pause() // 重复暂停不重复累计

	assert.Equal(t, time.Minute, c.Elapsed())
}

func TestClock_Start_ResetsAccumulated(t *testing.T) {
	c, f := newTestClock()

	c.Start()
	f.advance(time.Hour)
	c.End()

	c.Start()
	f.advance(time.Minute)
	assert.Equal(t, time.Minute, c.Elapsed())
}
