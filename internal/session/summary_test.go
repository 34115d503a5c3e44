package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"wisefido-breath/internal/detector"
)

func TestSummaryTracker_Summary_Empty(t *testing.T) {
	start := time.Date(2026, 8, 24, 22, 0, 0, 0, time.UTC)
	tr := NewSummaryTracker("sess-1", "breath-001", start)

	s := tr.Summary(0, start)

	assert.Equal(t, "sess-1", s.SessionID)
	assert.Equal(t, "breath-001", s.DeviceID)
	assert.Equal(t, "2026-08-24", s.Date)
	assert.Equal(t, 0.0, s.AvgBreathRate)
	assert.Equal(t, 0.0, s.LongestPauseSecs)
}

func TestSummaryTracker_Observe_RateStatistics(t *testing.T) {
	start := time.Now()
	tr := NewSummaryTracker("sess-1", "breath-001", start)

	rates := []float64{12, 18, 24}
	for i, rate := range rates {
		tr.Observe(detector.TickResult{
			Timestamp:     start.Add(time.Duration(i) * 10 * time.Millisecond),
			BreathRate:    rate,
			PeaksInWindow: int(rate / 3),
		})
	}

	s := tr.Summary(time.Hour, start.Add(time.Hour))
	assert.InDelta(t, 18.0, s.AvgBreathRate, 1e-9)
	assert.Equal(t, 12.0, s.MinBreathRate)
	assert.Equal(t, 24.0, s.MaxBreathRate)
	assert.InDelta(t, 6.0, s.AvgPeaksIn20, 1e-9)
	assert.Equal(t, 3600.0, s.TotalSleepSecs)
}

func TestSummaryTracker_Observe_LongestPause(t *testing.T) {
	start := time.Now()
	tr := NewSummaryTracker("sess-1", "breath-001", start)

	// 峰在 0s、3s、10s；末段未闭合间隔到 12s
	tick := func(at time.Duration, peak bool) {
		tr.Observe(detector.TickResult{Timestamp: start.Add(at), Peak: peak})
	}
	tick(0, true)
	tick(3*time.Second, true)
	tick(10*time.Second, true)
	tick(12*time.Second, false)

	s := tr.Summary(12*time.Second, start.Add(12*time.Second))
	assert.Equal(t, 7.0, s.LongestPauseSecs)
}

func TestSummaryTracker_Observe_OpenGapCounts(t *testing.T) {
	start := time.Now()
	tr := NewSummaryTracker("sess-1", "breath-001", start)

	tr.Observe(detector.TickResult{Timestamp: start, Peak: true})
	tr.Observe(detector.TickResult{Timestamp: start.Add(20 * time.Second), Peak: false})

	s := tr.Summary(20*time.Second, start.Add(20*time.Second))
	assert.Equal(t, 20.0, s.LongestPauseSecs)
}

func TestSummaryTracker_Summary_FinalCounters(t *testing.T) {
	start := time.Now()
	tr := NewSummaryTracker("sess-1", "breath-001", start)

	tr.Observe(detector.TickResult{Timestamp: start, ApneaCount: 1, HypopneaCount: 0, AHI: 2.0})
	tr.Observe(detector.TickResult{Timestamp: start.Add(10 * time.Millisecond), ApneaCount: 3, HypopneaCount: 2, AHI: 5.0})

	s := tr.Summary(time.Hour, start.Add(time.Hour))
	assert.Equal(t, 3, s.ApneaEvents)
	assert.Equal(t, 2, s.HypopneaEvents)
	assert.Equal(t, 5.0, s.AHI)
}

func TestSummaryTracker_ConcurrentObserveAndSummary(t *testing.T) {
	start := time.Now()
	tr := NewSummaryTracker("sess-1", "breath-001", start)

	// 采样循环与关闭路径并发访问，-race 下必须干净
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			tr.Observe(detector.TickResult{
				Timestamp:  start.Add(time.Duration(i) * 10 * time.Millisecond),
				BreathRate: 15,
				Peak:       i%150 == 0,
			})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			tr.Summary(time.Duration(i)*time.Second, start.Add(time.Duration(i)*time.Second))
		}
	}()
	wg.Wait()

	s := tr.Summary(10*time.Second, start.Add(10*time.Second))
	assert.Equal(t, 15.0, s.AvgBreathRate)
}
