package session

import (
	"sync"
	"time"

	"wisefido-breath/internal/detector"
	"wisefido-breath/internal/models"
)

// SummaryTracker 聚合 TickResult 流，生成会话汇总
//
// longest pause 取相邻两次峰检出之间的最长间隔，包括采样时仍未闭合的
// 末段间隔。首个峰出现之前不计间隔。
// Observe 在采样循环的 goroutine 调用，Summary 在关闭路径调用，加锁保护。
type SummaryTracker struct {
	mu sync.Mutex

	sessionID string
	deviceID  string
	startedAt time.Time

	count   int
	sumRate float64
	minRate float64
	maxRate float64

	sumPeaks float64

	lastPeakAt   time.Time
	longestPause time.Duration

	last detector.TickResult
}

// NewSummaryTracker 创建汇总跟踪器
func NewSummaryTracker(sessionID, deviceID string, startedAt time.Time) *SummaryTracker {
	return &SummaryTracker{
		sessionID: sessionID,
		deviceID:  deviceID,
		startedAt: startedAt,
	}
}

// Observe 消费一个 tick 的结果
func (t *SummaryTracker) Observe(r detector.TickResult) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.count++

	if t.count == 1 {
		t.minRate = r.BreathRate
		t.maxRate = r.BreathRate
	} else {
		if r.BreathRate < t.minRate {
			t.minRate = r.BreathRate
		}
		if r.BreathRate > t.maxRate {
			t.maxRate = r.BreathRate
		}
	}
	t.sumRate += r.BreathRate
	t.sumPeaks += float64(r.PeaksInWindow)

	if t.lastPeakAt.IsZero() {
		if r.Peak {
			t.lastPeakAt = r.Timestamp
		}
	} else {
		gap := r.Timestamp.Sub(t.lastPeakAt)
		if gap > t.longestPause {
			t.longestPause = gap
		}
		if r.Peak {
			t.lastPeakAt = r.Timestamp
		}
	}

	t.last = r
}

// Summary 生成会话汇总，totalSleep 来自会话计时器
func (t *SummaryTracker) Summary(totalSleep time.Duration, endedAt time.Time) models.SessionSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := models.SessionSummary{
		SessionID:        t.sessionID,
		DeviceID:         t.deviceID,
		Date:             t.startedAt.Format("2006-01-02"),
		ApneaEvents:      t.last.ApneaCount,
		HypopneaEvents:   t.last.HypopneaCount,
		AHI:              t.last.AHI,
		LongestPauseSecs: t.longestPause.Seconds(),
		TotalSleepSecs:   totalSleep.Seconds(),
		StartedAt:        t.startedAt,
		EndedAt:          endedAt,
	}
	if t.count > 0 {
		s.AvgBreathRate = t.sumRate / float64(t.count)
		s.MinBreathRate = t.minRate
		s.MaxBreathRate = t.maxRate
		s.AvgPeaksIn20 = t.sumPeaks / float64(t.count)
	}
	return s
}
