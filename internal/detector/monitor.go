package detector

import "time"

// TickResult 单个采样 tick 的完整输出
type TickResult struct {
	Timestamp time.Time

	Raw       float64
	Smoothed  float64
	Demeaned  float64
	Mean      float64
	StdDev    float64
	Threshold float64

	Peak          bool
	PeaksInWindow int
	BreathRate    float64

	ApneaCount        int
	HypopneaCount     int
	ApneaConfirmed    bool
	HypopneaConfirmed bool

	AHI float64
}

// Monitor 呼吸监测会话对象，独占持有全部检测状态
// 每个测试可各自构造，不依赖进程级单例
type Monitor struct {
	smoother *Smoother
	window   *StatsWindow
	peaks    *PeakDetector
	rate     *RateEstimator
	events   *EventClassifier
	ahi      *AHIAggregator

	sessionStart time.Time
}

// NewMonitor 创建监测会话，sessionStart 即 AHI 的会话起点
func NewMonitor(sessionStart time.Time) *Monitor {
	peaks := NewPeakDetector()
	return &Monitor{
		smoother:     NewSmoother(SmoothingAlpha),
		window:       NewStatsWindow(),
		peaks:        peaks,
		rate:         NewRateEstimator(peaks),
		events:       NewEventClassifier(),
		ahi:          NewAHIAggregator(sessionStart),
		sessionStart: sessionStart,
	}
}

// Tick 对一个原始采样执行完整流水线
//
// 顺序承载语义：事件分类必须看到当前 tick 的峰标志，
// prevDemeaned 只能在峰检测消费完上一 tick 的值之后推进。
func (m *Monitor) Tick(raw float64, now time.Time) TickResult {
	smoothed := m.smoother.Update(raw)
	m.window.Push(smoothed)
	mean, stddev := m.window.Stats()

	demeaned, threshold, peak := m.peaks.Detect(smoothed, mean, stddev, now)

	peaksInWindow := m.rate.PeaksInWindow(now)
	breathRate := m.rate.BreathsPerMinute(now)

	apneaConfirmed := m.events.ClassifyApnea(peak, now)
	hypopneaConfirmed := m.events.ClassifyHypopnea(smoothed, mean, now)

	ahi := m.ahi.AHI(m.events.ApneaCount(), m.events.HypopneaCount(), now)

	m.peaks.Advance(demeaned)

	return TickResult{
		Timestamp:         now,
		Raw:               raw,
		Smoothed:          smoothed,
		Demeaned:          demeaned,
		Mean:              mean,
		StdDev:            stddev,
		Threshold:         threshold,
		Peak:              peak,
		PeaksInWindow:     peaksInWindow,
		BreathRate:        breathRate,
		ApneaCount:        m.events.ApneaCount(),
		HypopneaCount:     m.events.HypopneaCount(),
		ApneaConfirmed:    apneaConfirmed,
		HypopneaConfirmed: hypopneaConfirmed,
		AHI:               ahi,
	}
}

// SessionStart 返回会话起点
func (m *Monitor) SessionStart() time.Time {
	return m.sessionStart
}
