package detector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateEstimator_BreathsPerMinute_EmptyHistory(t *testing.T) {
	d := NewPeakDetector()
	r := NewRateEstimator(d)

	assert.Equal(t, 0, r.PeaksInWindow(time.Now()))
	assert.Equal(t, 0.0, r.BreathsPerMinute(time.Now()))
}

func TestRateEstimator_PeaksInWindow_ExcludesOldPeaks(t *testing.T) {
	d := NewPeakDetector()
	r := NewRateEstimator(d)
	base := time.Now()

	d.record(base.Add(-30 * time.Second))
	d.record(base.Add(-25 * time.Second))
	d.record(base.Add(-20 * time.Second)) // 窗口边界含端点
	d.record(base.Add(-5 * time.Second))
	d.record(base)

	assert.Equal(t, 3, r.PeaksInWindow(base))
	assert.InDelta(t, 3*60.0/20.0, r.BreathsPerMinute(base), 1e-12)
}

func TestRateEstimator_BreathsPerMinute_BoundedByCapacity(t *testing.T) {
	d := NewPeakDetector()
	r := NewRateEstimator(d)
	base := time.Now()

	// 写满两圈历史，全部落在窗口内
	for i := 0; i < 2*PeakHistorySize; i++ {
		d.record(base.Add(-time.Duration(i) * 100 * time.Millisecond))
	}

	rate := r.BreathsPerMinute(base)
	assert.GreaterOrEqual(t, rate, 0.0)
	assert.LessOrEqual(t, rate, 150.0)
	assert.InDelta(t, 150.0, rate, 1e-12)
}
