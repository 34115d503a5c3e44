package detector

import "time"

// RateEstimator 在峰历史上按 RateWindow 滑动窗口估计呼吸频率
// 对历史缓冲纯函数式读取，每次调用 O(PeakHistorySize)，无隐藏状态
type RateEstimator struct {
	peaks *PeakDetector
}

// NewRateEstimator 创建频率估计器
func NewRateEstimator(peaks *PeakDetector) *RateEstimator {
	return &RateEstimator{peaks: peaks}
}

// PeaksInWindow 统计 RateWindow 内记录的峰数量
func (r *RateEstimator) PeaksInWindow(now time.Time) int {
	count := 0
	for i := 0; i < r.peaks.historyLen; i++ {
		if now.Sub(r.peaks.history[i]) <= RateWindow {
			count++
		}
	}
	return count
}

// BreathsPerMinute 将窗口内峰数换算为每分钟呼吸次数
// 输出非负，且不超过 PeakHistorySize*60/20 = 150
func (r *RateEstimator) BreathsPerMinute(now time.Time) float64 {
	return float64(r.PeaksInWindow(now)) * 60 / RateWindow.Seconds()
}
