package detector

import "time"

// PeakDetector 自适应阈值过零峰检测器
//
// 去均值信号从负到非负的过零给检测上膛（一次性锁存），上膛后信号超过
// 动态阈值且距上次检出超过不应期时检出一个峰。上膛 + 不应期的组合保证
// 单次吸气的上升沿不会被重复计数；过零之后的亚阈值噪声不会重新上膛，
// 必须再出现一次负向偏移才行。
//
// 峰历史是带填充长度的计数环形缓冲，容量 PeakHistorySize，
// 不使用零值时间戳作为"空槽"哨兵。
type PeakDetector struct {
	prevDemeaned float64
	allowPeak    bool
	lastPeakTime time.Time

	history    [PeakHistorySize]time.Time
	historyPos int
	historyLen int
}

// NewPeakDetector 创建峰检测器
func NewPeakDetector() *PeakDetector {
	return &PeakDetector{}
}

// Threshold 由窗口统计计算动态阈值并钳位
// 阈值随局部方差自适应，检测因此容忍幅度漂移
func Threshold(mean, stddev float64) float64 {
	t := mean + ThresholdOffset + StdDevWeight*stddev
	if t < ThresholdMin {
		t = ThresholdMin
	}
	if t > ThresholdMax {
		t = ThresholdMax
	}
	return t
}

// Detect 处理一个平滑采样，返回去均值信号、当前阈值与是否检出峰
//
// prevDemeaned 在这里只读不写：调用方必须在所有依赖前值的计算完成后
// 再调用 Advance 推进
func (d *PeakDetector) Detect(smoothed, mean, stddev float64, now time.Time) (demeaned, threshold float64, peak bool) {
	demeaned = smoothed - mean
	threshold = Threshold(mean, stddev)

	// 负到非负的过零上膛
	if d.prevDemeaned < 0 && demeaned >= 0 {
		d.allowPeak = true
	}

	// lastPeakTime 零值时 Sub 远大于不应期，启动后首个峰直接通过
	if d.allowPeak && demeaned > threshold && now.Sub(d.lastPeakTime) > RefractoryPeriod {
		d.lastPeakTime = now
		d.allowPeak = false
		d.record(now)
		peak = true
	}

	return demeaned, threshold, peak
}

// Advance 推进 prevDemeaned，供下一 tick 的过零判断使用
func (d *PeakDetector) Advance(demeaned float64) {
	d.prevDemeaned = demeaned
}

// LastPeakTime 返回最近一次峰检出的时间（从未检出时为零值）
func (d *PeakDetector) LastPeakTime() time.Time {
	return d.lastPeakTime
}

// record 将峰时间戳写入历史，覆盖最旧槽位
func (d *PeakDetector) record(now time.Time) {
	d.history[d.historyPos] = now
	d.historyPos = (d.historyPos + 1) % PeakHistorySize
	if d.historyLen < PeakHistorySize {
		d.historyLen++
	}
}
