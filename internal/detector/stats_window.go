package detector

import "math"

// StatsWindow 最近平滑值的固定容量环形窗口
//
// 统计始终覆盖全部 WindowSize 个槽位：启动阶段未写入的槽位按零参与计算，
// 这会使会话早期的均值偏低，属于接受的启动瞬态，不做修正。
type StatsWindow struct {
	slots [WindowSize]float64
	pos   int
}

// NewStatsWindow 创建统计窗口
func NewStatsWindow() *StatsWindow {
	return &StatsWindow{}
}

// Push 写入当前槽位并按模推进索引
func (w *StatsWindow) Push(v float64) {
	w.slots[w.pos] = v
	w.pos = (w.pos + 1) % WindowSize
}

// Stats 计算全部槽位的算术均值与总体标准差
// 方差在开方前钳到 VarianceFloor，任何输入都得到有限结果
func (w *StatsWindow) Stats() (mean, stddev float64) {
	var sum float64
	for _, v := range w.slots {
		sum += v
	}
	mean = sum / WindowSize

	var variance float64
	for _, v := range w.slots {
		d := v - mean
		variance += d * d
	}
	variance /= WindowSize
	if variance < VarianceFloor {
		variance = VarianceFloor
	}

	return mean, math.Sqrt(variance)
}
