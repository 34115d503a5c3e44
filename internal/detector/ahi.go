package detector

import "time"

// AHIAggregator 将事件计数与会话时长合成每小时事件率（AHI）
//
// 每次调用重新计算，不做缓存也不做平滑：会话初期分母很小，
// 计数器的每次递增都会引起明显波动。
type AHIAggregator struct {
	sessionStart time.Time
}

// NewAHIAggregator 创建 AHI 聚合器，sessionStart 在整个会话期间不变
func NewAHIAggregator(sessionStart time.Time) *AHIAggregator {
	return &AHIAggregator{sessionStart: sessionStart}
}

// AHI 返回 (apneas+hypopneas) / 已睡小时数，时长为零时返回 0
func (a *AHIAggregator) AHI(apneas, hypopneas int, now time.Time) float64 {
	hours := now.Sub(a.sessionStart).Hours()
	if hours <= 0 {
		return 0
	}
	return float64(apneas+hypopneas) / hours
}
