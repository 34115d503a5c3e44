package detector

import "time"

// 检测参数为编译期常量，运行时不提供重新配置入口
const (
	// SamplePeriod 采样周期，快于该周期的调用被丢弃
	SamplePeriod = 10 * time.Millisecond

	// WindowSize 滚动统计窗口的槽位数
	WindowSize = 10

	// SmoothingAlpha 指数平滑系数
	SmoothingAlpha = 0.3

	// ThresholdOffset 动态阈值的固定偏移
	ThresholdOffset = 0.02

	// ThresholdMin / ThresholdMax 动态阈值的钳位范围
	ThresholdMin = 0.05
	ThresholdMax = 5.0

	// StdDevWeight 标准差在动态阈值中的权重
	StdDevWeight = 0.45

	// RefractoryPeriod 两次峰检出之间的最小间隔
	RefractoryPeriod = 1500 * time.Millisecond

	// PeakHistorySize 峰时间戳历史的容量
	PeakHistorySize = 50

	// RateWindow 呼吸频率统计的滑动窗口
	RateWindow = 20 * time.Second

	// HypopneaRatio 低通气判定：平滑值低于滚动均值的该比例
	HypopneaRatio = 0.7

	// EventConfirmDuration 事件确认所需的持续时间（apnea 与 hypopnea 相同）
	EventConfirmDuration = 10 * time.Second

	// VarianceFloor 方差下限，避免零方差开方
	VarianceFloor = 1e-6
)
