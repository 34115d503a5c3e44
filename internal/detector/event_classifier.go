package detector

import "time"

// eventState 持续时间门控状态机的状态：{Idle, Active} + 进入 Active 的时刻
type eventState struct {
	active bool
	start  time.Time
}

// EventClassifier 两个相互独立的持续时间门控状态机
//
// Apnea：当前 tick 无峰即进入 Active；峰出现则回到 Idle 不计数；
// 持续无峰满 EventConfirmDuration 则计数一次并复位到 Idle。复位后立即
// 重新开始计时，因此一段持续的呼吸暂停每满 10 秒计数一次——这是有意的
// 重触发行为，不是缺陷。
//
// Hypopnea：平滑值低于滚动均值的 HypopneaRatio 即进入 Active；条件一旦
// 不成立立即回到 Idle 不计数；条件连续成立满 EventConfirmDuration 则
// 计数一次并复位，同样立即重触发。
//
// 两台状态机的退出条件不对称（apnea 由峰事件退出，hypopnea 由瞬时条件
// 失效退出），这一不对称是刻意保留的。
// 计数器单调不减，进程生命周期内有效。
type EventClassifier struct {
	apnea    eventState
	hypopnea eventState

	apneaCount    int
	hypopneaCount int
}

// NewEventClassifier 创建事件分类器
func NewEventClassifier() *EventClassifier {
	return &EventClassifier{}
}

// ClassifyApnea 按当前 tick 的峰标志推进呼吸暂停状态机
// 返回本 tick 是否确认了一次 apnea 事件
func (c *EventClassifier) ClassifyApnea(peak bool, now time.Time) bool {
	if peak {
		c.apnea = eventState{}
		return false
	}
	if !c.apnea.active {
		c.apnea = eventState{active: true, start: now}
		return false
	}
	if now.Sub(c.apnea.start) >= EventConfirmDuration {
		c.apneaCount++
		c.apnea = eventState{}
		return true
	}
	return false
}

// ClassifyHypopnea 按当前平滑值与滚动均值推进低通气状态机
// 返回本 tick 是否确认了一次 hypopnea 事件
func (c *EventClassifier) ClassifyHypopnea(smoothed, mean float64, now time.Time) bool {
	if smoothed >= mean*HypopneaRatio {
		c.hypopnea = eventState{}
		return false
	}
	if !c.hypopnea.active {
		c.hypopnea = eventState{active: true, start: now}
		return false
	}
	if now.Sub(c.hypopnea.start) >= EventConfirmDuration {
		c.hypopneaCount++
		c.hypopnea = eventState{}
		return true
	}
	return false
}

// ApneaCount 返回已确认的呼吸暂停事件数
func (c *EventClassifier) ApneaCount() int {
	return c.apneaCount
}

// HypopneaCount 返回已确认的低通气事件数
func (c *EventClassifier) HypopneaCount() int {
	return c.hypopneaCount
}
