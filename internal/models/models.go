package models

import "time"

// 呼吸事件类型
const (
	EventTypeApnea    = "apnea"
	EventTypeHypopnea = "hypopnea"
)

// RealtimeVitals 写入 Redis 的实时呼吸数据
type RealtimeVitals struct {
	DeviceID      string  `json:"device_id"`
	SessionID     string  `json:"session_id"`
	Demeaned      float64 `json:"demeaned"`
	PeaksIn20     int     `json:"peaks_in_20"`
	BreathRate    float64 `json:"breath_rate"`
	ApneaCount    int     `json:"apnea_count"`
	HypopneaCount int     `json:"hypopnea_count"`
	AHI           float64 `json:"ahi"`
	Timestamp     int64   `json:"timestamp"`
}

// BreathEvent 已确认的呼吸事件（apnea / hypopnea）
type BreathEvent struct {
	EventID      string    `json:"event_id"`
	SessionID    string    `json:"session_id"`
	DeviceID     string    `json:"device_id"`
	EventType    string    `json:"event_type"`
	ConfirmedAt  time.Time `json:"confirmed_at"`
	DurationSecs float64   `json:"duration_secs"`
	BreathRate   float64   `json:"breath_rate"`
	AHI          float64   `json:"ahi"`
}

// SessionSummary 睡眠会话汇总
type SessionSummary struct {
	SessionID        string    `json:"session_id"`
	DeviceID         string    `json:"device_id"`
	Date             string    `json:"date"`
	AvgBreathRate    float64   `json:"avg_breath_rate"`
	MinBreathRate    float64   `json:"min_breath_rate"`
	MaxBreathRate    float64   `json:"max_breath_rate"`
	AvgPeaksIn20     float64   `json:"avg_peaks_in_20"`
	ApneaEvents      int       `json:"apnea_events"`
	HypopneaEvents   int       `json:"hypopnea_events"`
	AHI              float64   `json:"ahi"`
	LongestPauseSecs float64   `json:"longest_pause"`
	TotalSleepSecs   float64   `json:"total_sleep_secs"`
	StartedAt        time.Time `json:"started_at"`
	EndedAt          time.Time `json:"ended_at"`
}
