package sink

import (
	"fmt"
	"io"
	"strings"
	"time"

	"wisefido-breath/internal/detector"
)

// Pair 显示用的标签值对
type Pair struct {
	Label string
	Value float64
}

// Display 显示汇：接受固定顺序的标签值对并渲染为单行
type Display interface {
	Update(pairs []Pair) error
}

// VitalsPairs 按固定顺序构造显示标签值对：BPM、Apneas、Hypopneas、AHI
func VitalsPairs(r detector.TickResult) []Pair {
	return []Pair{
		{Label: "BPM", Value: r.BreathRate},
		{Label: "Apneas", Value: float64(r.ApneaCount)},
		{Label: "Hypopneas", Value: float64(r.HypopneaCount)},
		{Label: "AHI", Value: r.AHI},
	}
}

// ConsoleDisplay 控制台显示：原地刷新单行状态
// 内部按刷新间隔限流，调用方仍每 tick 转发
type ConsoleDisplay struct {
	w       io.Writer
	refresh time.Duration
	last    time.Time

	// now 可注入，测试用
	now func() time.Time
}

// NewConsoleDisplay 创建控制台显示
// writer 缺失视为显示初始化失败，由调用方决定是否致命
func NewConsoleDisplay(w io.Writer, refresh time.Duration) (*ConsoleDisplay, error) {
	if w == nil {
		return nil, fmt.Errorf("display writer is required")
	}
	return &ConsoleDisplay{w: w, refresh: refresh, now: time.Now}, nil
}

// Update 渲染一行状态，间隔内的调用直接丢弃
func (d *ConsoleDisplay) Update(pairs []Pair) error {
	now := d.now()
	if !d.last.IsZero() && now.Sub(d.last) < d.refresh {
		return nil
	}
	d.last = now

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%s: %.1f", p.Label, p.Value))
	}

	if _, err := fmt.Fprintf(d.w, "\r%s", strings.Join(parts, "  ")); err != nil {
		return fmt.Errorf("failed to update display: %w", err)
	}
	return nil
}
