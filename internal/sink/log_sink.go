package sink

import (
	"fmt"
	"io"

	"wisefido-breath/internal/detector"
)

// LogSink 平面文本流输出：每 tick 一行固定元组
//
// 行格式与串口读取端的约定一致：demeaned 后跟 TAB，其余字段空格分隔：
//
//	demeaned(3位小数)\tpeaks_in_20 breath_rate apneas hypopneas AHI(1位小数)
type LogSink struct {
	w io.Writer
}

// NewLogSink 创建文本流输出，w 通常是 stdout 或日志文件
func NewLogSink(w io.Writer) *LogSink {
	return &LogSink{w: w}
}

// Emit 写出一个 tick 的固定元组
func (s *LogSink) Emit(r detector.TickResult) error {
	_, err := fmt.Fprintf(s.w, "%.3f\t%d %.2f %d %d %.1f\n",
		r.Demeaned, r.PeaksInWindow, r.BreathRate, r.ApneaCount, r.HypopneaCount, r.AHI)
	if err != nil {
		return fmt.Errorf("failed to write log sink: %w", err)
	}
	return nil
}
