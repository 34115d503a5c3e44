package sensor

import "wisefido-breath/internal/simulator"

// SimSource 无需 broker 的进程内模拟采样源
// 每次 Read 推进一个采样，调用方保证每 tick 只读一次
type SimSource struct {
	wave *simulator.Waveform
}

// NewSimSource 创建模拟采样源
func NewSimSource(wave *simulator.Waveform) *SimSource {
	return &SimSource{wave: wave}
}

// Read 返回波形的下一个采样
func (s *SimSource) Read() float64 {
	return s.wave.Next()
}
