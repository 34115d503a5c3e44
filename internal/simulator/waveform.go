package simulator

import (
	"math"
	"time"
)

// timeStep 每次 Next 推进的信号时间，与采样周期一致
const timeStep = 0.01

// Waveform 呼吸波形发生器
//
// sin(2π·t/period)，可叠加确定性噪声与周期性的平坦窗口（模拟呼吸暂停）。
// 噪声由信号时间确定性导出，同一配置下序列可复现。
type Waveform struct {
	period      float64 // 秒
	amplitude   float64
	noise       float64
	apneaEvery  float64 // 秒，0 = 不注入
	apneaLength float64 // 秒

	t float64 // 已生成的信号时间（秒）
}

// New 创建波形发生器
// period 呼吸周期（3s ≈ 20 BPM），apneaEvery 为 0 时不注入平坦窗口
func New(period time.Duration, amplitude, noise float64, apneaEvery, apneaLength time.Duration) *Waveform {
	return &Waveform{
		period:      period.Seconds(),
		amplitude:   amplitude,
		noise:       noise,
		apneaEvery:  apneaEvery.Seconds(),
		apneaLength: apneaLength.Seconds(),
	}
}

// Next 返回下一个采样并推进信号时间
func (w *Waveform) Next() float64 {
	t := w.t
	w.t += timeStep

	// 平坦窗口：每 apneaEvery 秒注入 apneaLength 秒的零信号
	if w.apneaEvery > 0 {
		cycle := math.Mod(t, w.apneaEvery+w.apneaLength)
		if cycle >= w.apneaEvery {
			return 0
		}
	}

	v := w.amplitude * math.Sin(2*math.Pi*t/w.period)
	if w.noise > 0 {
		v += w.noise * (2*fract(math.Sin(12345.678*t)*9876.543) - 1)
	}
	return v
}

func fract(x float64) float64 {
	return x - math.Floor(x)
}
