package simulator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWaveform_Next_AmplitudeBound(t *testing.T) {
	w := New(3*time.Second, 2.0, 0.05, 0, 0)

	for i := 0; i < 1000; i++ {
		v := w.Next()
		assert.LessOrEqual(t, math.Abs(v), 2.0+0.05)
	}
}

func TestWaveform_Next_PeriodMatchesZeroCrossings(t *testing.T) {
	w := New(3*time.Second, 1.0, 0, 0, 0)

	// 30 秒信号：每 3 秒周期有两次过零，共约 20 次
	crossings := 0
	prev := w.Next()
	for i := 1; i < 3000; i++ {
		v := w.Next()
		if (prev < 0 && v >= 0) || (prev >= 0 && v < 0) {
			crossings++
		}
		prev = v
	}

	assert.InDelta(t, 20, crossings, 1)
}

func TestWaveform_Next_ApneaWindowFlat(t *testing.T) {
	// 每 2 秒注入 1 秒平坦窗口
	w := New(3*time.Second, 1.0, 0.1, 2*time.Second, time.Second)

	var values []float64
	for i := 0; i < 300; i++ {
		values = append(values, w.Next())
	}

	// t ∈ [2.0, 3.0) 落在平坦窗口内
	for i := 200; i < 300; i++ {
		assert.Equal(t, 0.0, values[i])
	}
	// 窗口之前有非零信号
	nonzero := 0
	for i := 0; i < 200; i++ {
		if values[i] != 0 {
			nonzero++
		}
	}
	assert.Greater(t, nonzero, 100)
}

func TestWaveform_Next_Deterministic(t *testing.T) {
	a := New(3*time.Second, 2.0, 0.05, 0, 0)
	b := New(3*time.Second, 2.0, 0.05, 0, 0)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}
