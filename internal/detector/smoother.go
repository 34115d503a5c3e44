package detector

// Smoother 指数移动平均平滑器
//
// smoothed = alpha*raw + (1-alpha)*smoothed_prev，状态跨调用保留。
// 无错误路径：任何输入都产生有限的平滑值。
type Smoother struct {
	alpha float64
	value float64
}

// NewSmoother 创建平滑器
func NewSmoother(alpha float64) *Smoother {
	return &Smoother{alpha: alpha}
}

// Update 混入一个原始采样，返回更新后的平滑值
func (s *Smoother) Update(raw float64) float64 {
	s.value = s.alpha*raw + (1-s.alpha)*s.value
	return s.value
}

// Value 返回当前平滑值
func (s *Smoother) Value() float64 {
	return s.value
}
