package sensor

// Source 采样源：循环驱动每个被接受的 tick 调用一次 Read
//
// 没有错误通道：读取失败与真实的低读数不可区分，首个采样到达前返回零。
// 采样已由上游换算为电压量纲并完成符号翻转，核心按 [-5,5] 左右的
// 不透明浮点处理。
type Source interface {
	Read() float64
}
