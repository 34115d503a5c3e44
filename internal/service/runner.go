package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"wisefido-breath/internal/detector"
	"wisefido-breath/internal/models"
	"wisefido-breath/internal/sensor"
	"wisefido-breath/internal/session"
	"wisefido-breath/internal/sink"
)

// Runner 固定周期采样循环驱动
//
// 单个 goroutine 独占全部检测状态。时间纪律是软实时门：距上次被接受的
// 采样不足一个采样周期的调用被丢弃，迟到的 tick 照常执行，不做追赶或
// 跳帧补偿。会话计时器暂停期间同样丢弃 tick。
type Runner struct {
	monitor *detector.Monitor
	source  sensor.Source
	logSink *sink.LogSink
	display sink.Display
	clock   *session.Clock
	logger  *zap.Logger

	// OnResult 每个被接受的 tick 调用一次（汇总、缓存发布等）
	OnResult func(res detector.TickResult)
	// OnEvent 事件确认的 tick 调用，eventType 为 models.EventTypeApnea/Hypopnea
	OnEvent func(eventType string, res detector.TickResult)

	lastSample time.Time
	done       chan struct{}
}

// NewRunner 创建循环驱动
func NewRunner(
	monitor *detector.Monitor,
	source sensor.Source,
	logSink *sink.LogSink,
	display sink.Display,
	clock *session.Clock,
	logger *zap.Logger,
) *Runner {
	return &Runner{
		monitor: monitor,
		source:  source,
		logSink: logSink,
		display: display,
		clock:   clock,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Run 阻塞运行采样循环直到 ctx 取消
// 退出时关闭完成通道，关闭路径先 Wait 再读取循环写过的状态
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)

	ticker := time.NewTicker(detector.SamplePeriod)
	defer ticker.Stop()

	r.logger.Info("Sampling loop started",
		zap.Duration("sample_period", detector.SamplePeriod),
	)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Sampling loop stopped")
			return nil
		case now := <-ticker.C:
			r.step(now)
		}
	}
}

// Wait 阻塞直到采样循环退出；ctx 先取消时返回其错误
func (r *Runner) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// step 执行一次采样判定与流水线
//
// 被接受的 tick 按固定顺序执行：采样 → Monitor.Tick（平滑、窗口统计、
// 峰检测、频率、事件分类、AHI）→ 文本流 → 显示 → 回调。
// 汇与回调的失败只记录日志，不中断循环。
func (r *Runner) step(now time.Time) {
	if r.clock != nil && !r.clock.Running() {
		return
	}
	if !r.lastSample.IsZero() && now.Sub(r.lastSample) < detector.SamplePeriod {
		return
	}
	r.lastSample = now

	raw := r.source.Read()
	res := r.monitor.Tick(raw, now)

	if err := r.logSink.Emit(res); err != nil {
		r.logger.Error("Failed to emit log sink", zap.Error(err))
	}
	if err := r.display.Update(sink.VitalsPairs(res)); err != nil {
		r.logger.Error("Failed to update display", zap.Error(err))
	}

	if r.OnResult != nil {
		r.OnResult(res)
	}
	if r.OnEvent != nil {
		if res.ApneaConfirmed {
			r.OnEvent(models.EventTypeApnea, res)
		}
		if res.HypopneaConfirmed {
			r.OnEvent(models.EventTypeHypopnea, res)
		}
	}
}
