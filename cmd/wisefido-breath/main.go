package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"wisefido-breath/internal/config"
	"wisefido-breath/internal/logger"
	"wisefido-breath/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化Logger
	zapLogger, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "wisefido-breath")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting wisefido-breath service",
		zap.String("version", "1.0.0"),
		zap.String("device_id", cfg.Breath.DeviceID),
		zap.String("source", cfg.Breath.Source),
		zap.String("stream", cfg.Breath.Stream),
	)

	// 创建服务（显示初始化失败在这里致命退出）
	breathService, err := service.NewBreathService(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to create breath service", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 启动采样循环（装配同步完成，循环在服务内部的 goroutine 运行）
	if err := breathService.Start(ctx); err != nil {
		zapLogger.Fatal("Failed to start breath service", zap.Error(err))
	}

	// SIGUSR1 暂停 / SIGUSR2 恢复会话计时，SIGINT/SIGTERM 结束会话
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR1, syscall.SIGUSR2)

	for {
		sig := <-sigChan
		switch sig {
		case syscall.SIGUSR1:
			breathService.Pause()
			continue
		case syscall.SIGUSR2:
			breathService.Resume()
			continue
		}

		zapLogger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		break
	}

	// 优雅关闭：先取消循环，Stop 内部等循环退出后再落汇总
	cancel()
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	if err := breathService.Stop(stopCtx); err != nil {
		zapLogger.Error("Error during shutdown", zap.Error(err))
	}

	zapLogger.Info("Service stopped")
}
