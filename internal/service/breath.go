package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"wisefido-breath/internal/cache"
	"wisefido-breath/internal/config"
	"wisefido-breath/internal/database"
	"wisefido-breath/internal/detector"
	"wisefido-breath/internal/models"
	"wisefido-breath/internal/mqtt"
	"wisefido-breath/internal/report"
	"wisefido-breath/internal/repository"
	"wisefido-breath/internal/sensor"
	"wisefido-breath/internal/session"
	"wisefido-breath/internal/simulator"
	"wisefido-breath/internal/sink"
)

// BreathService 呼吸监测服务：采样源 → 检测核心 → 汇/缓存/仓库
type BreathService struct {
	config *config.Config
	logger *zap.Logger

	db          *sql.DB
	redisClient *redis.Client
	mqttClient  *mqtt.Client

	cache *cache.Cache
	repo  *repository.BreathEventsRepository

	source     sensor.Source
	mqttSource *sensor.MQTTSource

	logSink *sink.LogSink
	logFile *os.File
	display sink.Display

	clock   *session.Clock
	summary *session.SummaryTracker
	runner  *Runner

	sessionID   string
	lastPublish time.Time
}

// NewBreathService 创建呼吸监测服务
// 显示初始化失败在这里返回错误，由 main 决定致命处理
func NewBreathService(cfg *config.Config, logger *zap.Logger) (*BreathService, error) {
	// 初始化数据库
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 初始化Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	s := &BreathService{
		config:      cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
		cache: cache.NewCache(redisClient, cfg.Breath.CachePrefix,
			cfg.Breath.CacheTTL, cfg.Breath.Stream, logger),
		repo:      repository.NewBreathEventsRepository(db, logger),
		clock:     session.NewClock(),
		sessionID: uuid.New().String(),
	}

	// 采样源
	switch cfg.Breath.Source {
	case "mqtt":
		mqttClient, err := mqtt.NewClient(&cfg.MQTT, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MQTT: %w", err)
		}
		s.mqttClient = mqttClient
		s.mqttSource = sensor.NewMQTTSource(mqttClient, cfg.Breath.DeviceID, logger)
		s.source = s.mqttSource
	case "sim":
		wave := simulator.New(cfg.Simulator.Period, cfg.Simulator.Amplitude,
			cfg.Simulator.Noise, cfg.Simulator.ApneaEvery, cfg.Simulator.ApneaLength)
		s.source = sensor.NewSimSource(wave)
	default:
		return nil, fmt.Errorf("unknown sample source: %s", cfg.Breath.Source)
	}

	// 文本流汇：默认 stdout，配置路径时写文件
	var logWriter io.Writer = os.Stdout
	if cfg.Breath.LogPath != "" {
		f, err := os.OpenFile(cfg.Breath.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log sink file: %w", err)
		}
		s.logFile = f
		logWriter = f
	}
	s.logSink = sink.NewLogSink(logWriter)

	// 显示汇：初始化失败视为致命（上抛给 main）
	display, err := sink.NewConsoleDisplay(os.Stderr, cfg.Breath.DisplayRefresh)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize display: %w", err)
	}
	s.display = display

	return s, nil
}

// Start 开始会话：同步完成装配，在内部 goroutine 运行采样循环
// Stop 通过 Runner.Wait 等循环退出后才读取汇总状态
func (s *BreathService) Start(ctx context.Context) error {
	s.clock.Start()
	sessionStart := s.clock.StartedAt()

	monitor := detector.NewMonitor(sessionStart)
	s.summary = session.NewSummaryTracker(s.sessionID, s.config.Breath.DeviceID, sessionStart)

	if s.mqttSource != nil {
		if err := s.mqttSource.Start(); err != nil {
			return fmt.Errorf("failed to start sample source: %w", err)
		}
	}

	s.runner = NewRunner(monitor, s.source, s.logSink, s.display, s.clock, s.logger)
	s.runner.OnResult = s.handleResult
	s.runner.OnEvent = s.handleEvent

	s.logger.Info("Breath service started",
		zap.String("session_id", s.sessionID),
		zap.String("device_id", s.config.Breath.DeviceID),
		zap.String("source", s.config.Breath.Source),
	)

	go func() {
		if err := s.runner.Run(ctx); err != nil {
			s.logger.Error("Sampling loop exited with error", zap.Error(err))
		}
	}()

	return nil
}

// Pause 暂停会话计时，暂停期间采样循环丢弃 tick
func (s *BreathService) Pause() {
	s.clock.Pause()
	s.logger.Info("Session paused", zap.String("session_id", s.sessionID))
}

// Resume 恢复会话计时
func (s *BreathService) Resume() {
	s.clock.Resume()
	s.logger.Info("Session resumed", zap.String("session_id", s.sessionID))
}

// Stop 结束会话：等采样循环退出，落汇总、导出报告、释放连接
// 调用方先取消 Start 传入的 ctx
func (s *BreathService) Stop(ctx context.Context) error {
	if s.runner != nil {
		if err := s.runner.Wait(ctx); err != nil {
			s.logger.Error("Timed out waiting for sampling loop", zap.Error(err))
		}
	}

	totalSleep := s.clock.End()
	endedAt := time.Now()

	if s.summary != nil {
		summary := s.summary.Summary(totalSleep, endedAt)

		if err := s.repo.InsertSummary(ctx, &summary); err != nil {
			s.logger.Error("Failed to persist session summary", zap.Error(err))
		}

		if s.config.Breath.ReportDir != "" {
			events, err := s.repo.ListEventsBySession(ctx, s.sessionID)
			if err != nil {
				s.logger.Error("Failed to load session events for report", zap.Error(err))
			}
			path, err := report.WriteSessionReport(s.config.Breath.ReportDir, summary, events)
			if err != nil {
				s.logger.Error("Failed to write session report", zap.Error(err))
			} else {
				s.logger.Info("Session report written", zap.String("path", path))
			}
		}

		s.logger.Info("Session ended",
			zap.String("session_id", s.sessionID),
			zap.Float64("total_sleep_secs", totalSleep.Seconds()),
			zap.Int("apnea_events", summary.ApneaEvents),
			zap.Int("hypopnea_events", summary.HypopneaEvents),
			zap.Float64("ahi", summary.AHI),
		)
	}

	if s.mqttSource != nil {
		if err := s.mqttSource.Stop(); err != nil {
			s.logger.Error("Error stopping sample source", zap.Error(err))
		}
	}
	if s.mqttClient != nil {
		s.mqttClient.Disconnect()
	}
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Error closing redis", zap.Error(err))
		}
	}
	if s.db != nil {
		if err := database.Close(s.db); err != nil {
			s.logger.Error("Error closing database", zap.Error(err))
		}
	}
	if s.logFile != nil {
		if err := s.logFile.Close(); err != nil {
			s.logger.Error("Error closing log sink file", zap.Error(err))
		}
	}

	s.logger.Info("Breath service stopped")
	return nil
}

// handleResult 每个被接受的 tick：更新汇总，按间隔写实时缓存
func (s *BreathService) handleResult(res detector.TickResult) {
	s.summary.Observe(res)

	if !s.lastPublish.IsZero() && res.Timestamp.Sub(s.lastPublish) < s.config.Breath.PublishInterval {
		return
	}
	s.lastPublish = res.Timestamp

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	vitals := &models.RealtimeVitals{
		DeviceID:      s.config.Breath.DeviceID,
		SessionID:     s.sessionID,
		Demeaned:      res.Demeaned,
		PeaksIn20:     res.PeaksInWindow,
		BreathRate:    res.BreathRate,
		ApneaCount:    res.ApneaCount,
		HypopneaCount: res.HypopneaCount,
		AHI:           res.AHI,
		Timestamp:     res.Timestamp.UnixMilli(),
	}
	if err := s.cache.SetRealtimeVitals(ctx, vitals); err != nil {
		s.logger.Error("Failed to publish realtime vitals", zap.Error(err))
	}
}

// handleEvent 事件确认：落库并发布到事件流
func (s *BreathService) handleEvent(eventType string, res detector.TickResult) {
	event := &models.BreathEvent{
		EventID:      uuid.New().String(),
		SessionID:    s.sessionID,
		DeviceID:     s.config.Breath.DeviceID,
		EventType:    eventType,
		ConfirmedAt:  res.Timestamp,
		DurationSecs: detector.EventConfirmDuration.Seconds(),
		BreathRate:   res.BreathRate,
		AHI:          res.AHI,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.repo.InsertEvent(ctx, event); err != nil {
		s.logger.Error("Failed to persist breath event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
	if _, err := s.cache.PublishEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish breath event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}

	s.logger.Info("Breath event confirmed",
		zap.String("session_id", s.sessionID),
		zap.String("event_type", eventType),
		zap.Int("apnea_count", res.ApneaCount),
		zap.Int("hypopnea_count", res.HypopneaCount),
		zap.Float64("ahi", res.AHI),
	)
}
