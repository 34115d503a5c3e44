package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"wisefido-breath/internal/config"
	"wisefido-breath/internal/detector"
	"wisefido-breath/internal/logger"
	"wisefido-breath/internal/mqtt"
	"wisefido-breath/internal/simulator"
)

// sampleMessage 与 sensor.MQTTSource 约定的采样消息格式
type sampleMessage struct {
	Value     float64 `json:"value"`
	Timestamp int64   `json:"ts"`
}

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化Logger
	zapLogger, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "breath-simulator")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	topic := fmt.Sprintf("breath/%s/data", cfg.Breath.DeviceID)
	zapLogger.Info("Starting breath simulator",
		zap.String("broker", cfg.MQTT.Broker),
		zap.String("topic", topic),
		zap.Duration("period", cfg.Simulator.Period),
		zap.Duration("apnea_every", cfg.Simulator.ApneaEvery),
	)

	// 模拟器自己的 ClientID，避免与监测服务冲突
	mqttCfg := cfg.MQTT
	mqttCfg.ClientID = mqttCfg.ClientID + "-simulator"
	mqttClient, err := mqtt.NewClient(&mqttCfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to MQTT", zap.Error(err))
	}
	defer mqttClient.Disconnect()

	wave := simulator.New(cfg.Simulator.Period, cfg.Simulator.Amplitude,
		cfg.Simulator.Noise, cfg.Simulator.ApneaEvery, cfg.Simulator.ApneaLength)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(detector.SamplePeriod)
	defer ticker.Stop()

	published := 0
	for {
		select {
		case sig := <-sigChan:
			zapLogger.Info("Received signal, stopping simulator",
				zap.String("signal", sig.String()),
				zap.Int("published", published),
			)
			return
		case now := <-ticker.C:
			msg := sampleMessage{
				Value:     wave.Next(),
				Timestamp: now.UnixMilli(),
			}
			payload, err := json.Marshal(msg)
			if err != nil {
				zapLogger.Error("Failed to marshal sample", zap.Error(err))
				continue
			}
			if err := mqttClient.Publish(topic, cfg.MQTT.QoS, false, payload); err != nil {
				zapLogger.Error("Failed to publish sample", zap.Error(err))
				continue
			}
			published++
		}
	}
}
