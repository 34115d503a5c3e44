package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MQTTConfig MQTT配置
type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	QoS      byte
}

// Config wisefido-breath 服务配置
//
// 检测参数（采样周期、窗口、阈值、不应期等）是 internal/detector 的
// 编译期常量，不在这里出现，也不提供运行时重新配置。
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	MQTT     MQTTConfig

	// Breath 服务特定配置
	Breath struct {
		DeviceID        string        // 设备ID，用于 MQTT 主题和事件记录
		Source          string        // 采样源："mqtt" 或 "sim"
		Stream          string        // 已确认事件的 Redis Streams 输出流
		CachePrefix     string        // 实时数据缓存键前缀
		CacheTTL        time.Duration // 实时数据缓存 TTL
		PublishInterval time.Duration // 实时数据写入缓存的间隔
		LogPath         string        // 平面文本流输出路径，空 = stdout
		DisplayRefresh  time.Duration // 显示刷新间隔
		ReportDir       string        // 会话报告输出目录，空 = 不导出
	}

	// Simulator 波形模拟器配置（Source = "sim" 或 breath-simulator 使用）
	Simulator struct {
		Period      time.Duration // 呼吸周期，默认 3s ≈ 20 BPM
		Amplitude   float64
		Noise       float64
		ApneaEvery  time.Duration // 每隔多久注入一段平坦窗口，0 = 不注入
		ApneaLength time.Duration // 平坦窗口长度
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load 加载配置
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnvInt("DB_PORT", 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "owlrd")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "mqtt://localhost:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "wisefido-breath")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "wisefido")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.QoS = 1

	cfg.Breath.DeviceID = getEnv("BREATH_DEVICE_ID", "breath-001")
	cfg.Breath.Source = getEnv("BREATH_SOURCE", "mqtt")
	cfg.Breath.Stream = getEnv("BREATH_EVENT_STREAM", "breath:events:stream")
	cfg.Breath.CachePrefix = getEnv("BREATH_CACHE_PREFIX", "vital-focus:device:")
	cfg.Breath.CacheTTL = getEnvDuration("BREATH_CACHE_TTL", 30*time.Second)
	cfg.Breath.PublishInterval = getEnvDuration("BREATH_PUBLISH_INTERVAL", time.Second)
	cfg.Breath.LogPath = getEnv("BREATH_LOG_PATH", "")
	cfg.Breath.DisplayRefresh = getEnvDuration("BREATH_DISPLAY_REFRESH", 250*time.Millisecond)
	cfg.Breath.ReportDir = getEnv("BREATH_REPORT_DIR", "")

	cfg.Simulator.Period = getEnvDuration("SIM_PERIOD", 3*time.Second)
	cfg.Simulator.Amplitude = getEnvFloat("SIM_AMPLITUDE", 2.0)
	cfg.Simulator.Noise = getEnvFloat("SIM_NOISE", 0.02)
	cfg.Simulator.ApneaEvery = getEnvDuration("SIM_APNEA_EVERY", 0)
	cfg.Simulator.ApneaLength = getEnvDuration("SIM_APNEA_LENGTH", 15*time.Second)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	if cfg.Breath.Source != "mqtt" && cfg.Breath.Source != "sim" {
		return nil, fmt.Errorf("invalid BREATH_SOURCE: %s (expected mqtt or sim)", cfg.Breath.Source)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
