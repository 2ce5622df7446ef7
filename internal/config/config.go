package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Game     GameConfig     `yaml:"game"`
	Security SecurityConfig `yaml:"security"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	MaxConnections int      `yaml:"max_connections"` // 最大并发连接数
	AllowedOrigins []string `yaml:"allowed_origins"` // 为空时允许所有来源
	Codec          string   `yaml:"codec"`           // json / protobuf
	PublicURL      string   `yaml:"public_url"`      // 二维码中的加入地址，为空时按请求推断
	MonitorPeriod  int      `yaml:"monitor_period"`  // 监控日志间隔（秒）
}

// RedisConfig Redis 配置（可选，用于对局记录和统计）
type RedisConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Addr         string `yaml:"addr"`
	Password     string `yaml:"password"`
	DB           int    `yaml:"db"`
	HistoryLimit int64  `yaml:"history_limit"` // 对局记录保留条数
}

// GameConfig 游戏配置
type GameConfig struct {
	RoomID     string `yaml:"room_id"`     // 唯一房间 ID
	MinPlayers int    `yaml:"min_players"` // 开局最少人数
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	MessageLimit MessageLimitConfig `yaml:"message_limit"`
}

// MessageLimitConfig 单连接消息速率限制
type MessageLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
	MaxWarnings  int `yaml:"max_warnings"` // 超过后断开连接
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level"`  // debug/info/warn/error
	Format string `yaml:"format"` // text/json
}

// MonitorPeriodDuration 返回监控间隔
func (c *ServerConfig) MonitorPeriodDuration() time.Duration {
	return time.Duration(c.MonitorPeriod) * time.Second
}

// Addr 返回监听地址
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load 加载配置文件，缺省字段使用默认值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults 设置默认值
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.MaxConnections == 0 {
		c.Server.MaxConnections = 256
	}
	if c.Server.Codec == "" {
		c.Server.Codec = "json"
	}
	if c.Server.MonitorPeriod == 0 {
		c.Server.MonitorPeriod = 30
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.HistoryLimit == 0 {
		c.Redis.HistoryLimit = 500
	}
	if c.Game.RoomID == "" {
		c.Game.RoomID = "booth"
	}
	if c.Game.MinPlayers == 0 {
		c.Game.MinPlayers = 2
	}
	if c.Security.MessageLimit.MaxPerSecond == 0 {
		c.Security.MessageLimit.MaxPerSecond = 20
	}
	if c.Security.MessageLimit.MaxWarnings == 0 {
		c.Security.MessageLimit.MaxWarnings = 5
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Server.Port)
	}
	if c.Server.Codec != "json" && c.Server.Codec != "protobuf" {
		return fmt.Errorf("invalid codec %q (json or protobuf)", c.Server.Codec)
	}
	if c.Server.MaxConnections < 1 {
		return fmt.Errorf("invalid max_connections: %d", c.Server.MaxConnections)
	}
	if c.Game.MinPlayers < 2 {
		return fmt.Errorf("min_players must be at least 2, got %d", c.Game.MinPlayers)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (text or json)", c.Log.Format)
	}
	return nil
}
