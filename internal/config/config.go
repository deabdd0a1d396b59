package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server    ServerConfig              `mapstructure:"server"`    // 服务器配置
	Postgres  PostgresConfig            `mapstructure:"postgres"`  // PostgreSQL配置
	Sync      SyncConfig                `mapstructure:"sync"`      // 同步调度配置
	Providers map[string]ProviderConfig `mapstructure:"providers"` // 多数据商独立配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// PostgresConfig PostgreSQL数据库配置
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// SyncConfig 同步调度配置
type SyncConfig struct {
	Cron             string   `mapstructure:"cron"`              // 全局同步Cron表达式
	EnabledProviders []string `mapstructure:"enabled_providers"` // 启用的数据商列表
	RecordDelayMS    int      `mapstructure:"record_delay_ms"`   // 逐条写入间隔（毫秒，限流用）
	SourcePriority   []string `mapstructure:"source_priority"`   // 数据商信任序（靠前者优先）
	SweepRetainDays  int      `mapstructure:"sweep_retain_days"` // 已完赛记录保留天数
}

// ProviderConfig 单个数据商的独立配置
type ProviderConfig struct {
	BaseURL    string `mapstructure:"base_url"`    // API基础地址
	Timeout    int    `mapstructure:"timeout"`     // 请求超时（秒）
	RetryCount int    `mapstructure:"retry_count"` // 重试次数
	AuthToken  string `mapstructure:"auth_token"`  // football-data专属X-Auth-Token
	APIKey     string `mapstructure:"api_key"`     // TheSportsDB路径内Key
	Proxy      string `mapstructure:"proxy"`       // 代理地址
	WindowDays int    `mapstructure:"window_days"` // 默认拉取窗口天数
}

// DefaultSourcePriority 缺省数据商信任序（最受信任者在前，未知标签最低）
var DefaultSourcePriority = []string{"football-data", "sports-db", "multi-source", "manual", "internal"}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)

	// 4. 信任序缺省值（未配置时）
	if len(cfg.Sync.SourcePriority) == 0 {
		cfg.Sync.SourcePriority = DefaultSourcePriority
	}
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if p, ok := cfg.Providers["football-data"]; ok {
		if v := os.Getenv("FOOTBALL_DATA_API_KEY"); v != "" {
			p.AuthToken = v
		}
		if v := os.Getenv("FOOTBALL_DATA_PROXY"); v != "" {
			p.Proxy = v
		}
		cfg.Providers["football-data"] = p
	}
	if p, ok := cfg.Providers["sports-db"]; ok {
		if v := os.Getenv("SPORTSDB_KEY"); v != "" {
			p.APIKey = v
		}
		cfg.Providers["sports-db"] = p
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
}
