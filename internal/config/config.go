package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Companion CompanionConfig `yaml:"companion"`
	Speech    SpeechConfig    `yaml:"speech"`
	CORS      CORSConfig      `yaml:"cors"`
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	// Port 允许 "8080"、":8080" 或 "127.0.0.1:8080"。
	Port            string        `yaml:"port"             env:"PORT"                    env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr 返回可直接传给 http.Server 的监听地址。
func (c ServerConfig) Addr() string {
	port := strings.TrimSpace(c.Port)
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// LogConfig 描述日志输出。
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// CompanionConfig 描述陪伴对话的默认语言设置。
type CompanionConfig struct {
	DefaultLocale string `yaml:"default_locale" env:"QUESTME_DEFAULT_LOCALE" env-default:"ja"`
}

// SpeechConfig 描述本地预览用的语音合成参数。
type SpeechConfig struct {
	SpeechCode string        `yaml:"speech_code" env:"QUESTME_SPEECH_CODE" env-default:"ja-JP"`
	PerRune    time.Duration `yaml:"per_rune"    env:"QUESTME_SPEECH_PACE" env-default:"60ms"`
}

// CORSConfig 描述跨域设置。
type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods string `yaml:"allowed_methods" env:"CORS_ALLOWED_METHODS" env-default:"GET,POST,OPTIONS"`
	AllowedHeaders string `yaml:"allowed_headers" env:"CORS_ALLOWED_HEADERS" env-default:"Accept,Accept-Language,Content-Type"`
	MaxAge         int    `yaml:"max_age"         env:"CORS_MAX_AGE"         env-default:"300"`
}

// Load 从环境变量加载配置。若设置了 CONFIG_PATH，则先读取该 YAML 文件，
// 环境变量仍然优先。
func Load() (*Config, error) {
	var cfg Config

	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate 校验配置项。
func (c *Config) Validate() error {
	var errs []error

	port := strings.TrimSpace(c.Server.Port)
	if port == "" || strings.ContainsAny(port, " \t") {
		errs = append(errs, fmt.Errorf("invalid PORT value: %q", c.Server.Port))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown timeout must be positive"))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("invalid LOG_FORMAT value: %q", c.Log.Format))
	}

	if strings.TrimSpace(c.Speech.SpeechCode) == "" {
		errs = append(errs, errors.New("speech code is required"))
	}
	if c.Speech.PerRune < 0 {
		errs = append(errs, errors.New("speech pace must not be negative"))
	}

	return errors.Join(errs...)
}
