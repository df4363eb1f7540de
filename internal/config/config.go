package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Драйверы хранилища сотрудников
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config настройки сервиса
type Config struct {
	HTTPPort        string        `yaml:"httpPort"`
	GRPCPort        string        `yaml:"grpcPort"`
	LogMode         string        `yaml:"logMode"`
	DBDriver        string        `yaml:"dbDriver"`
	DBPath          string        `yaml:"dbPath"`
	SqrtDelay       time.Duration `yaml:"sqrtDelay"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	RateLimit       RateLimit     `yaml:"rateLimit"`
}

// RateLimit настройки ограничения частоты запросов на клиента
type RateLimit struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

// Default возвращает конфигурацию по умолчанию
func Default() Config {
	return Config{
		HTTPPort:        "8080",
		GRPCPort:        "50052",
		LogMode:         "development",
		DBDriver:        DriverSQLite,
		DBPath:          ":memory:",
		SqrtDelay:       50 * time.Millisecond,
		ShutdownTimeout: 5 * time.Second,
		RateLimit: RateLimit{
			Enabled: false,
			RPS:     30,
			Burst:   60,
		},
	}
}

// Load собирает конфигурацию: значения по умолчанию, затем YAML-файл (если путь задан),
// затем переменные окружения
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	ApplyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnvOverrides применяет переменные окружения поверх cfg.
// Некорректные значения игнорируются
func ApplyEnvOverrides(cfg *Config) {
	if v := env("HTTP_PORT"); v != "" {
		cfg.HTTPPort = v
	}
	if v := env("GRPC_PORT"); v != "" {
		cfg.GRPCPort = v
	}
	if v := env("LOG_MODE"); v != "" {
		cfg.LogMode = v
	}
	if v := env("DB_DRIVER"); v != "" {
		cfg.DBDriver = strings.ToLower(v)
	}
	if v := env("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if d, ok := millisEnv("SQRT_DELAY_MS"); ok {
		cfg.SqrtDelay = d
	}
	if d, ok := millisEnv("SHUTDOWN_TIMEOUT_MS"); ok && d > 0 {
		cfg.ShutdownTimeout = d
	}
	if v := env("RATE_LIMIT_ENABLED"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.RateLimit.Enabled = parsed
		}
	}
	if v := env("RATE_LIMIT_RPS"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			cfg.RateLimit.RPS = parsed
		}
	}
	if v := env("RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.RateLimit.Burst = parsed
		}
	}
}

// Validate проверяет согласованность настроек
func (c Config) Validate() error {
	if c.HTTPPort == "" {
		return errors.New("http port must not be empty")
	}
	if c.GRPCPort == "" {
		return errors.New("grpc port must not be empty")
	}
	switch c.DBDriver {
	case DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unknown db driver %q", c.DBDriver)
	}
	if c.SqrtDelay < 0 {
		return errors.New("sqrt delay must not be negative")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("rate limit rps and burst must be positive")
	}
	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func millisEnv(key string) (time.Duration, bool) {
	raw := env(key)
	if raw == "" {
		return 0, false
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}
