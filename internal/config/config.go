package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.
// Содержит настройки логирования, метрик и сценария редактирования.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Session SessionConfig `yaml:"session"`
}

type LogConfig struct {
	ConsoleLevel string `yaml:"console_level"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// SessionConfig описывает сценарий демонстрационной сессии редактирования
type SessionConfig struct {
	Seed       int64   `yaml:"seed"`
	BrushSize  float64 `yaml:"brush_size"`
	Smoothness float64 `yaml:"smoothness"`
	Strokes    int     `yaml:"strokes"`
	Symmetry   bool    `yaml:"symmetry"`
}

// GetMetricsPort возвращает порт метрик с поддержкой fallback значений
func (m *MetricsConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(m.Port, "VOXEL_METRICS_PORT", 2112)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}
	return defaultPort
}

// Load читает конфигурацию из YAML-файла.
// Отсутствующий файл — не ошибка: возвращаются значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Log:     LogConfig{ConsoleLevel: "info"},
		Metrics: MetricsConfig{Enabled: false},
		Session: SessionConfig{
			Seed:       12345,
			BrushSize:  8,
			Smoothness: 0,
			Strokes:    16,
			Symmetry:   true,
		},
	}
}
