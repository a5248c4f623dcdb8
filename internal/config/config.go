// Package config содержит конфигурационные структуры клиента, агента и приёмника алертов.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultTenant       = "_ops"
	DefaultBackendHost  = "localhost"
	DefaultBackendPort  = 8080
	DefaultReceiverHost = "0.0.0.0"
	DefaultReceiverPort = 9099
	DefaultMaxBodyBytes = 1 << 20
)

// ClientConfig содержит параметры подключения к бэкенду метрик.
type ClientConfig struct {
	Tenant    string        `env:"HAWKULAR_TENANT"`     // тенант, передаётся в каждом запросе
	Host      string        `env:"HAWKULAR_HOST"`       // хост бэкенда
	Scheme    string        `env:"HAWKULAR_SCHEME"`     // http или https
	Port      int           `env:"HAWKULAR_PORT"`       // порт бэкенда
	Timeout   time.Duration `env:"HAWKULAR_TIMEOUT"`    // 0 - таймаут транспорта по умолчанию
	Insecure  bool          `env:"HAWKULAR_INSECURE"`   // не проверять TLS-сертификат
	LegacyAPI bool          `env:"HAWKULAR_LEGACY_API"` // использовать /data вместо /raw
	Gzip      bool          `env:"HAWKULAR_GZIP"`       // сжимать тело пакетной записи
}

// DefaultClientConfig возвращает конфигурацию для локального бэкенда.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Tenant: DefaultTenant,
		Host:   DefaultBackendHost,
		Port:   DefaultBackendPort,
		Scheme: "http",
	}
}

// BaseURL возвращает адрес бэкенда без пути.
func (c ClientConfig) BaseURL() string {
	scheme := c.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s", scheme, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)))
}

// Validate проверяет обязательные поля.
func (c ClientConfig) Validate() error {
	if c.Tenant == "" {
		return fmt.Errorf("tenant is required")
	}
	if c.Host == "" {
		return fmt.Errorf("backend host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid backend port %d", c.Port)
	}
	if c.Scheme != "" && c.Scheme != "http" && c.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", c.Scheme)
	}
	return nil
}

// ReceiverConfig содержит параметры приёмника алертов.
type ReceiverConfig struct {
	Host         string `env:"RECEIVER_HOST"`     // адрес для прослушивания
	Key          string `env:"RECEIVER_KEY"`      // ключ проверки подписи HashSHA256
	LogFile      string `env:"RECEIVER_LOG_FILE"` // файл журнала с ротацией (пусто - только stdout)
	LogLevel     string `env:"LOG_LEVEL"`
	Port         int    `env:"RECEIVER_PORT"`
	MaxBodyBytes int64  `env:"RECEIVER_MAX_BODY"` // предельный Content-Length
}

// DefaultReceiverConfig возвращает конфигурацию эталонного развёртывания 0.0.0.0:9099.
func DefaultReceiverConfig() ReceiverConfig {
	return ReceiverConfig{
		Host:         DefaultReceiverHost,
		Port:         DefaultReceiverPort,
		MaxBodyBytes: DefaultMaxBodyBytes,
		LogLevel:     "info",
	}
}

// Address возвращает host:port для net.Listen.
func (c ReceiverConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate проверяет адрес и предел тела запроса.
func (c ReceiverConfig) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid receiver port %d", c.Port)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body size must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

// AgentConfig содержит конфигурационные параметры агента.
type AgentConfig struct {
	Client         ClientConfig
	PollInterval   time.Duration `env:"POLL_INTERVAL"`   // Интервал опроса метрик
	ReportInterval time.Duration `env:"REPORT_INTERVAL"` // Интервал отправки метрик
	RateLimit      int           `env:"RATE_LIMIT"`      // Число одновременных запросов
}

// DefaultAgentConfig возвращает конфигурацию агента по умолчанию.
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		Client:         DefaultClientConfig(),
		PollInterval:   2 * time.Second,
		ReportInterval: 10 * time.Second,
		RateLimit:      1,
	}
}

// Validate проверяет интервалы агента и параметры клиента.
func (c AgentConfig) Validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.ReportInterval <= 0 {
		return fmt.Errorf("report interval must be positive, got %s", c.ReportInterval)
	}
	if c.RateLimit < 1 {
		return fmt.Errorf("rate limit must be at least 1, got %d", c.RateLimit)
	}
	return c.Client.Validate()
}

// FromEnv накладывает заданные переменные окружения поверх cfg.
// Незаданные переменные не меняют поля.
func FromEnv[T any](cfg *T) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse env vars: %w", err)
	}
	return nil
}
