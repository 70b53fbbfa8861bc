package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	log "github.com/sirupsen/logrus"
)

const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"

	envPrefix = "ORDERS"
)

// DefaultConfigFiles проверяются по порядку; отсутствующие файлы пропускаются.
var DefaultConfigFiles = []string{"orders.yaml", "/etc/orders/orders.yaml"}

// Config описывает настройки запуска сервиса заказов.
// Источники по возрастанию приоритета: значения default, YAML-файл, переменные ORDERS_*.
type Config struct {
	GRPCAddr    string `default:":50051" env:"GRPC_ADDR" yaml:"grpc_addr" usage:"gRPC listen address"`
	MetricsAddr string `default:":9090" env:"METRICS_ADDR" yaml:"metrics_addr" usage:"HTTP address for /metrics and health probes"`

	StorageDriver       string `default:"memory" env:"STORAGE_DRIVER" yaml:"storage_driver" usage:"order store: memory|postgres"`
	PostgresDSN         string `env:"POSTGRES_DSN" yaml:"postgres_dsn" usage:"PostgreSQL DSN, required for the postgres driver"`
	PostgresAutoMigrate bool   `default:"true" env:"POSTGRES_AUTO_MIGRATE" yaml:"postgres_auto_migrate" usage:"apply embedded migrations on start"`

	KafkaBrokers  []string `env:"KAFKA_BROKERS" yaml:"kafka_brokers" usage:"comma separated broker list; empty disables publishing"`
	KafkaClientID string   `default:"orders-service" env:"KAFKA_CLIENT_ID" yaml:"kafka_client_id" usage:"sarama client id"`

	ShutdownTimeout time.Duration `default:"10s" env:"SHUTDOWN_TIMEOUT" yaml:"shutdown_timeout" usage:"graceful shutdown limit"`
	LogLevel        string        `default:"info" env:"LOG_LEVEL" yaml:"log_level" usage:"logrus level"`
}

// DefaultConfig возвращает конфигурацию по умолчанию, совпадающую с тегами default.
func DefaultConfig() Config {
	return Config{
		GRPCAddr:            ":50051",
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		KafkaClientID:       "orders-service",
		ShutdownTimeout:     10 * time.Second,
		LogLevel:            "info",
	}
}

// LoadConfig читает конфигурацию из файлов и окружения и проверяет её.
// Если files пуст, используются DefaultConfigFiles.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = DefaultConfigFiles
	}

	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix:        envPrefix,
		SkipFlags:        true,
		AllowUnknownEnvs: true,
		Files:            files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
			".yml":  aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек.
func (c Config) Validate() error {
	var errs []error

	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.PostgresDSN == "" {
			errs = append(errs, errors.New("postgres dsn is required for postgres storage driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported storage driver %q", c.StorageDriver))
	}

	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}

	return errors.Join(errs...)
}

func (c *Config) normalize() {
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))
	c.PostgresDSN = strings.TrimSpace(c.PostgresDSN)

	brokers := make([]string, 0, len(c.KafkaBrokers))
	for _, broker := range c.KafkaBrokers {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	c.KafkaBrokers = brokers
}
