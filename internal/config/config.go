package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const Prefix = "PCBUILDER"

const (
	StorageMemory = "memory"
	StorageMySQL  = "mysql"
)

// Config настройки сервиса из переменных окружения PCBUILDER_*
type Config struct {
	HTTPAddr         string        `envconfig:"HTTP_ADDR" default:":9091"`
	Storage          string        `envconfig:"STORAGE" default:"memory"`
	MySQLDSN         string        `envconfig:"MYSQL_DSN" default:"pcbuilder:pcbuilder@tcp(localhost:3306)/pcbuilder?parseTime=true"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat        string        `envconfig:"LOG_FORMAT" default:"json"`
	KafkaBrokers     string        `envconfig:"KAFKA_BROKERS"`
	KafkaOrdersTopic string        `envconfig:"KAFKA_ORDERS_TOPIC" default:"pcbuilder.orders"`
	TracingEnabled   bool          `envconfig:"TRACING_ENABLED" default:"false"`
	ShutdownTimeout  time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	SeedFile         string        `envconfig:"SEED_FILE"`
}

func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return nil, errors.Wrap(err, "process env")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory:
	case StorageMySQL:
		if c.MySQLDSN == "" {
			return errors.New("PCBUILDER_MYSQL_DSN is required for mysql storage")
		}
	default:
		return errors.Errorf("unknown storage %q", c.Storage)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	return nil
}
