package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Server struct {
	Addr           string `default:":8080" envconfig:"ADDR"`
	MaxClients     int    `default:"5" envconfig:"MAX_CLIENTS"`
	OrdersPerBatch int    `default:"10" envconfig:"ORDERS_PER_BATCH"`
	// ReadTimeout 0 — без дедлайна: клиент волен держать паузу между пакетами.
	ReadTimeout     time.Duration `default:"0" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `default:"10s" envconfig:"WRITE_TIMEOUT"`
	ProcessDelay    time.Duration `default:"1s" envconfig:"PROCESS_DELAY"`
	GracefulTimeout time.Duration `default:"5s" envconfig:"GRACEFUL_TIMEOUT"`
}

type Metrics struct {
	Addr string `default:":2112" envconfig:"ADDR"`
}

type Catalog struct {
	Size         int `default:"20" envconfig:"SIZE"`
	InitialStock int `default:"2" envconfig:"INITIAL_STOCK"`
	// Seed 0 — сеять из текущего времени (как исходный srand(time(NULL))).
	Seed int64 `default:"0" envconfig:"SEED"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"OTEL_ENABLED"`
	ServiceName string  `default:"eshop-server" envconfig:"OTEL_SERVICE_NAME"`
	Endpoint    string  `default:"jaeger:4318" envconfig:"OTEL_ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"OTEL_SAMPLE_RATIO"`
}

type Logger struct {
	IsProd bool `default:"false" envconfig:"IS_PROD"`
}

type Client struct {
	Addr      string        `default:"127.0.0.1:8080" envconfig:"ADDR"`
	Batches   int           `default:"10" envconfig:"BATCHES"`
	SendDelay time.Duration `default:"1s" envconfig:"SEND_DELAY"`
}

type Config struct {
	Server  Server
	Metrics Metrics
	Catalog Catalog
	Tracing Tracing
	Logger  Logger
	Client  Client
}

// Load — конфигурация из окружения с префиксом ESHOP.
func Load() (Config, error) { return LoadWithPrefix("ESHOP") }

// LoadWithPrefix — то же с произвольным префиксом (изоляция окружения в тестах).
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config

	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}

	return c, nil
}
