package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	GatewayHTTP = "http"
	GatewayGRPC = "grpc"

	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

var _ Validator = (*CartConfig)(nil)

type CartConfig struct {
	Log     LogConfig     `koanf:"log"`
	Gateway GatewayConfig `koanf:"gateway"`
	Storage StorageConfig `koanf:"storage"`
	Metrics MetricsConfig `koanf:"metrics"`
}

type GatewayConfig struct {
	Driver  string        `koanf:"driver"  validate:"oneof=http grpc"`
	URL     string        `koanf:"url"     validate:"required"`
	Timeout time.Duration `koanf:"timeout" validate:"gte=0"`
	Breaker BreakerConfig `koanf:"breaker"`
}

type BreakerConfig struct {
	Enabled             bool          `koanf:"enabled"`
	ConsecutiveFailures uint32        `koanf:"consecutivefailures"`
	OpenTimeout         time.Duration `koanf:"opentimeout"`
}

type StorageConfig struct {
	Driver string      `koanf:"driver" validate:"oneof=file redis memory"`
	Path   string      `koanf:"path"`
	Key    string      `koanf:"key"    validate:"required"`
	Redis  RedisConfig `koanf:"redis"`
}

type MetricsConfig struct {
	Textfile string `koanf:"textfile"`
}

func DefaultCart() map[string]any {
	return map[string]any{
		"log.level":                           "warn",
		"gateway.driver":                      GatewayHTTP,
		"gateway.url":                         "http://localhost:3333",
		"gateway.timeout":                     "0s",
		"gateway.breaker.enabled":             false,
		"gateway.breaker.consecutivefailures": 3,
		"gateway.breaker.opentimeout":         "30s",
		"storage.driver":                      StorageFile,
		"storage.path":                        "rocketshoes-cart.json",
		"storage.key":                         "@RocketShoes:cart",
		"storage.redis.addr":                  "localhost:6379",
	}
}

// LoadCart reads CART_* settings on top of config.yaml and .env.
func LoadCart(file string) (*CartConfig, error) {
	var cfg CartConfig
	err := Loader{Prefix: "CART_", File: file, EnvFile: ".env", Defaults: DefaultCart()}.Load(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *CartConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Gateway.Breaker.Enabled {
		if c.Gateway.Breaker.ConsecutiveFailures == 0 {
			return errors.New("gateway.breaker.consecutivefailures must be greater than 0")
		}
		if c.Gateway.Breaker.OpenTimeout <= 0 {
			return errors.New("gateway.breaker.opentimeout must be greater than 0")
		}
	}
	switch c.Storage.Driver {
	case StorageFile:
		if c.Storage.Path == "" {
			return errors.New("storage.path is required for the file driver")
		}
	case StorageRedis:
		if c.Storage.Redis.Addr == "" {
			return errors.New("storage.redis.addr is required for the redis driver")
		}
	}
	return nil
}

func (c *CartConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Gateway ---\n")
	b.WriteString(fmt.Sprintf("  gateway.driver: %s\n", c.Gateway.Driver))
	b.WriteString(fmt.Sprintf("  gateway.url: %s\n", c.Gateway.URL))
	b.WriteString(fmt.Sprintf("  gateway.timeout: %v\n", c.Gateway.Timeout))
	b.WriteString(fmt.Sprintf("  gateway.breaker.enabled: %t\n", c.Gateway.Breaker.Enabled))

	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  storage.driver: %s\n", c.Storage.Driver))
	b.WriteString(fmt.Sprintf("  storage.path: %s\n", c.Storage.Path))
	b.WriteString(fmt.Sprintf("  storage.key: %s\n", c.Storage.Key))
	b.WriteString(fmt.Sprintf("  storage.redis.addr: %s\n", c.Storage.Redis.Addr))

	b.WriteString("\n--- Observability ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))
	b.WriteString(fmt.Sprintf("  metrics.textfile: %s\n", c.Metrics.Textfile))
	return b.String()
}
