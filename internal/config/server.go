package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	CatalogMySQL  = "mysql"
	CatalogMemory = "memory"

	StockRedis  = "redis"
	StockMemory = "memory"
)

var _ Validator = (*ServerConfig)(nil)

type ServerConfig struct {
	Log      LogConfig      `koanf:"log"`
	HTTP     ListenConfig   `koanf:"http"`
	GRPC     ListenConfig   `koanf:"grpc"`
	Catalog  DriverConfig   `koanf:"catalog"`
	Stock    DriverConfig   `koanf:"stock"`
	MySQL    MySQLConfig    `koanf:"mysql"`
	Redis    RedisConfig    `koanf:"redis"`
	Shutdown ShutdownConfig `koanf:"shutdown"`
}

type ListenConfig struct {
	Addr string `koanf:"addr" validate:"required"`
}

type DriverConfig struct {
	Driver string `koanf:"driver" validate:"oneof=mysql redis memory"`
}

type MySQLConfig struct {
	DSN string `koanf:"dsn"`
}

type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

func DefaultServer() map[string]any {
	return map[string]any{
		"log.level":        "info",
		"http.addr":        ":3333",
		"grpc.addr":        ":50051",
		"catalog.driver":   CatalogMemory,
		"stock.driver":     StockMemory,
		"mysql.dsn":        "",
		"redis.addr":       "localhost:6379",
		"shutdown.timeout": "5s",
	}
}

// LoadServer reads STOCK_* settings on top of config.yaml and .env.
func LoadServer(file string) (*ServerConfig, error) {
	var cfg ServerConfig
	err := Loader{Prefix: "STOCK_", File: file, EnvFile: ".env", Defaults: DefaultServer()}.Load(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *ServerConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Catalog.Driver != CatalogMySQL && c.Catalog.Driver != CatalogMemory {
		return fmt.Errorf("catalog.driver must be %q or %q", CatalogMySQL, CatalogMemory)
	}
	if c.Stock.Driver != StockRedis && c.Stock.Driver != StockMemory {
		return fmt.Errorf("stock.driver must be %q or %q", StockRedis, StockMemory)
	}
	if c.Catalog.Driver == CatalogMySQL && c.MySQL.DSN == "" {
		return errors.New("mysql.dsn is required for the mysql catalog")
	}
	if c.Stock.Driver == StockRedis && c.Redis.Addr == "" {
		return errors.New("redis.addr is required for the redis stock driver")
	}
	return nil
}

func (c *ServerConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Listeners ---\n")
	b.WriteString(fmt.Sprintf("  http.addr: %s\n", c.HTTP.Addr))
	b.WriteString(fmt.Sprintf("  grpc.addr: %s\n", c.GRPC.Addr))

	b.WriteString("\n--- Backends ---\n")
	b.WriteString(fmt.Sprintf("  catalog.driver: %s\n", c.Catalog.Driver))
	b.WriteString(fmt.Sprintf("  stock.driver: %s\n", c.Stock.Driver))
	b.WriteString(fmt.Sprintf("  mysql.dsn: %s\n", maskDSN(c.MySQL.DSN)))
	b.WriteString(fmt.Sprintf("  redis.addr: %s\n", c.Redis.Addr))

	b.WriteString("\n--- Application Behavior ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))
	b.WriteString(fmt.Sprintf("  shutdown.timeout: %s\n", c.Shutdown.Timeout))
	return b.String()
}
