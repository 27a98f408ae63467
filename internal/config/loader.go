package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Validator interface {
	Validate() error
}

// Loader layers configuration sources, lowest priority first: defaults,
// YAML file, .env file, process environment. Environment keys drop the
// prefix and map "_" to ".", so CART_GATEWAY_URL sets gateway.url.
type Loader struct {
	Prefix   string
	File     string
	EnvFile  string
	Defaults map[string]any
}

func (l Loader) Load(cfg Validator) error {
	k := koanf.New(".")

	if len(l.Defaults) > 0 {
		if err := k.Load(confmap.Provider(l.Defaults, "."), nil); err != nil {
			return fmt.Errorf("load defaults: %w", err)
		}
	}

	if l.File != "" {
		if _, err := os.Stat(l.File); err == nil {
			if err := k.Load(file.Provider(l.File), yaml.Parser()); err != nil {
				return fmt.Errorf("load config file %s: %w", l.File, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat config file %s: %w", l.File, err)
		}
	}

	prefix := strings.ToUpper(l.Prefix)
	transform := func(key string) string {
		key = strings.ToLower(key)
		key = strings.TrimPrefix(key, strings.ToLower(prefix))
		return strings.ReplaceAll(key, "_", ".")
	}

	if l.EnvFile != "" {
		envFileMap, err := godotenv.Read(l.EnvFile)
		switch {
		case err == nil:
			envMap := make(map[string]any)
			for key, value := range envFileMap {
				if strings.HasPrefix(strings.ToUpper(key), prefix) {
					envMap[transform(key)] = value
				}
			}
			if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
				return fmt.Errorf("load %s: %w", l.EnvFile, err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("read %s: %w", l.EnvFile, err)
		}
	}

	if err := k.Load(env.Provider(prefix, ".", transform), nil); err != nil {
		return fmt.Errorf("load environment: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

var validate = validator.New()

type LogConfig struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

type RedisConfig struct {
	Addr string `koanf:"addr"`
}

func maskDSN(dsn string) string {
	if dsn == "" {
		return "<not configured>"
	}
	parts := strings.Split(dsn, "@")
	if len(parts) == 2 {
		return "****@" + parts[1]
	}
	return "****"
}
