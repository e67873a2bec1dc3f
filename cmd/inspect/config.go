package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds inspect settings.
type Config struct {
	Log LogConfig
}

// LogConfig selects the zap logger built for the command.
type LogConfig struct {
	Level       string
	Development bool
}

// loadConfig reads configuration from an optional TOML file and the
// environment. Env var overrides use prefix LEDGERTYPES_.
func loadConfig(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv("LEDGERTYPES_CONFIG")
	}

	v.SetEnvPrefix("LEDGERTYPES")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// newLogger builds a logger writing to stderr.
func newLogger(c LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
