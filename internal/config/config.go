// Package config loads the settings of the demo server from the environment.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/melt-go/melt/pkg/melt/adapters"
)

// Config is the demo server configuration
type Config struct {
	Addr      string // MELT_ADDR
	Engine    string // MELT_ENGINE: echo, gin, fiber or chi
	Namespace string // MELT_NAMESPACE, scanned on refresh
	LogLevel  string // MELT_LOG_LEVEL
	Dev       bool   // MELT_DEV switches to the development logger
}

// Load reads .env files (if present) and populates a Config from environment
// variables. Variables already set in the environment win over the files.
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg := &Config{
		Addr:      env("MELT_ADDR", ":8080"),
		Engine:    strings.ToLower(env("MELT_ENGINE", "echo")),
		Namespace: env("MELT_NAMESPACE", "melt.internal.demo"),
		LogLevel:  env("MELT_LOG_LEVEL", "info"),
		Dev:       envBool("MELT_DEV", false),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the engine name and log level
func (c *Config) Validate() error {
	if !slices.Contains(adapters.Engines, c.Engine) {
		return fmt.Errorf("MELT_ENGINE %q: expected one of %s", c.Engine, strings.Join(adapters.Engines, ", "))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("MELT_LOG_LEVEL: %w", err)
	}
	return nil
}

// Logger builds the zap logger described by the configuration
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	if c.Dev {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
