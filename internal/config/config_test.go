package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"MELT_ADDR", "MELT_ENGINE", "MELT_NAMESPACE", "MELT_LOG_LEVEL", "MELT_DEV"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, &Config{
		Addr:      ":8080",
		Engine:    "echo",
		Namespace: "melt.internal.demo",
		LogLevel:  "info",
	}, cfg)
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	clearEnv(t)
	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("MELT_ADDR=:9090\nMELT_ENGINE=Gin\nMELT_DEV=true\nMELT_LOG_LEVEL=debug\n"), 0o644))
	t.Setenv("MELT_ADDR", ":7070")

	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "gin", cfg.Engine)
	assert.True(t, cfg.Dev)

	logger, err := cfg.Logger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Setenv("MELT_ENGINE", "tomcat")
	_, err := Load(missing)
	assert.ErrorContains(t, err, "MELT_ENGINE")

	t.Setenv("MELT_ENGINE", "chi")
	t.Setenv("MELT_LOG_LEVEL", "loud")
	_, err = Load(missing)
	assert.ErrorContains(t, err, "MELT_LOG_LEVEL")
}

func TestEnvBool(t *testing.T) {
	t.Setenv("MELT_DEV", "not-a-bool")
	assert.True(t, envBool("MELT_DEV", true))

	t.Setenv("MELT_DEV", "0")
	assert.False(t, envBool("MELT_DEV", true))
}
