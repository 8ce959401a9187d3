package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://localhost/taskboard")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, 168*time.Hour, cfg.TokenTTL)
	require.Equal(t, 15*time.Minute, cfg.LoginWindow)
	require.Equal(t, 5, cfg.LoginMaxFails)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://localhost/taskboard")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ADDR", ":3000")
	t.Setenv("TOKEN_TTL", "24h")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":3000", cfg.Addr)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}
