package main

import (
	"testing"

	"github.com/alfagnish/itemsd/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("builds json and console loggers", func(t *testing.T) {
		for _, format := range []string{"json", "console"} {
			l, err := newLogger(&config.Config{LogLevel: "debug", LogFormat: format})
			require.NoError(t, err)
			assert.NotNil(t, l)
		}
	})

	t.Run("rejects an unknown level", func(t *testing.T) {
		_, err := newLogger(&config.Config{LogLevel: "loud", LogFormat: "json"})
		assert.Error(t, err)
	})
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--port", "8081", "--seed", "0", "--grpc-addr", ":9000"}))

	port, _ := cmd.Flags().GetInt("port")
	seed, _ := cmd.Flags().GetInt("seed")
	addr, _ := cmd.Flags().GetString("grpc-addr")
	assert.Equal(t, 8081, port)
	assert.Equal(t, 0, seed)
	assert.Equal(t, ":9000", addr)
	assert.True(t, cmd.Flags().Changed("port"))
}

func TestApplyFlags(t *testing.T) {
	t.Run("flags override environment values", func(t *testing.T) {
		t.Setenv("PORT", "7000")
		t.Setenv("SEED_COUNT", "5")
		t.Setenv("GRPC_ADDR", ":7001")

		cmd := newRootCmd()
		require.NoError(t, cmd.ParseFlags([]string{"--port", "8081", "--grpc-addr", ":9000"}))

		cfg := config.Load()
		require.NoError(t, applyFlags(cfg, cmd.Flags()))

		assert.Equal(t, 8081, cfg.Port)
		assert.Equal(t, ":9000", cfg.GRPCAddr)
		assert.Equal(t, 5, cfg.SeedCount)
	})

	t.Run("unset flags keep environment values", func(t *testing.T) {
		t.Setenv("PORT", "7000")
		t.Setenv("SEED_COUNT", "5")

		cmd := newRootCmd()
		require.NoError(t, cmd.ParseFlags(nil))

		cfg := config.Load()
		require.NoError(t, applyFlags(cfg, cmd.Flags()))

		assert.Equal(t, 7000, cfg.Port)
		assert.Equal(t, 5, cfg.SeedCount)
	})

	t.Run("an explicit zero seed wins over the environment", func(t *testing.T) {
		t.Setenv("SEED_COUNT", "5")

		cmd := newRootCmd()
		require.NoError(t, cmd.ParseFlags([]string{"--seed", "0"}))

		cfg := config.Load()
		require.NoError(t, applyFlags(cfg, cmd.Flags()))

		assert.Equal(t, 0, cfg.SeedCount)
	})
}
