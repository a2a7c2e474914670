package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from the environment.
type Config struct {
	Port        int      // HTTP listen port
	GRPCAddr    string   // gRPC listen address, empty disables the gRPC server
	SeedCount   int      // Placeholder items created at startup
	LogLevel    string   // zap level name
	LogFormat   string   // "json" or "console"
	CORSOrigins []string // Allowed CORS origins
}

// ListenAddr returns the HTTP listen address for Port.
func (c *Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Load reads a .env file when present, then environment variables,
// falling back to defaults.
func Load() *Config {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	return &Config{
		Port:        envOrDefaultInt("PORT", 5000),
		GRPCAddr:    envOrDefault("GRPC_ADDR", ""),
		SeedCount:   envOrDefaultInt("SEED_COUNT", 20),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		LogFormat:   envOrDefault("LOG_FORMAT", "json"),
		CORSOrigins: envOrDefaultList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envOrDefaultList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
