package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port      int
	LogLevel  string
	LogFormat string

	// SavePath is the sqlite save file; empty selects the in-memory store.
	SavePath string
	// DataDir holds the card catalog YAML files.
	DataDir string

	// ReducedPower slows the income and autosave ticks, the way the
	// original throttles itself on low-end mobile devices.
	ReducedPower bool

	// BoosterIncomeEnabled wires active booster chronosBoost effects into
	// income accrual. Off by default to match the original behavior, where
	// booster effects are declared but never consumed by income math.
	BoosterIncomeEnabled bool

	// BaseIncomeRate is the universe's base chronos per minute.
	BaseIncomeRate float64

	// InitTimeout bounds startup; on expiry the recovery UI is served
	// instead of hanging.
	InitTimeout time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		SavePath:  getEnv("SAVE_PATH", "cosmogenesis.db"),
		DataDir:   getEnv("DATA_DIR", "data"),
	}

	portStr := getEnv("PORT", "8420")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	cfg.ReducedPower, err = getBool("REDUCED_POWER", false)
	if err != nil {
		return nil, err
	}

	cfg.BoosterIncomeEnabled, err = getBool("BOOSTER_INCOME_ENABLED", false)
	if err != nil {
		return nil, err
	}

	rateStr := getEnv("BASE_INCOME_RATE", "1.0")
	rate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil || rate < 0 {
		return nil, fmt.Errorf("invalid BASE_INCOME_RATE value %q", rateStr)
	}
	cfg.BaseIncomeRate = rate

	timeoutStr := getEnv("INIT_TIMEOUT", "15s")
	cfg.InitTimeout, err = time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid INIT_TIMEOUT value: %w", err)
	}

	return cfg, nil
}

// IncomeTick returns the income loop interval: 1s, or 3s in reduced-power
// mode.
func (c *Config) IncomeTick() time.Duration {
	if c.ReducedPower {
		return 3 * time.Second
	}
	return time.Second
}

// AutosaveTick returns the autosave interval: 30s, or 60s in reduced-power
// mode.
func (c *Config) AutosaveTick() time.Duration {
	if c.ReducedPower {
		return time.Minute
	}
	return 30 * time.Second
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q", key, value)
	}
	return parsed, nil
}
