// Package config loads the planning service settings from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAddr          = "FIELDCOVER_ADDR"
	EnvPlanTimeout   = "FIELDCOVER_PLAN_TIMEOUT"
	EnvMaxCells      = "FIELDCOVER_MAX_CELLS"
	EnvBodyLimit     = "FIELDCOVER_BODY_LIMIT"
	EnvRequestLog    = "FIELDCOVER_REQUEST_LOG"
	EnvMaxExpansions = "FIELDCOVER_MAX_EXPANSIONS"
)

// ErrInvalid wraps every malformed or out-of-range setting.
var ErrInvalid = errors.New("config: invalid setting")

// Config holds the service settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// PlanTimeout bounds each planning request.
	PlanTimeout time.Duration
	// MaxCells caps rows×cols of a submitted field.
	MaxCells int
	// BodyLimit is an echo body-limit size such as "2M".
	BodyLimit string
	// RequestLog toggles the request logger middleware.
	RequestLog bool
	// MaxExpansions caps each A* search; 0 disables the cap.
	MaxExpansions int
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Addr:        ":8080",
		PlanTimeout: 2 * time.Second,
		MaxCells:    10000,
		BodyLimit:   "2M",
		RequestLog:  true,
	}
}

// Load reads the given .env files (".env" when none are named) into the
// process environment without overriding variables already set, then
// builds a Config from the environment. Missing files are not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the environment, falling back to Default
// for unset variables.
func FromEnv() (*Config, error) {
	cfg := Default()
	cfg.Addr = getEnv(EnvAddr, cfg.Addr)
	cfg.BodyLimit = getEnv(EnvBodyLimit, cfg.BodyLimit)

	var err error
	if cfg.PlanTimeout, err = envDuration(EnvPlanTimeout, cfg.PlanTimeout); err != nil {
		return nil, err
	}
	if cfg.MaxCells, err = envInt(EnvMaxCells, cfg.MaxCells); err != nil {
		return nil, err
	}
	if cfg.RequestLog, err = envBool(EnvRequestLog, cfg.RequestLog); err != nil {
		return nil, err
	}
	if cfg.MaxExpansions, err = envInt(EnvMaxExpansions, cfg.MaxExpansions); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: %s is empty", ErrInvalid, EnvAddr)
	case c.PlanTimeout <= 0:
		return fmt.Errorf("%w: %s must be positive (%s)", ErrInvalid, EnvPlanTimeout, c.PlanTimeout)
	case c.MaxCells < 1:
		return fmt.Errorf("%w: %s must be ≥ 1 (%d)", ErrInvalid, EnvMaxCells, c.MaxCells)
	case c.MaxExpansions < 0:
		return fmt.Errorf("%w: %s cannot be negative (%d)", ErrInvalid, EnvMaxExpansions, c.MaxExpansions)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %w", ErrInvalid, key, v, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %w", ErrInvalid, key, v, err)
	}
	return d, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q: %w", ErrInvalid, key, v, err)
	}
	return b, nil
}
