package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"Labusch/internal/calc/strength"
	"Labusch/internal/calc/sweep"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	TLSCert     string
	TLSKey      string
	DatabaseURL string
	TokenKey    string
	CatalogPath string
	Model       strength.Model
	Step        float64
	Workers     int
	MaxPoints   int
	LogLevel    string
	LogFormat   string
}

// Load reads .env files (when present) and then the process environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load env file: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		Addr:        getenv("ADDR", ":8080"),
		TLSCert:     os.Getenv("TLS_CERT"),
		TLSKey:      os.Getenv("TLS_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		TokenKey:    os.Getenv("TOKEN_KEY"),
		CatalogPath: os.Getenv("CATALOG_PATH"),
		Model:       strength.DefaultModel(),
		Step:        sweep.DefaultStep,
		Workers:     runtime.NumCPU(),
		MaxPoints:   sweep.DefaultMaxPoints,
		LogLevel:    getenv("LOG_LEVEL", "info"),
		LogFormat:   getenv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.Model, err = cfg.Model.WithExponent(os.Getenv("MISFIT_EXPONENT")); err != nil {
		return Config{}, fmt.Errorf("config: MISFIT_EXPONENT: %w", err)
	}
	if v := os.Getenv("SWEEP_STEP"); v != "" {
		step, perr := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if perr != nil {
			return Config{}, fmt.Errorf("config: SWEEP_STEP: %w", perr)
		}
		if _, err := sweep.Steps(step); err != nil {
			return Config{}, fmt.Errorf("config: SWEEP_STEP: %w", err)
		}
		cfg.Step = step
	}
	if v := os.Getenv("SWEEP_WORKERS"); v != "" {
		n, perr := strconv.Atoi(strings.TrimSpace(v))
		if perr != nil || n < 1 {
			return Config{}, fmt.Errorf("config: SWEEP_WORKERS must be a positive integer, got %q", v)
		}
		cfg.Workers = n
	}
	if v := os.Getenv("MAX_POINTS"); v != "" {
		n, perr := strconv.Atoi(strings.TrimSpace(v))
		if perr != nil || n < 1 {
			return Config{}, fmt.Errorf("config: MAX_POINTS must be a positive integer, got %q", v)
		}
		cfg.MaxPoints = n
	}
	if (cfg.TLSCert == "") != (cfg.TLSKey == "") {
		return Config{}, errors.New("config: TLS_CERT and TLS_KEY must be set together")
	}
	return cfg, nil
}

// RequireServer checks the settings only the HTTP server needs.
func (c Config) RequireServer() error {
	if c.TokenKey == "" {
		return errors.New("config: TOKEN_KEY environment variable is not set")
	}
	return nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
