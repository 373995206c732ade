package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/Pawel-dev5/character-map-app/internal/storage"
	"github.com/Pawel-dev5/character-map-app/pkg/grid"
)

// Storage backends
const (
	BackendFile   = storage.BackendFile
	BackendRedis  = storage.BackendRedis
	BackendMemory = storage.BackendMemory
)

type Config struct {
	Port         string     `env:"PORT" yaml:"port"`
	Environment  string     `env:"ENVIRONMENT" yaml:"environment"`
	LogLevelName string     `env:"LOG_LEVEL" yaml:"log_level"`
	LogLevel     slog.Level `yaml:"-"`
	LogFile      string     `env:"LOG_FILE" yaml:"log_file"`

	StorageBackend string `env:"STORAGE_BACKEND" yaml:"storage_backend"`
	StateFile      string `env:"STATE_FILE" yaml:"state_file"`
	RedisURL       string `env:"REDIS_URL" yaml:"redis_url"`

	ColorAPIURL     string        `env:"COLOR_API_URL" yaml:"color_api_url"`
	GeocodingAPIURL string        `env:"GEOCODING_API_URL" yaml:"geocoding_api_url"`
	UserAgent       string        `env:"USER_AGENT" yaml:"user_agent"`
	LookupTimeout   time.Duration `env:"LOOKUP_TIMEOUT" yaml:"lookup_timeout"`
	Language        string        `env:"LANGUAGE" yaml:"language"`

	Debounce  time.Duration `env:"DEBOUNCE" yaml:"debounce"`
	BlurGrace time.Duration `env:"BLUR_GRACE" yaml:"blur_grace"`

	GridWidth  int `env:"GRID_WIDTH" yaml:"grid_width"`
	GridHeight int `env:"GRID_HEIGHT" yaml:"grid_height"`
}

// Defaults returns the configuration used when nothing is set
func Defaults() Config {
	return Config{
		Port:            "8080",
		Environment:     "development",
		LogLevelName:    "info",
		LogLevel:        slog.LevelInfo,
		LogFile:         "character-map.log",
		StorageBackend:  BackendFile,
		StateFile:       "data/character-map.json",
		RedisURL:        "localhost:6379",
		ColorAPIURL:     "https://www.thecolorapi.com",
		GeocodingAPIURL: "https://nominatim.openstreetmap.org",
		UserAgent:       "character-map-app/1.0",
		LookupTimeout:   5 * time.Second,
		Language:        "en",
		Debounce:        300 * time.Millisecond,
		BlurGrace:       200 * time.Millisecond,
		GridWidth:       grid.DefaultBounds.Width,
		GridHeight:      grid.DefaultBounds.Height,
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE if set, then environment variables.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}
	return nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var errs []error
	switch c.StorageBackend {
	case BackendFile:
		if c.StateFile == "" {
			errs = append(errs, errors.New("STATE_FILE is required for the file backend"))
		}
	case BackendRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis backend"))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend))
	}
	if c.GridWidth <= 0 || c.GridHeight <= 0 {
		errs = append(errs, fmt.Errorf("grid must be at least 1x1, got %dx%d", c.GridWidth, c.GridHeight))
	}
	if c.LookupTimeout <= 0 {
		errs = append(errs, errors.New("LOOKUP_TIMEOUT must be positive"))
	}
	if c.Debounce < 0 || c.BlurGrace < 0 {
		errs = append(errs, errors.New("DEBOUNCE and BLUR_GRACE cannot be negative"))
	}
	return errors.Join(errs...)
}

// Bounds returns the configured grid size
func (c *Config) Bounds() grid.Bounds {
	return grid.Bounds{Width: c.GridWidth, Height: c.GridHeight}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
