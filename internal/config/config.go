package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Mapbox    MapboxConfig
	Map       MapConfig
	Store     StoreConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
	MongoDB   MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string
}

// MapboxConfig contains options for the Mapbox map collaborator.
type MapboxConfig struct {
	BaseURL       string
	Style         string
	ValidateToken bool
}

// MapConfig holds map view behavior.
type MapConfig struct {
	// ReconcileStrategy is "recreate" (drop every marker on each pass) or "keyed".
	ReconcileStrategy string
}

// StoreConfig controls the in-memory store.
type StoreConfig struct {
	SeedDemoData bool
	JitterSeed   uint64
}

// SheetsConfig contains configuration required to append herd reports to Google Sheets.
// Both fields empty disables the sheet sink.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the sheet sink is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// MongoDBConfig holds settings for MongoDB. An empty URI disables the sink.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Enabled reports whether the MongoDB sink is configured.
func (c MongoDBConfig) Enabled() bool {
	return c.URI != ""
}

const (
	StrategyRecreate = "recreate"
	StrategyKeyed    = "keyed"
)

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	validateToken, err := getenvBool("MAPBOX_VALIDATE_TOKEN", false)
	if err != nil {
		return nil, err
	}
	seedDemo, err := getenvBool("SEED_DEMO_DATA", true)
	if err != nil {
		return nil, err
	}
	jitterSeed, err := strconv.ParseUint(getenvWithDefault("JITTER_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("JITTER_SEED must be an unsigned integer: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: strings.ToLower(getenvWithDefault("LOG_LEVEL", "info")),
		},
		Mapbox: MapboxConfig{
			BaseURL:       getenvWithDefault("MAPBOX_BASE_URL", "https://api.mapbox.com"),
			Style:         getenvWithDefault("MAPBOX_STYLE", "mapbox/satellite-streets-v12"),
			ValidateToken: validateToken,
		},
		Map: MapConfig{
			ReconcileStrategy: strings.ToLower(getenvWithDefault("MAP_RECONCILE_STRATEGY", StrategyRecreate)),
		},
		Store: StoreConfig{
			SeedDemoData: seedDemo,
			JitterSeed:   jitterSeed,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * 5"),
			Timezone:     getenvWithDefault("TIMEZONE", "Africa/Nairobi"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "herdtrack"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.Mapbox.BaseURL == "":
		return errors.New("MAPBOX_BASE_URL must not be empty")
	case c.Mapbox.Style == "":
		return errors.New("MAPBOX_STYLE must not be empty")
	}

	switch c.Map.ReconcileStrategy {
	case StrategyRecreate, StrategyKeyed:
	default:
		return fmt.Errorf("MAP_RECONCILE_STRATEGY must be %q or %q, got %q", StrategyRecreate, StrategyKeyed, c.Map.ReconcileStrategy)
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be provided together")
	}

	if c.MongoDB.Enabled() && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided when MONGODB_URI is set")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return parsed, nil
}
