package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config carries the console's runtime settings. Everything domain-level is
// in-memory; config covers logging, dashboard defaults and export output.
type Config struct {
	Env string

	Log       LogConfig
	Dashboard DashboardConfig
	Export    ExportConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// DashboardConfig seeds the line item editor.
type DashboardConfig struct {
	DefaultTimezone   string
	CandidatePoolSize int
	CandidateBaseID   int
}

// ExportConfig controls where CSV/PDF exports are written and how many
// render workers run.
type ExportConfig struct {
	OutputDir string
	Workers   int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dashboard = DashboardConfig{
		DefaultTimezone:   v.GetString("DEFAULT_TIMEZONE"),
		CandidatePoolSize: v.GetInt("CANDIDATE_POOL_SIZE"),
		CandidateBaseID:   v.GetInt("CANDIDATE_BASE_ID"),
	}

	cfg.Export = ExportConfig{
		OutputDir: v.GetString("EXPORT_OUTPUT_DIR"),
		Workers:   v.GetInt("EXPORT_WORKERS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DEFAULT_TIMEZONE", "CST")
	v.SetDefault("CANDIDATE_POOL_SIZE", 15)
	v.SetDefault("CANDIDATE_BASE_ID", 10290)

	v.SetDefault("EXPORT_OUTPUT_DIR", "./exports")
	v.SetDefault("EXPORT_WORKERS", 2)
}
