package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"

	"github.com/terraincognita07/pregcare/internal/models"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env      string
	Port     int
	DBPath   string
	Timezone string

	Log       LogConfig
	Cycle     CycleConfig
	Scheduler SchedulerConfig
	Metrics   MetricsConfig
	Calendar  CalendarConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type CycleConfig struct {
	DefaultLength   int
	LutealPhaseDays int
}

// SchedulerConfig controls the nightly phase rollover job.
type SchedulerConfig struct {
	Enabled  bool
	Schedule string
}

type MetricsConfig struct {
	Enabled bool
}

// CalendarConfig names the iCalendar feed.
type CalendarConfig struct {
	FeedName string
}

// Load reads configuration from the environment, with an optional .env file
// in the working directory.
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
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Env:      strings.ToLower(strings.TrimSpace(v.GetString("ENV"))),
		Port:     v.GetInt("PORT"),
		DBPath:   strings.TrimSpace(v.GetString("DB_PATH")),
		Timezone: strings.TrimSpace(v.GetString("TZ")),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cycle = CycleConfig{
		DefaultLength:   v.GetInt("DEFAULT_CYCLE_LENGTH"),
		LutealPhaseDays: v.GetInt("LUTEAL_PHASE_DAYS"),
	}

	cfg.Scheduler = SchedulerConfig{
		Enabled:  v.GetBool("ENABLE_SCHEDULER"),
		Schedule: strings.TrimSpace(v.GetString("ROLLOVER_SCHEDULE")),
	}

	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("ENABLE_METRICS"),
	}

	cfg.Calendar = CalendarConfig{
		FeedName: strings.TrimSpace(v.GetString("CALENDAR_FEED_NAME")),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("DB_PATH", filepath.Join("data", "pregcare.db"))
	v.SetDefault("TZ", "UTC")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DEFAULT_CYCLE_LENGTH", models.DefaultCycleLength)
	v.SetDefault("LUTEAL_PHASE_DAYS", models.DefaultLutealPhaseDays)

	v.SetDefault("ENABLE_SCHEDULER", true)
	v.SetDefault("ROLLOVER_SCHEDULE", "5 0 * * *")
	v.SetDefault("ENABLE_METRICS", true)
	v.SetDefault("CALENDAR_FEED_NAME", "PregCare")
}

// Validate rejects values the service cannot start with.
func (cfg *Config) Validate() error {
	var problems []string

	if cfg.Port <= 0 || cfg.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT must be between 1 and 65535, got %d", cfg.Port))
	}
	if cfg.DBPath == "" {
		problems = append(problems, "DB_PATH must not be empty")
	}
	if cfg.Cycle.DefaultLength < models.MinCycleLength || cfg.Cycle.DefaultLength > models.MaxCycleLength {
		problems = append(problems, fmt.Sprintf(
			"DEFAULT_CYCLE_LENGTH must be between %d and %d, got %d",
			models.MinCycleLength, models.MaxCycleLength, cfg.Cycle.DefaultLength,
		))
	}
	if cfg.Cycle.LutealPhaseDays <= 0 || cfg.Cycle.LutealPhaseDays >= cfg.Cycle.DefaultLength {
		problems = append(problems, fmt.Sprintf("LUTEAL_PHASE_DAYS must be positive and shorter than the cycle, got %d", cfg.Cycle.LutealPhaseDays))
	}
	if cfg.Scheduler.Enabled {
		if _, err := cron.ParseStandard(cfg.Scheduler.Schedule); err != nil {
			problems = append(problems, fmt.Sprintf("ROLLOVER_SCHEDULE is not a valid cron expression: %v", err))
		}
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

func (cfg *Config) IsProduction() bool {
	return cfg.Env == EnvProduction
}

// Location resolves Timezone and reports whether it had to fall back to UTC.
func (cfg *Config) Location() (*time.Location, bool) {
	if cfg.Timezone == "" {
		return time.UTC, false
	}
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC, true
	}
	return location, false
}

func (cfg *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", cfg.Port)
}
