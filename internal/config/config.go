package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DriverSQLite   DatabaseDriver = "sqlite"
	DriverPostgres DatabaseDriver = "postgres"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Gutendex
		Logging
		Tasks
		UpstreamProbe
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver   DatabaseDriver
		Path     string // sqlite file
		DSN      string // postgres connection string
		LogLevel string // gorm logger: silent, error, warn, info
	}
	Gutendex struct {
		BaseURL           string
		UserAgent         string
		Timeout           time.Duration
		ConnectTimeout    time.Duration
		MaxRetries        int
		RetryDelay        time.Duration
		RequestsPerSecond float64
	}
	Logging struct {
		Level   string
		NoColor bool
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	UpstreamProbe struct {
		Enabled  bool
		Schedule string // Cron format: "*/15 * * * *" = every 15 minutes
	}
)

// Load reads an optional .env file into the environment and builds the
// configuration. Variables already set in the environment win.
func Load(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}
	return NewConfig()
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	v.SetDefault("database_driver", string(DriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_level", "silent")

	v.SetDefault("gutendex_base_url", DefaultGutendexURL)
	v.SetDefault("gutendex_user_agent", DefaultUserAgent)
	v.SetDefault("gutendex_timeout", "30s")
	v.SetDefault("gutendex_connect_timeout", "10s")
	v.SetDefault("gutendex_max_retries", 3)
	v.SetDefault("gutendex_retry_delay", "2s")
	v.SetDefault("gutendex_requests_per_second", 2)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_no_color", false)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("upstream_probe_enabled", true)
	v.SetDefault("upstream_probe_schedule", "*/15 * * * *")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:   DatabaseDriver(v.GetString("DATABASE_DRIVER")),
			Path:     v.GetString("DATABASE_PATH"),
			DSN:      v.GetString("DATABASE_DSN"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Gutendex: Gutendex{
			BaseURL:           v.GetString("GUTENDEX_BASE_URL"),
			UserAgent:         v.GetString("GUTENDEX_USER_AGENT"),
			Timeout:           v.GetDuration("GUTENDEX_TIMEOUT"),
			ConnectTimeout:    v.GetDuration("GUTENDEX_CONNECT_TIMEOUT"),
			MaxRetries:        v.GetInt("GUTENDEX_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("GUTENDEX_RETRY_DELAY"),
			RequestsPerSecond: v.GetFloat64("GUTENDEX_REQUESTS_PER_SECOND"),
		},
		Logging: Logging{
			Level:   v.GetString("LOG_LEVEL"),
			NoColor: v.GetBool("LOG_NO_COLOR"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		UpstreamProbe: UpstreamProbe{
			Enabled:  v.GetBool("UPSTREAM_PROBE_ENABLED"),
			Schedule: v.GetString("UPSTREAM_PROBE_SCHEDULE"),
		},
	}
}

// Validate reports settings that would make startup fail later on.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("DATABASE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q (expected %q or %q)", c.Database.Driver, DriverSQLite, DriverPostgres)
	}

	if c.Gutendex.MaxRetries <= 0 {
		return fmt.Errorf("GUTENDEX_MAX_RETRIES must be positive, got %d", c.Gutendex.MaxRetries)
	}
	if c.Gutendex.Timeout <= 0 {
		return fmt.Errorf("GUTENDEX_TIMEOUT must be positive")
	}
	if c.Tasks.Enabled && c.Tasks.Workers <= 0 {
		return fmt.Errorf("TASK_WORKERS must be positive when tasks are enabled")
	}
	return nil
}
