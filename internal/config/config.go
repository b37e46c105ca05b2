// Package config loads runtime settings from the environment and optional
// .env files.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds the service settings.
type Config struct {
	Env     string
	Port    string
	BaseURL string

	DBType string
	DBPath string
	DBURL  string

	LogLevel  string
	LogPretty bool

	SessionWords     int
	RetryDelay       time.Duration
	AdvanceDelay     time.Duration
	RevealDelay      time.Duration
	SessionTTL       time.Duration
	TelemetryTimeout time.Duration
	SeedDeck         bool
}

// New returns a viper instance with every default set and the environment
// bound. The CLI binds its flags onto the same keys.
func New() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("env", "dev")
	v.SetDefault("port", "8080")
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("db_type", "sqlite")
	v.SetDefault("db_path", "promjum.db")
	v.SetDefault("db_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)
	v.SetDefault("session_words", 10)
	v.SetDefault("retry_delay", 300*time.Millisecond)
	v.SetDefault("advance_delay", 1000*time.Millisecond)
	v.SetDefault("reveal_delay", 1500*time.Millisecond)
	v.SetDefault("session_ttl", 30*time.Minute)
	v.SetDefault("telemetry_timeout", 5*time.Second)
	v.SetDefault("seed_deck", true)
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads .env.<env> and then .env from dir when they exist.
// Variables already set in the process win.
func LoadDotEnv(dir string) error {
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		env = "dev"
	}
	for _, name := range []string{".env." + env, ".env"} {
		path := name
		if dir != "" {
			path = strings.TrimRight(dir, "/") + "/" + name
		}
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return errors.Wrapf(err, "stat %s", path)
		}
		if err := godotenv.Load(path); err != nil {
			return errors.Wrapf(err, "load %s", path)
		}
	}
	return nil
}

// Load reads .env files from the working directory and builds a Config.
func Load() (*Config, error) {
	if err := LoadDotEnv(""); err != nil {
		return nil, err
	}
	return FromViper(New())
}

// FromViper builds a Config from v and validates it.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:              v.GetString("env"),
		Port:             v.GetString("port"),
		BaseURL:          v.GetString("base_url"),
		DBType:           strings.ToLower(v.GetString("db_type")),
		DBPath:           v.GetString("db_path"),
		DBURL:            v.GetString("db_url"),
		LogLevel:         v.GetString("log_level"),
		LogPretty:        v.GetBool("log_pretty"),
		SessionWords:     v.GetInt("session_words"),
		RetryDelay:       v.GetDuration("retry_delay"),
		AdvanceDelay:     v.GetDuration("advance_delay"),
		RevealDelay:      v.GetDuration("reveal_delay"),
		SessionTTL:       v.GetDuration("session_ttl"),
		TelemetryTimeout: v.GetDuration("telemetry_timeout"),
		SeedDeck:         v.GetBool("seed_deck"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	switch c.DBType {
	case "sqlite", "sqlite3", "":
		if c.DBPath == "" {
			return errors.New("DB_PATH is required for sqlite")
		}
	case "postgres", "postgresql", "mysql":
		if c.DBURL == "" {
			return errors.Errorf("DB_URL is required for %s", c.DBType)
		}
	default:
		return errors.Errorf("unsupported DB_TYPE %q", c.DBType)
	}
	if c.SessionWords <= 0 {
		return errors.Errorf("SESSION_WORDS must be positive, got %d", c.SessionWords)
	}
	if c.RetryDelay < 0 || c.AdvanceDelay < 0 || c.RevealDelay < 0 {
		return errors.New("feedback delays must not be negative")
	}
	return nil
}
