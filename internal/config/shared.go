package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port         string        `mapstructure:"port"`
		MetricsPort  string        `mapstructure:"metrics_port"`
		LogLevel     string        `mapstructure:"log_level"`
		QueryTimeout time.Duration `mapstructure:"query_timeout"`
	} `mapstructure:"server"`
	Database struct {
		// Driver is "postgres" or "sqlite".
		Driver   string `mapstructure:"driver"`
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		// Path is the SQLite file, only read when Driver is "sqlite".
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Charts struct {
		DefaultPeriod time.Duration `mapstructure:"default_period"`
		DefaultLimit  int           `mapstructure:"default_limit"`
		MaxLimit      int           `mapstructure:"max_limit"`
	} `mapstructure:"charts"`
	Storage struct {
		Provider     string `mapstructure:"provider"`
		KeyID        string `mapstructure:"key_id"`
		AppKey       string `mapstructure:"app_key"`
		Endpoint     string `mapstructure:"endpoint"`
		Region       string `mapstructure:"region"`
		BucketIngest string `mapstructure:"bucket_ingest"`
		LocalPath    string `mapstructure:"local_path"`
	} `mapstructure:"storage"`
	Ingest struct {
		PollingInterval int `mapstructure:"polling_interval_seconds"`
	} `mapstructure:"ingest"`
}

var keys = []string{
	"server.port",
	"server.metrics_port",
	"server.log_level",
	"server.query_timeout",

	"database.driver",
	"database.host",
	"database.port",
	"database.user",
	"database.password",
	"database.name",
	"database.path",

	"charts.default_period",
	"charts.default_limit",
	"charts.max_limit",

	"storage.provider",
	"storage.key_id",
	"storage.app_key",
	"storage.endpoint",
	"storage.region",
	"storage.bucket_ingest",
	"storage.local_path",

	"ingest.polling_interval_seconds",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8081")
	v.SetDefault("server.metrics_port", ":9091")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.query_timeout", "10s")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "radio")
	v.SetDefault("database.path", "radio.db")

	// One week.
	v.SetDefault("charts.default_period", "168h")
	v.SetDefault("charts.default_limit", 40)
	v.SetDefault("charts.max_limit", 200)

	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.local_path", "./data")
	v.SetDefault("storage.bucket_ingest", "ingest")

	v.SetDefault("ingest.polling_interval_seconds", 10)
}

// Load reads config.yaml (from . or ..) and RADIO_* environment variables.
// A missing config file is not an error.
func Load() (*Config, error) {
	return load(viper.New(), []string{".", "../"})
}

func load(v *viper.Viper, paths []string) (*Config, error) {
	v.SetEnvPrefix("RADIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		log.Println("Info: config.yaml not found, using Environment Variables only.")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that only make sense together.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unknown database driver %q", c.Database.Driver)
	}

	if c.Charts.DefaultPeriod <= 0 {
		return fmt.Errorf("config: charts.default_period must be positive, got %s", c.Charts.DefaultPeriod)
	}
	if c.Charts.MaxLimit <= 0 {
		return fmt.Errorf("config: charts.max_limit must be positive, got %d", c.Charts.MaxLimit)
	}
	if c.Charts.DefaultLimit > c.Charts.MaxLimit {
		return fmt.Errorf("config: charts.default_limit %d exceeds charts.max_limit %d", c.Charts.DefaultLimit, c.Charts.MaxLimit)
	}
	if c.Server.QueryTimeout <= 0 {
		return fmt.Errorf("config: server.query_timeout must be positive, got %s", c.Server.QueryTimeout)
	}

	switch c.Storage.Provider {
	case "local", "s3", "b2":
	default:
		return fmt.Errorf("config: unknown storage provider %q", c.Storage.Provider)
	}
	if c.Storage.Provider != "local" && c.Storage.KeyID == "" {
		return errors.New("config: storage key id is missing (RADIO_STORAGE_KEY_ID)")
	}
	return nil
}

// LogLevel maps server.log_level onto slog, falling back to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Server.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
