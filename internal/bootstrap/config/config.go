package config

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"setu/internal/bootstrap/logging"
	"setu/internal/errs"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Server     ServerConfig     `mapstructure:"server"`
	Translator TranslatorConfig `mapstructure:"translator"`
	Network    NetworkConfig    `mapstructure:"network"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// TranslatorConfig selects the hosted translation backend. An empty APIKey
// is valid: the listing service then uses the deterministic fallback parser.
type TranslatorConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// NetworkConfig tunes the simulated buyer network. NATSURL is optional;
// when empty, events only reach the network log and websocket feed.
type NetworkConfig struct {
	NATSURL    string `mapstructure:"nats_url"`
	BuyersFile string `mapstructure:"buyers_file"`
	MaxBids    int    `mapstructure:"max_bids"`
	MinDelayMS int    `mapstructure:"min_delay_ms"`
	MaxDelayMS int    `mapstructure:"max_delay_ms"`
}

func (n NetworkConfig) MinDelay() time.Duration {
	return time.Duration(n.MinDelayMS) * time.Millisecond
}

func (n NetworkConfig) MaxDelay() time.Duration {
	return time.Duration(n.MaxDelayMS) * time.Millisecond
}

func Load(ctx context.Context, configFile string) (Config, error) {
	if ctx == nil {
		return Config{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Config{}, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.config"))

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SETU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			// Keep default and env-backed config when no file is provided.
			logging.Warn(logCtx, "config file not found, fallback to defaults and env")
		} else {
			return Config{}, errs.Wrap(err, "read config")
		}
	} else {
		logging.Info(logCtx, "using config file", slog.String("path", v.ConfigFileUsed()))

		// Surface edits so simulator knobs can be tuned mid-demo and
		// picked up on the next restart of the affected command.
		v.OnConfigChange(func(e fsnotify.Event) {
			logging.Info(logCtx, "config file changed", slog.String("path", e.Name), slog.String("op", e.Op.String()))
		})
		v.WatchConfig()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Wrap(err, "unmarshal config")
	}

	if cfg.Database.DSN == "" {
		return Config{}, errors.New("database.dsn is required")
	}
	if cfg.Network.MaxBids <= 0 {
		return Config{}, errors.New("network.max_bids must be positive")
	}
	if cfg.Network.MinDelayMS < 0 || cfg.Network.MaxDelayMS < cfg.Network.MinDelayMS {
		return Config{}, errors.New("network delay bounds are invalid")
	}

	logging.Info(
		logCtx,
		"config loaded",
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
		slog.String("database_driver", cfg.Database.Driver),
		slog.Bool("translator_configured", cfg.Translator.APIKey != ""),
		slog.Bool("nats_configured", cfg.Network.NATSURL != ""),
	)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "setu")
	v.SetDefault("app.env", "local")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/setu.sqlite")
	v.SetDefault("server.addr", ":8190")
	v.SetDefault("translator.api_key", "")
	v.SetDefault("translator.model", "gpt-4o-mini")
	v.SetDefault("translator.base_url", "")
	v.SetDefault("network.nats_url", "")
	v.SetDefault("network.buyers_file", "")
	v.SetDefault("network.max_bids", 3)
	v.SetDefault("network.min_delay_ms", 800)
	v.SetDefault("network.max_delay_ms", 4000)
}
