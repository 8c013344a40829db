package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/newthinker/pulse/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig              `mapstructure:"server"`
	Source    SourceConfig              `mapstructure:"source"`
	Scheduler SchedulerConfig           `mapstructure:"scheduler"`
	Stream    StreamConfig              `mapstructure:"stream"`
	Notifiers map[string]NotifierConfig `mapstructure:"notifiers"`
	Execution ExecutionConfig           `mapstructure:"execution"`
	Series    SeriesConfig              `mapstructure:"series"`
	Metrics   MetricsConfig             `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	Mode   string `mapstructure:"mode"`
	APIKey string `mapstructure:"api_key"`
}

// SourceConfig points the fetcher at the remote signal API. An empty
// base_url disables the remote path entirely and every refresh falls
// back to the mock generator.
type SourceConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SchedulerConfig struct {
	Interval  time.Duration `mapstructure:"interval"`
	Asset     string        `mapstructure:"asset"`
	OTC       bool          `mapstructure:"otc"`
	Timeframe string        `mapstructure:"timeframe"`
}

type StreamConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	URL           string        `mapstructure:"url"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
}

type NotifierConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	URL      string `mapstructure:"url"`
	// Email notifier fields
	Host     string   `mapstructure:"host"`
	Port     int      `mapstructure:"port"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	From     string   `mapstructure:"from"`
	To       []string `mapstructure:"to"`
	// Webhook notifier fields
	Headers map[string]string `mapstructure:"headers"`
}

type ExecutionConfig struct {
	TradeURL string `mapstructure:"trade_url"`
}

type SeriesConfig struct {
	Count      int     `mapstructure:"count"`
	StartPrice float64 `mapstructure:"start_price"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Mode: "release",
		},
		Source: SourceConfig{
			Timeout: 8 * time.Second,
		},
		Scheduler: SchedulerConfig{
			Interval:  30 * time.Second,
			Asset:     "EURUSD",
			OTC:       true,
			Timeframe: "1m",
		},
		Stream: StreamConfig{
			Enabled:       false,
			ReconnectWait: 5 * time.Second,
		},
		Execution: ExecutionConfig{
			TradeURL: "https://pocketoption.com/en/sign-in",
		},
		Series: SeriesConfig{
			Count:      50,
			StartPrice: 1.0850,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	// Scheduler validation
	if c.Scheduler.Interval <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("scheduler interval must be positive, got %s", c.Scheduler.Interval))
	}
	if c.Scheduler.Asset == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("scheduler asset is required"))
	}
	if !core.Expiry(c.Scheduler.Timeframe).IsValid() {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown timeframe %q", c.Scheduler.Timeframe))
	}

	// Stream validation
	if c.Stream.Enabled && c.Stream.URL == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("stream url required when stream is enabled"))
	}

	// Series validation
	if c.Series.Count < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("series count must be at least 1, got %d", c.Series.Count))
	}
	if c.Series.StartPrice <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("series start_price must be positive, got %f", c.Series.StartPrice))
	}

	// Notifier validation - enabled notifiers need their credentials
	for name, n := range c.Notifiers {
		if !n.Enabled {
			continue
		}
		switch name {
		case "telegram":
			if n.BotToken == "" || n.ChatID == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("telegram notifier requires bot_token and chat_id"))
			}
		case "webhook":
			if n.URL == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("webhook notifier requires url"))
			}
		case "email":
			if n.Host == "" || n.From == "" || len(n.To) == 0 {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("email notifier requires host, from and to"))
			}
		}
	}

	return nil
}
