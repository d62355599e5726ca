package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      App      `mapstructure:"app"`
	Data     Data     `mapstructure:"data"`
	Analysis Analysis `mapstructure:"analysis"`
	Server   Server   `mapstructure:"server"`
}

// App holds general application configuration
type App struct {
	Debug      bool   `mapstructure:"debug"`
	LogLevel   string `mapstructure:"log_level"`
	ConfigFile string `mapstructure:"config_file"`
}

// Data holds the corpus source configuration
type Data struct {
	File        string `mapstructure:"file"`         // Path to the JSON comment export
	Category    string `mapstructure:"category"`     // Restrict ingestion to one category ("" = all)
	StrictDates bool   `mapstructure:"strict_dates"` // Drop comments with unparseable dates instead of keeping them dateless
}

// Analysis holds the default knobs surfaced by the UI sidebar
type Analysis struct {
	Keywords      string `mapstructure:"keywords"`       // Comma-separated default keyword list
	TopN          int    `mapstructure:"top_n"`          // Default top-N for rankings (clamped to [3,10])
	Locale        string `mapstructure:"locale"`         // BCP 47 tag for weekday names
	ShowWordCloud bool   `mapstructure:"show_wordcloud"` // Include the word cloud section
	ShowSentiment bool   `mapstructure:"show_sentiment"` // Include the sentiment section
}

// Server holds HTTP server configuration
type Server struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORS         CORS          `mapstructure:"cors"`
}

// CORS holds CORS configuration for the API
type CORS struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

var loaded *Config

// Load reads configuration from file and environment variables. File values
// are optional; environment variables use the ECOCUBANO_ prefix with dots
// replaced by underscores (e.g. ECOCUBANO_SERVER_PORT).
func Load(configFile string) (*Config, error) {
	// .env is best-effort, matching how the CLI picks up local overrides
	_ = godotenv.Load()

	setDefaults()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".ecocubano")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("ECOCUBANO")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.App.ConfigFile = viper.ConfigFileUsed()

	if cfg.App.Debug {
		os.Setenv("ECOCUBANO_LOG_LEVEL", "debug")
	}

	loaded = cfg
	return cfg, nil
}

// Get returns the loaded configuration, loading defaults if Load was never called.
func Get() *Config {
	if loaded == nil {
		cfg, err := Load("")
		if err != nil {
			// Fall back to pure defaults rather than failing callers
			setDefaults()
			cfg = &Config{}
			_ = viper.Unmarshal(cfg)
		}
		loaded = cfg
	}
	return loaded
}

func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	// Data defaults
	viper.SetDefault("data.file", "comentarios_cubadebate.json")
	viper.SetDefault("data.category", "")
	viper.SetDefault("data.strict_dates", false)

	// Analysis defaults mirror the dashboard sidebar
	viper.SetDefault("analysis.keywords", "cuba, gobierno, economía")
	viper.SetDefault("analysis.top_n", 5)
	viper.SetDefault("analysis.locale", "es")
	viper.SetDefault("analysis.show_wordcloud", true)
	viper.SetDefault("analysis.show_sentiment", true)

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.cors.enabled", false)
	viper.SetDefault("server.cors.allowed_origins", []string{"*"})
}
