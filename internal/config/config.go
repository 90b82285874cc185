package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bimakw/meme-swap/internal/infrastructure/coingecko"
)

// Config is the process configuration
type Config struct {
	Port             int      `mapstructure:"port"`
	CoingeckoAPIKey  string   `mapstructure:"coingecko_api_key"`
	CoingeckoBaseURL string   `mapstructure:"coingecko_base_url"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	LogLevel         string   `mapstructure:"log_level"`
	LogFormat        string   `mapstructure:"log_format"`
	EnableMetrics    bool     `mapstructure:"enable_metrics"`
}

// String renders the config without the API key
func (c Config) String() string {
	return fmt.Sprintf("port=%d base_url=%s origins=%v log_level=%s log_format=%s metrics=%t",
		c.Port, c.CoingeckoBaseURL, c.AllowedOrigins, c.LogLevel, c.LogFormat, c.EnableMetrics)
}

// envKeys maps config keys to the environment variables they are read from
var envKeys = map[string]string{
	"port":               "PORT",
	"coingecko_api_key":  "COINGECKO_API_KEY",
	"coingecko_base_url": "COINGECKO_BASE_URL",
	"allowed_origins":    "ALLOWED_ORIGINS",
	"log_level":          "LOG_LEVEL",
	"log_format":         "LOG_FORMAT",
	"enable_metrics":     "ENABLE_METRICS",
}

// Load reads configuration from the environment and, when path is not
// empty, from a TOML file. Environment variables win over the file.
func Load(path string) (*Config, error) {
	// .env is optional, the variables may come from docker or systemd
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		if !strings.HasSuffix(path, ".toml") {
			return nil, fmt.Errorf("config file must be a toml file")
		}
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.AllowedOrigins = splitOrigins(cfg.AllowedOrigins)

	if err := verifyConfig(&cfg); err != nil {
		return nil, fmt.Errorf("failed to verify config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("coingecko_base_url", coingecko.DefaultBaseURL)
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("enable_metrics", true)
}

// splitOrigins flattens comma separated entries, env values arrive as one string
func splitOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, entry := range in {
		for _, origin := range strings.Split(entry, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}

func verifyConfig(cfg *Config) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if cfg.CoingeckoAPIKey == "" {
		return fmt.Errorf("COINGECKO_API_KEY is required")
	}
	if cfg.CoingeckoBaseURL == "" {
		return fmt.Errorf("coingecko_base_url is required")
	}
	if _, err := coingecko.ParseBaseURL(cfg.CoingeckoBaseURL); err != nil {
		return fmt.Errorf("coingecko_base_url must be an absolute http(s) url: %w", err)
	}
	if len(cfg.AllowedOrigins) == 0 {
		return fmt.Errorf("allowed_origins is required")
	}
	switch cfg.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be console or json")
	}
	return nil
}
