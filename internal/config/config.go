package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingAPIKey is returned when no Tavily credential can be found in any
// configured source.
var ErrMissingAPIKey = errors.New("missing Tavily API key: set TAVILY_API_KEY in the environment or a .env file, or tavily.api_key in the config file")

type Config struct {
	Tavily  TavilyConfig  `mapstructure:"tavily"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TavilyConfig holds everything needed to talk to the remote service. The
// API key is read once at startup and passed by handle after that.
type TavilyConfig struct {
	APIKey      string `mapstructure:"api_key"`
	BaseURL     string `mapstructure:"base_url"`
	Timeout     int    `mapstructure:"timeout"`
	MaxResults  int    `mapstructure:"max_results"`
	SearchDepth string `mapstructure:"search_depth"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from .env files, the process environment and an
// optional YAML config file. A missing config file is fine; defaults apply.
func Load(cfgFile string) (*Config, error) {
	// Load .env file if exists (ignore error if not found)
	godotenv.Load()
	godotenv.Load(".env.local")

	v := viper.New()

	setDefaults(v)

	// Replace . with _ for nested config keys
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("TAVAGENT")
	v.AutomaticEnv()

	// The credential keeps its conventional unprefixed name
	v.BindEnv("tavily.api_key", "TAVILY_API_KEY")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the parts of the configuration that must be present before
// the shell starts.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Tavily.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tavily.base_url", "https://api.tavily.com")
	v.SetDefault("tavily.timeout", 30)
	v.SetDefault("tavily.max_results", 5)
	v.SetDefault("tavily.search_depth", "advanced")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}
