package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the research pipeline. It is built once
// at startup and passed by value into constructors; nothing mutates it after
// Load returns.
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Research  ResearchConfig  `mapstructure:"research"`
	Sources   SourcesConfig   `mapstructure:"sources"`
	Scraper   ScraperConfig   `mapstructure:"scraper"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Storage   StorageConfig   `mapstructure:"storage"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug          bool          `mapstructure:"debug"`
	LogLevel       string        `mapstructure:"log_level"`
	DefaultTimeout time.Duration `mapstructure:"default_timeout"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LLMConfig contains LLM provider settings
type LLMConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// ResearchConfig contains pipeline tuning knobs
type ResearchConfig struct {
	MaxSearchResults int           `mapstructure:"max_search_results"`
	MaxTaskResults   int           `mapstructure:"max_task_results"`
	TaskPause        time.Duration `mapstructure:"task_pause"`
	DomainFilter     []string      `mapstructure:"domain_filter"`
}

// SourcesConfig contains web search settings
type SourcesConfig struct {
	Provider     string        `mapstructure:"provider"` // serper, brave, local
	SerperAPIKey string        `mapstructure:"serper_api_key"`
	BraveAPIKey  string        `mapstructure:"brave_api_key"`
	LocalCorpus  string        `mapstructure:"local_corpus"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// ScraperConfig contains page fetching settings
type ScraperConfig struct {
	Fetcher  string        `mapstructure:"fetcher"` // readability, chromedp
	Timeout  time.Duration `mapstructure:"timeout"`
	MaxChars int           `mapstructure:"max_chars"`
}

// TelemetryConfig contains monitoring settings
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StorageConfig contains the optional run cache settings
type StorageConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Load reads configuration from an optional file, environment variables and
// defaults. A missing config file is fine; defaults keep everything working
// offline.
func Load(path string) (Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("briefer")
		v.SetConfigType("json")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("BRIEFER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && path != "" {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	overrideFromEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.debug", false)
	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.default_timeout", "30s")

	v.SetDefault("server.address", ":10001")

	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.max_tokens", 700)
	v.SetDefault("llm.timeout", "60s")

	v.SetDefault("research.max_search_results", 6)
	v.SetDefault("research.max_task_results", 4)
	v.SetDefault("research.task_pause", "200ms")

	v.SetDefault("sources.provider", "serper")
	v.SetDefault("sources.timeout", "30s")

	v.SetDefault("scraper.fetcher", "readability")
	v.SetDefault("scraper.timeout", "15s")
	v.SetDefault("scraper.max_chars", 20000)

	v.SetDefault("telemetry.enabled", true)

	v.SetDefault("storage.redis.host", "")
	v.SetDefault("storage.redis.port", 6379)
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.ttl", "1h")
	v.SetDefault("storage.redis.timeout", "5s")
}

// overrideFromEnv maps well-known environment variables onto config keys so
// secrets never need to live in a file.
func overrideFromEnv(v *viper.Viper) {
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		v.Set("llm.api_key", apiKey)
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		v.Set("llm.model", model)
	}
	if apiKey := os.Getenv("SERPER_API_KEY"); apiKey != "" {
		v.Set("sources.serper_api_key", apiKey)
	}
	if apiKey := os.Getenv("BRAVE_SEARCH_KEY"); apiKey != "" {
		v.Set("sources.brave_api_key", apiKey)
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		v.Set("storage.redis.host", host)
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			v.Set("storage.redis.port", p)
		}
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		v.Set("storage.redis.password", password)
	}
}
