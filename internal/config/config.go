package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Scraper configuration
	Scraper ScraperConfig `mapstructure:"scraper"`

	// HTTP client configuration
	HTTP HTTPConfig `mapstructure:"http"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// ScraperConfig describes the target site's structure
type ScraperConfig struct {
	BaseURL          string `mapstructure:"base_url"`
	ListingTemplate  string `mapstructure:"listing_template"`
	DetailPathMarker string `mapstructure:"detail_path_marker"`
	VisitLabel       string `mapstructure:"visit_label"`
}

// HTTPConfig holds HTTP client configuration
type HTTPConfig struct {
	UserAgent         string        `mapstructure:"user_agent"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond int           `mapstructure:"requests_per_second"`
	FollowRobotsTxt   bool          `mapstructure:"follow_robots_txt"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.sitesift")
	}

	setDefaults(v)

	v.SetEnvPrefix("SITESIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		// Config file not found is not an error, we'll use defaults and env
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Scraper defaults target the Awwwards showcase
	v.SetDefault("scraper.base_url", "https://www.awwwards.com")
	v.SetDefault("scraper.listing_template", "https://www.awwwards.com/websites/?page=%d")
	v.SetDefault("scraper.detail_path_marker", "/sites/")
	v.SetDefault("scraper.visit_label", "visit site")

	// HTTP defaults
	v.SetDefault("http.user_agent",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) "+
			"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0 Safari/537.36")
	v.SetDefault("http.timeout", "15s")
	v.SetDefault("http.requests_per_second", 0)
	v.SetDefault("http.follow_robots_txt", false)

	// Logging defaults
	v.SetDefault("logging.verbose", false)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Scraper.BaseURL == "" {
		return fmt.Errorf("scraper.base_url must be set")
	}
	if !strings.Contains(c.Scraper.ListingTemplate, "%d") {
		return fmt.Errorf("scraper.listing_template must contain a %%d page placeholder")
	}
	if c.Scraper.DetailPathMarker == "" {
		return fmt.Errorf("scraper.detail_path_marker must be set")
	}
	if c.Scraper.VisitLabel == "" {
		return fmt.Errorf("scraper.visit_label must be set")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive")
	}
	if c.HTTP.RequestsPerSecond < 0 {
		return fmt.Errorf("http.requests_per_second must not be negative")
	}
	return nil
}
