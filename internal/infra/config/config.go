package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Advisor  AdvisorConfig  `yaml:"advisor"`
	Profiles ProfilesConfig `yaml:"profiles"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// AdvisorConfig holds the decision thresholds and synthetic search defaults.
type AdvisorConfig struct {
	DefaultLocation          string  `yaml:"defaultLocation"`
	DefaultOrigin            string  `yaml:"defaultOrigin"`
	DestinationAirport       string  `yaml:"destinationAirport"`
	HorizonDays              int     `yaml:"horizonDays"`
	MaxHorizonDays           int     `yaml:"maxHorizonDays"`
	MaxConcurrentSearches    int     `yaml:"maxConcurrentSearches"`
	SearchStepDays           int     `yaml:"searchStepDays"`
	StormDayThreshold        int     `yaml:"stormDayThreshold"`
	TemperatureMargin        float64 `yaml:"temperatureMargin"`
	MaxAlternatives          int     `yaml:"maxAlternatives"`
	HotelOverBudgetTolerance float64 `yaml:"hotelOverBudgetTolerance"`
	CatalogSeed              int64   `yaml:"catalogSeed"`
}

// ProfilesConfig selects where traveler profiles come from. Postgres wins
// over the seed file when a DSN is set.
type ProfilesConfig struct {
	File     string         `yaml:"file"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
}

// RedisConfig contains connection information for the profile cache.
type RedisConfig struct {
	Enabled bool          `yaml:"enabled"`
	Addr    string        `yaml:"addr"`
	Prefix  string        `yaml:"prefix"`
	TTL     time.Duration `yaml:"ttl"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from .env, a YAML file and environment variables,
// in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("ADVISOR_DEFAULT_LOCATION"); v != "" {
		cfg.Advisor.DefaultLocation = v
	}
	if v := os.Getenv("ADVISOR_DEFAULT_ORIGIN"); v != "" {
		cfg.Advisor.DefaultOrigin = v
	}
	if v := os.Getenv("ADVISOR_HORIZON_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Advisor.HorizonDays = parsed
		}
	}
	if v := os.Getenv("ADVISOR_MAX_HORIZON_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Advisor.MaxHorizonDays = parsed
		}
	}
	if v := os.Getenv("ADVISOR_STORM_DAY_THRESHOLD"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Advisor.StormDayThreshold = parsed
		}
	}
	if v := os.Getenv("ADVISOR_TEMPERATURE_MARGIN"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Advisor.TemperatureMargin = parsed
		}
	}
	if v := os.Getenv("ADVISOR_CATALOG_SEED"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Advisor.CatalogSeed = parsed
		}
	}
	if v := os.Getenv("PROFILES_FILE"); v != "" {
		cfg.Profiles.File = v
	}
	if v := os.Getenv("PROFILES_POSTGRES_DSN"); v != "" {
		cfg.Profiles.Postgres.DSN = v
	}
	if v := os.Getenv("PROFILES_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Profiles.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("PROFILES_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Profiles.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("PROFILES_REDIS_ENABLED"); v != "" {
		cfg.Profiles.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("PROFILES_REDIS_ADDR"); v != "" {
		cfg.Profiles.Redis.Addr = v
	}
	if v := os.Getenv("PROFILES_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Profiles.Redis.TTL = parsed
		}
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			AllowedOrigins: []string{"http://localhost:3000"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
		},
		Advisor: AdvisorConfig{
			DefaultLocation:          "Maui, HI",
			DefaultOrigin:            "SFO",
			DestinationAirport:       "OGG",
			HorizonDays:              30,
			MaxHorizonDays:           365,
			MaxConcurrentSearches:    8,
			SearchStepDays:           3,
			StormDayThreshold:        1,
			TemperatureMargin:        3,
			MaxAlternatives:          2,
			HotelOverBudgetTolerance: 0.15,
			CatalogSeed:              42,
		},
		Profiles: ProfilesConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
				MinConns: 0,
			},
			Redis: RedisConfig{
				Prefix: "profile",
				TTL:    10 * time.Minute,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.Advisor.DefaultLocation) == "" {
		return errors.New("advisor.defaultLocation cannot be empty")
	}
	if strings.TrimSpace(c.Advisor.DestinationAirport) == "" {
		return errors.New("advisor.destinationAirport cannot be empty")
	}
	if c.Advisor.HorizonDays <= 0 {
		return errors.New("advisor.horizonDays must be positive")
	}
	if c.Advisor.MaxHorizonDays < c.Advisor.HorizonDays {
		return errors.New("advisor.maxHorizonDays cannot be below advisor.horizonDays")
	}
	if c.Advisor.MaxConcurrentSearches <= 0 {
		return errors.New("advisor.maxConcurrentSearches must be positive")
	}
	if c.Advisor.SearchStepDays <= 0 {
		return errors.New("advisor.searchStepDays must be positive")
	}
	if c.Advisor.StormDayThreshold < 0 {
		return errors.New("advisor.stormDayThreshold cannot be negative")
	}
	if c.Advisor.TemperatureMargin < 0 {
		return errors.New("advisor.temperatureMargin cannot be negative")
	}
	if c.Advisor.MaxAlternatives < 0 {
		return errors.New("advisor.maxAlternatives cannot be negative")
	}
	if c.Advisor.HotelOverBudgetTolerance < 0 {
		return errors.New("advisor.hotelOverBudgetTolerance cannot be negative")
	}
	if c.Profiles.Redis.Enabled && strings.TrimSpace(c.Profiles.Redis.Addr) == "" {
		return errors.New("profiles.redis.addr cannot be empty when the profile cache is enabled")
	}
	if c.Profiles.Redis.TTL < 0 {
		return errors.New("profiles.redis.ttl cannot be negative")
	}
	return nil
}
