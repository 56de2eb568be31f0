package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/vncsmyrnk/linkscore/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Voting   VotingConfig   `yaml:"voting"`
	Clock    ClockConfig    `yaml:"clock"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	AdminToken     string   `yaml:"admin_token"`
}

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	CacheNone  = "none"
	CacheLRU   = "lru"
	CacheRedis = "redis"
)

// DatabaseConfig selects and configures the record store.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// CacheConfig configures the optional link cache used by score queries.
type CacheConfig struct {
	Driver string        `yaml:"driver"`
	TTL    time.Duration `yaml:"ttl"`
	Size   int           `yaml:"size"`
	Redis  RedisConfig   `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// ScoringConfig tunes the classifier.
type ScoringConfig struct {
	GoodThreshold              int  `yaml:"good_threshold"`
	BadThreshold               int  `yaml:"bad_threshold"`
	ControversialMinEngagement int  `yaml:"controversial_min_engagement"`
	ControversialBalanceBand   int  `yaml:"controversial_balance_band"`
	Randomize                  bool `yaml:"randomize"`
}

func (s ScoringConfig) Thresholds() domain.Thresholds {
	return domain.Thresholds{
		Good:                       s.GoodThreshold,
		Bad:                        s.BadThreshold,
		ControversialMinEngagement: s.ControversialMinEngagement,
		ControversialBalanceBand:   s.ControversialBalanceBand,
	}
}

// VotingConfig holds the quota default and the conflict retry policy.
// MaxRetries bounds optimistic conflicts per vote. Under N concurrent voters
// on one link a request can lose up to N-1 rounds, so the budget should
// cover the expected burst on a hot link.
type VotingConfig struct {
	DefaultMaxVotesPerUserPerDay int           `yaml:"default_max_votes_per_user_per_day"`
	MaxRetries                   uint64        `yaml:"max_retries"`
	RetryInitialInterval         time.Duration `yaml:"retry_initial_interval"`
	RetryMaxInterval             time.Duration `yaml:"retry_max_interval"`
}

// DefaultSettings are reported until an administrator stores settings.
func (v VotingConfig) DefaultSettings() domain.Settings {
	return domain.Settings{MaximumVotesPerUserPerDay: v.DefaultMaxVotesPerUserPerDay}
}

type ClockConfig struct {
	UseSystemTime bool   `yaml:"use_system_time"`
	FixedTime     string `yaml:"fixed_time"`
}

// Fixed parses FixedTime as RFC 3339.
func (c ClockConfig) Fixed() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, c.FixedTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse fixed_time %q: %w", c.FixedTime, err)
	}
	return t, nil
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Name:            "linkscore",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Cache: CacheConfig{
			Driver: CacheNone,
			TTL:    5 * time.Second,
			Size:   10000,
			Redis:  RedisConfig{Addr: "localhost:6379", PoolSize: 10},
		},
		Scoring: ScoringConfig{
			GoodThreshold:              20,
			BadThreshold:               -10,
			ControversialMinEngagement: 51,
			ControversialBalanceBand:   10,
		},
		Voting: VotingConfig{
			DefaultMaxVotesPerUserPerDay: 10,
			MaxRetries:                   50,
			RetryInitialInterval:         10 * time.Millisecond,
			RetryMaxInterval:             200 * time.Millisecond,
		},
		Clock: ClockConfig{UseSystemTime: true},
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT should be a number: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("POSTGRES_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		cfg.Database.Port = v
	}
	if v := os.Getenv("POSTGRES_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("POSTGRES_DB"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("CACHE_DRIVER"); v != "" {
		cfg.Cache.Driver = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Cache.Redis.Password = v
	}
	if v := os.Getenv("RANDOMIZE_SCORES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("RANDOMIZE_SCORES should be a boolean: %w", err)
		}
		cfg.Scoring.Randomize = b
	}
	if v := os.Getenv("USE_SYSTEM_TIME"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("USE_SYSTEM_TIME should be a boolean: %w", err)
		}
		cfg.Clock.UseSystemTime = b
	}
	if v := os.Getenv("FIXED_TIME"); v != "" {
		cfg.Clock.FixedTime = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.Database.Driver))
	}
	switch c.Cache.Driver {
	case CacheNone, CacheLRU, CacheRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown cache driver %q", c.Cache.Driver))
	}
	if c.Cache.Driver == CacheLRU && c.Cache.Size <= 0 {
		errs = append(errs, errors.New("cache size must be positive"))
	}
	if c.Voting.DefaultMaxVotesPerUserPerDay <= 0 {
		errs = append(errs, errors.New("default maximum votes per user per day must be positive"))
	}
	if c.Scoring.GoodThreshold <= c.Scoring.BadThreshold {
		errs = append(errs, errors.New("good threshold must be above bad threshold"))
	}
	if c.Scoring.ControversialBalanceBand < 0 {
		errs = append(errs, errors.New("controversial balance band cannot be negative"))
	}
	if !c.Clock.UseSystemTime {
		if _, err := c.Clock.Fixed(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
