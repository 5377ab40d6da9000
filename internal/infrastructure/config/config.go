package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	// MinProductionSecretLength is the shortest JWT secret accepted in production.
	MinProductionSecretLength = 32
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Auth  AuthConfig
	Store StoreConfig
	Reset ResetConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret         string        `env:"JWT_SECRET"`
	TokenTTL          time.Duration `env:"TOKEN_TTL,                 default=1h"`
	LookupTimeout     time.Duration `env:"CREDENTIAL_LOOKUP_TIMEOUT, default=3s"`
	RouteTableFile    string        `env:"ROUTE_TABLE_FILE"`
	LoginRatePerSec   float64       `env:"LOGIN_RATE_PER_SECOND,     default=1"`
	LoginRateBurst    int           `env:"LOGIN_RATE_BURST,          default=5"`
	SeedAdminPassword string        `env:"SEED_ADMIN_PASSWORD"`
}

type StoreConfig struct {
	// Backend selects the principal and review store: "memory" or "mongo".
	Backend string `env:"STORE_BACKEND, default=memory"`
}

type ResetConfig struct {
	AppBaseURL  string        `env:"APP_BASE_URL,    default=http://localhost:8080"`
	TokenTTL    time.Duration `env:"RESET_TOKEN_TTL, default=1h"`
	MailWorkers int           `env:"MAIL_WORKERS,    default=2"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hotel_management"`
}

type RedisConfig struct {
	// Addr enables the redis reset-token store when set.
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig and
// validates it.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w: %w", domain.ErrConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fails closed: a missing signing secret aborts startup in every
// environment.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required: %w", domain.ErrConfiguration)
	}
	if c.IsProduction() && len(c.Auth.JWTSecret) < MinProductionSecretLength {
		return fmt.Errorf("config: JWT_SECRET must be at least %d bytes in production: %w", MinProductionSecretLength, domain.ErrConfiguration)
	}
	switch c.Store.Backend {
	case "memory", "mongo":
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q: %w", c.Store.Backend, domain.ErrConfiguration)
	}
	if c.IsProduction() && c.Store.Backend == "memory" && c.Auth.SeedAdminPassword == "" {
		return fmt.Errorf("config: memory store in production needs SEED_ADMIN_PASSWORD: %w", domain.ErrConfiguration)
	}
	if c.Auth.LoginRatePerSec <= 0 || c.Auth.LoginRateBurst <= 0 {
		return fmt.Errorf("config: login rate limits must be positive: %w", domain.ErrConfiguration)
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.Env == EnvProduction }
