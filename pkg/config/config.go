package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Pricing  PricingConfig
	OrderAPI OrderAPIConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SWIFTKART_APP_ENV" required:"true"`
	Port         string `envconfig:"SWIFTKART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SWIFTKART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SWIFTKART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SWIFTKART_DB_DSN" required:"true"`
	Driver string `envconfig:"SWIFTKART_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"SWIFTKART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SWIFTKART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SWIFTKART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SWIFTKART_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"SWIFTKART_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SWIFTKART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SWIFTKART_REDIS_ADDR"`
	Password     string        `envconfig:"SWIFTKART_REDIS_PASSWORD"`
	DB           int           `envconfig:"SWIFTKART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SWIFTKART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SWIFTKART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SWIFTKART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SWIFTKART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SWIFTKART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SWIFTKART_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SWIFTKART_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SWIFTKART_JWT_EXPIRATION_MINUTES" default:"60"`
}

// PricingConfig carries the storefront pricing knobs. Amounts are rupees,
// parsed as decimals by internal/pricing so accumulation never goes through
// floats.
type PricingConfig struct {
	FreeShippingThreshold string `envconfig:"SWIFTKART_PRICING_FREE_SHIPPING_THRESHOLD" default:"50000"`
	FlatShippingFee       string `envconfig:"SWIFTKART_PRICING_FLAT_SHIPPING_FEE" default:"199"`
	DefaultGSTRate        string `envconfig:"SWIFTKART_PRICING_DEFAULT_GST_RATE" default:"18"`
}

// OrderAPIConfig points at the external order-creation service.
type OrderAPIConfig struct {
	BaseURL string        `envconfig:"SWIFTKART_ORDER_API_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"SWIFTKART_ORDER_API_TIMEOUT" default:"15s"`
}

type CheckoutConfig struct {
	SnapshotTTL    time.Duration `envconfig:"SWIFTKART_CHECKOUT_SNAPSHOT_TTL" default:"720h"`
	IdempotencyTTL time.Duration `envconfig:"SWIFTKART_CHECKOUT_IDEMPOTENCY_TTL" default:"168h"`
}
