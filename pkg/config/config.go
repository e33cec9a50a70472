package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Redis    RedisConfig
	Commerce CommerceConfig
	Checkout CheckoutConfig
	Catalog  CatalogConfig
	Gate     GateConfig
	SMTP     SMTPConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CommerceConfig points at the remote commerce platform every durable
// operation is delegated to.
type CommerceConfig struct {
	BaseURL string `envconfig:"STOREFRONT_COMMERCE_BASE_URL" required:"true"`
}

type CheckoutConfig struct {
	SuccessURL string `envconfig:"STOREFRONT_CHECKOUT_SUCCESS_URL" required:"true"`
	CancelURL  string `envconfig:"STOREFRONT_CHECKOUT_CANCEL_URL" required:"true"`
	Currency   string `envconfig:"STOREFRONT_CHECKOUT_CURRENCY" default:"eur"`
}

type CatalogConfig struct {
	CacheTTL time.Duration `envconfig:"STOREFRONT_CATALOG_CACHE_TTL" default:"5m"`
}

// GateConfig protects the whole storefront behind a shared password. The
// password keeps the historical fallback; the signing secret does not.
type GateConfig struct {
	SitePassword string        `envconfig:"STOREFRONT_SITE_PASSWORD" default:"123456@Aa"`
	TokenSecret  string        `envconfig:"STOREFRONT_GATE_TOKEN_SECRET" required:"true"`
	TokenTTL     time.Duration `envconfig:"STOREFRONT_GATE_TOKEN_TTL" default:"24h"`
}

type SMTPConfig struct {
	Host     string `envconfig:"STOREFRONT_SMTP_HOST" default:"smtp.office365.com"`
	Port     int    `envconfig:"STOREFRONT_SMTP_PORT" default:"587"`
	Email    string `envconfig:"STOREFRONT_SMTP_EMAIL"`
	Password string `envconfig:"STOREFRONT_SMTP_PASSWORD"`
}

// Addr joins host and port for the smtp dialer.
func (s SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
