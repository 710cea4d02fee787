package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StoreBackendSheet = "sheet"
	StoreBackendDB    = "db"
)

type Config struct {
	App     AppConfig
	Pricing PricingConfig
	Payment PaymentConfig
	Receipt ReceiptConfig
	Store   StoreConfig
	DB      DBConfig
	Sheets  SheetsConfig
	SMTP    SMTPConfig
	Redis   RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case StoreBackendSheet:
		if c.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("SHOPDESK_SHEETS_SPREADSHEET_ID is required when the store backend is %q", StoreBackendSheet)
		}
	case StoreBackendDB:
		if c.DB.DSN == "" {
			return fmt.Errorf("SHOPDESK_DB_DSN is required when the store backend is %q", StoreBackendDB)
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"SHOPDESK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// PricingConfig carries the surcharge amounts and the promo rate as decimal
// strings so fee values never pass through binary floats.
type PricingConfig struct {
	PremiumPackagingFee string `envconfig:"SHOPDESK_PRICING_PREMIUM_PACKAGING_FEE" default:"20.00"`
	HomeDeliveryFee     string `envconfig:"SHOPDESK_PRICING_HOME_DELIVERY_FEE" default:"5.00"`
	PromoDiscountRate   string `envconfig:"SHOPDESK_PRICING_PROMO_DISCOUNT_RATE" default:"0.10"`
}

// PaymentConfig holds the fixed payment-method metadata rendered into receipts.
type PaymentConfig struct {
	VenmoHandle string `envconfig:"SHOPDESK_PAYMENT_VENMO_HANDLE" default:"@ShopDesk-Crafts"`
	RevTrakURL  string `envconfig:"SHOPDESK_PAYMENT_REVTRAK_URL" default:"https://shopdesk.revtrak.net/shop"`
	ForwardTo   string `envconfig:"SHOPDESK_PAYMENT_FORWARD_TO" default:"orders@shopdeskcrafts.com"`
}

type ReceiptConfig struct {
	ShopName string `envconfig:"SHOPDESK_RECEIPT_SHOP_NAME" default:"ShopDesk Crafts"`
}

type StoreConfig struct {
	Backend string `envconfig:"SHOPDESK_STORE_BACKEND" default:"sheet"`
}

type DBConfig struct {
	DSN    string `envconfig:"SHOPDESK_DB_DSN"`
	Driver string `envconfig:"SHOPDESK_DB_DRIVER" default:"postgres"`

	AutoMigrate bool `envconfig:"SHOPDESK_DB_AUTO_MIGRATE" default:"false"`

	MaxOpenConns    int           `envconfig:"SHOPDESK_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SHOPDESK_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type SheetsConfig struct {
	SpreadsheetID   string `envconfig:"SHOPDESK_SHEETS_SPREADSHEET_ID"`
	Worksheet       string `envconfig:"SHOPDESK_SHEETS_WORKSHEET" default:"Orders"`
	CredentialsJSON string `envconfig:"SHOPDESK_SHEETS_CREDENTIALS_JSON"`
}

// SMTPConfig configures the receipt mailer. An empty host disables outbound
// email entirely; the intake flow then reports emailSent=false.
type SMTPConfig struct {
	Host     string   `envconfig:"SHOPDESK_SMTP_HOST"`
	Port     int      `envconfig:"SHOPDESK_SMTP_PORT" default:"587"`
	Username string   `envconfig:"SHOPDESK_SMTP_USERNAME"`
	Password string   `envconfig:"SHOPDESK_SMTP_PASSWORD"`
	From     string   `envconfig:"SHOPDESK_SMTP_FROM"`
	BCC      []string `envconfig:"SHOPDESK_SMTP_BCC"`
}

// RedisConfig configures the optional idempotency store. An empty URL skips
// redis at boot and disables duplicate-submission protection.
type RedisConfig struct {
	URL          string        `envconfig:"SHOPDESK_REDIS_URL"`
	PoolSize     int           `envconfig:"SHOPDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}
