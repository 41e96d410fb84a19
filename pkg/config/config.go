package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App    AppConfig
	POS    POSConfig
	Mirror MirrorConfig
	Redis  RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.POS.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Mirror.validate(cfg.Redis); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"KASIR_APP_ENV" required:"true"`
	Port         string `envconfig:"KASIR_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"KASIR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"KASIR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// POSConfig carries the counter-level business settings.
type POSConfig struct {
	TaxRate           string `envconfig:"KASIR_POS_TAX_RATE" default:"0.10"`
	LowStockThreshold int    `envconfig:"KASIR_POS_LOW_STOCK_THRESHOLD" default:"5"`
	TimeZone          string `envconfig:"KASIR_POS_TIME_ZONE" default:"Asia/Jakarta"`
	Locale            string `envconfig:"KASIR_POS_LOCALE" default:"id"`
	CatalogFile       string `envconfig:"KASIR_POS_CATALOG_FILE"`
}

// Tax returns the parsed tax rate. A zero rate disables tax.
func (p POSConfig) Tax() decimal.Decimal {
	rate, err := decimal.NewFromString(strings.TrimSpace(p.TaxRate))
	if err != nil {
		return decimal.Zero
	}
	return rate
}

// Location resolves the configured time zone, falling back to the process local zone.
func (p POSConfig) Location() *time.Location {
	if strings.TrimSpace(p.TimeZone) == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(p.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (p POSConfig) validate() error {
	rate, err := decimal.NewFromString(strings.TrimSpace(p.TaxRate))
	if err != nil {
		return fmt.Errorf("%s must be a decimal: %w", EnvTaxRate, err)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be within [0, 1)", EnvTaxRate)
	}
	if p.LowStockThreshold < 0 {
		return fmt.Errorf("%s must be non-negative", EnvLowStockThreshold)
	}
	if p.TimeZone != "" {
		if _, err := time.LoadLocation(p.TimeZone); err != nil {
			return fmt.Errorf("%s: %w", EnvTimeZone, err)
		}
	}
	return nil
}

// MirrorConfig selects where store snapshots are mirrored.
type MirrorConfig struct {
	Driver        string        `envconfig:"KASIR_MIRROR_DRIVER" default:"sqlite"`
	SQLitePath    string        `envconfig:"KASIR_MIRROR_SQLITE_PATH" default:"kasir.db"`
	FlushInterval time.Duration `envconfig:"KASIR_MIRROR_FLUSH_INTERVAL" default:"30s"`
	AutoMigrate   bool          `envconfig:"KASIR_MIRROR_AUTO_MIGRATE" default:"true"`

	MaxOpenConns    int           `envconfig:"KASIR_DB_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns    int           `envconfig:"KASIR_DB_MAX_IDLE_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"KASIR_DB_CONN_MAX_LIFETIME" default:"1h"`
}

func (m MirrorConfig) validate(redis RedisConfig) error {
	switch strings.ToLower(strings.TrimSpace(m.Driver)) {
	case MirrorDriverSQLite:
		if strings.TrimSpace(m.SQLitePath) == "" {
			return fmt.Errorf("%s is required for the sqlite mirror", EnvMirrorSQLitePath)
		}
	case MirrorDriverRedis:
		if redis.URL == "" && redis.Address == "" {
			return fmt.Errorf("either %s or %s is required for the redis mirror", EnvRedisURL, EnvRedisAddr)
		}
	case MirrorDriverMemory:
	default:
		return fmt.Errorf("%s must be one of %s, %s, %s", EnvMirrorDriver, MirrorDriverSQLite, MirrorDriverRedis, MirrorDriverMemory)
	}
	return nil
}

// DriverName returns the normalized mirror driver.
func (m MirrorConfig) DriverName() string {
	return strings.ToLower(strings.TrimSpace(m.Driver))
}

type RedisConfig struct {
	URL          string        `envconfig:"KASIR_REDIS_URL"`
	Address      string        `envconfig:"KASIR_REDIS_ADDR"`
	Password     string        `envconfig:"KASIR_REDIS_PASSWORD"`
	DB           int           `envconfig:"KASIR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KASIR_REDIS_POOL_SIZE" default:"4"`
	MinIdleConns int           `envconfig:"KASIR_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"KASIR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KASIR_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"KASIR_REDIS_WRITE_TIMEOUT" default:"3s"`
}
