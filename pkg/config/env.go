package config

// EnvPrefix is handed to envconfig; every field carries an explicit name so it is informational only.
const EnvPrefix = "KASIR"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	MirrorDriverSQLite = "sqlite"
	MirrorDriverRedis  = "redis"
	MirrorDriverMemory = "memory"
)

const (
	EnvAppEnv            = "KASIR_APP_ENV"
	EnvPort              = "KASIR_APP_PORT"
	EnvLogLevel          = "KASIR_LOG_LEVEL"
	EnvTaxRate           = "KASIR_POS_TAX_RATE"
	EnvLowStockThreshold = "KASIR_POS_LOW_STOCK_THRESHOLD"
	EnvTimeZone          = "KASIR_POS_TIME_ZONE"
	EnvLocale            = "KASIR_POS_LOCALE"
	EnvCatalogFile       = "KASIR_POS_CATALOG_FILE"
	EnvMirrorDriver      = "KASIR_MIRROR_DRIVER"
	EnvMirrorSQLitePath  = "KASIR_MIRROR_SQLITE_PATH"
	EnvMirrorFlush       = "KASIR_MIRROR_FLUSH_INTERVAL"
	EnvRedisURL          = "KASIR_REDIS_URL"
	EnvRedisAddr         = "KASIR_REDIS_ADDR"
)
