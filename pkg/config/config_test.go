package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.App.Port)
	}
	if !cfg.POS.Tax().Equal(decimal.RequireFromString("0.10")) {
		t.Fatalf("expected default tax 0.10, got %s", cfg.POS.Tax())
	}
	if cfg.POS.LowStockThreshold != 5 {
		t.Fatalf("expected low stock threshold 5, got %d", cfg.POS.LowStockThreshold)
	}
	if cfg.Mirror.DriverName() != MirrorDriverSQLite {
		t.Fatalf("expected sqlite mirror, got %q", cfg.Mirror.Driver)
	}
	if got := cfg.Mirror.FlushInterval; got != 30*time.Second {
		t.Fatalf("expected flush interval 30s, got %v", got)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsInvalidTaxRate(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvTaxRate, "1.5")

	if _, err := Load(); err == nil {
		t.Fatal("expected tax rate >= 1 to be rejected")
	}
}

func TestLoad_RedisMirrorNeedsAddress(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvMirrorDriver, "redis")

	if _, err := Load(); err == nil {
		t.Fatal("expected redis mirror without url to fail")
	}

	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Mirror.DriverName() != MirrorDriverRedis {
		t.Fatalf("expected redis driver, got %q", cfg.Mirror.Driver)
	}
}

func TestLoad_UnknownMirrorDriver(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvMirrorDriver, "localstorage")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown driver to fail")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvMirrorSQLitePath, "kasir-test.db")
	t.Setenv(EnvTimeZone, "UTC")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}

func TestPOSConfigLocationFallback(t *testing.T) {
	if loc := (POSConfig{TimeZone: "Not/AZone"}).Location(); loc != time.Local {
		t.Fatalf("expected fallback to local zone, got %v", loc)
	}
	if loc := (POSConfig{TimeZone: "UTC"}).Location(); loc.String() != "UTC" {
		t.Fatalf("expected UTC, got %v", loc)
	}
}
