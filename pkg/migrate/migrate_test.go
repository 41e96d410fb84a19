package migrate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aufaa4aaaaa/kasir-app/pkg/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newMemoryClient(t *testing.T) *db.Client {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db.NewFromGorm(conn)
}

func TestMirrorEntriesMigrationContainsSchema(t *testing.T) {
	data, err := embedded.ReadFile("migrations/20240601000000_create_mirror_entries.sql")
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS mirror_entries",
		"entry_key TEXT PRIMARY KEY",
		"DROP TABLE IF EXISTS mirror_entries",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestValidateEmbedded(t *testing.T) {
	if err := ValidateEmbedded(); err != nil {
		t.Fatalf("embedded migrations invalid: %v", err)
	}
}

func TestRunUpAndDownToVersion(t *testing.T) {
	client := newMemoryClient(t)
	sqlDB, err := client.SQL()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	ctx := context.Background()

	if err := Run(ctx, sqlDB, "up"); err != nil {
		t.Fatalf("goose up: %v", err)
	}
	version, err := Version(ctx, sqlDB)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if version != 20240601000000 {
		t.Fatalf("unexpected version %d", version)
	}
	if !client.DB().Migrator().HasTable("mirror_entries") {
		t.Fatal("expected mirror_entries table after up")
	}

	if err := MigrateToVersion(ctx, sqlDB, "0"); err != nil {
		t.Fatalf("migrate down to 0: %v", err)
	}
	if client.DB().Migrator().HasTable("mirror_entries") {
		t.Fatal("expected mirror_entries table dropped")
	}
}

func TestRunRequiresDB(t *testing.T) {
	if err := Run(context.Background(), nil, "up"); err == nil {
		t.Fatal("expected error for nil db")
	}
}

func TestCreateAndValidateDir(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 7, 1, 8, 30, 0, 0, time.UTC)

	path, err := CreateSQLMigration(dir, "Add Sales Index!", now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if filepath.Base(path) != "20240701083000_add_sales_index.sql" {
		t.Fatalf("unexpected filename %s", filepath.Base(path))
	}
	if _, err := CreateSQLMigration(dir, "add sales index", now); err == nil {
		t.Fatal("expected duplicate create to fail")
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("validate: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "bad.sql"), []byte("-- nothing"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected invalid filename error")
	}
}

func TestCreateSQLMigrationRejectsStaleVersion(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 7, 1, 8, 30, 0, 0, time.UTC)

	if _, err := CreateSQLMigration(dir, "add_till_column", now); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := CreateSQLMigration(dir, "add_note_column", now.Add(-time.Hour)); err == nil {
		t.Fatal("expected older version to be rejected")
	}
	if _, err := CreateSQLMigration(dir, "!!!", now.Add(time.Hour)); err == nil {
		t.Fatal("expected empty slug to be rejected")
	}

	path, err := CreateSQLMigration(dir, "Add--Note  Column", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if filepath.Base(path) != "20240701093000_add_note_column.sql" {
		t.Fatalf("unexpected filename %s", filepath.Base(path))
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), "-- add_note_column: change mirror_entries here") {
		t.Fatalf("unexpected template:\n%s", raw)
	}
}
