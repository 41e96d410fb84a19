package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const versionLayout = "20060102150405"

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// migrationTemplate targets the mirror schema. Down must undo Up so
// `kasirctl migrate down` can step back one version.
const migrationTemplate = `-- +goose Up
-- +goose StatementBegin
-- %[1]s: change mirror_entries here
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- %[1]s: revert the change above
-- +goose StatementEnd
`

// CreateSQLMigration writes an empty goose migration named
// <dir>/<YYYYMMDDHHMMSS>_<slug>.sql. It refuses a slug that is already in use
// and a version that would not sort after the newest existing migration.
func CreateSQLMigration(dir string, name string, now time.Time) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("migrations dir is required")
	}
	slug := migrationSlug(name)
	if slug == "" {
		return "", fmt.Errorf("migration name %q has no usable characters", name)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create migrations dir %q: %w", dir, err)
	}

	version := now.UTC().Format(versionLayout)
	latest, err := existingMigrations(dir, slug)
	if err != nil {
		return "", err
	}
	if latest >= version {
		return "", fmt.Errorf("version %s is not newer than existing migration %s", version, latest)
	}

	fullpath := filepath.Join(dir, fmt.Sprintf("%s_%s.sql", version, slug))
	f, err := os.OpenFile(fullpath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create migration %q: %w", fullpath, err)
	}
	if _, err := fmt.Fprintf(f, migrationTemplate, slug); err != nil {
		f.Close()
		return "", fmt.Errorf("write migration %q: %w", fullpath, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close migration %q: %w", fullpath, err)
	}
	return fullpath, nil
}

// migrationSlug lowercases name and collapses everything else to single underscores.
func migrationSlug(name string) string {
	slug := slugRe.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(slug, "_")
}

// existingMigrations returns the newest version in dir and fails if slug is taken.
func existingMigrations(dir, slug string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read migrations dir %q: %w", dir, err)
	}
	var latest string
	for _, entry := range entries {
		m := sqlFileRe.FindStringSubmatch(entry.Name())
		if entry.IsDir() || m == nil {
			continue
		}
		if strings.TrimSuffix(strings.TrimPrefix(entry.Name(), m[1]+"_"), ".sql") == slug {
			return "", fmt.Errorf("migration %q already exists as %s", slug, entry.Name())
		}
		if m[1] > latest {
			latest = m[1]
		}
	}
	return latest, nil
}
