package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTillEnv(t *testing.T) {
	t.Helper()
	t.Setenv("KASIR_APP_ENV", "test")
	t.Setenv("KASIR_MIRROR_DRIVER", "memory")
	t.Setenv("KASIR_POS_TIME_ZONE", "Asia/Jakarta")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootRejectsUnknownFormat(t *testing.T) {
	setTillEnv(t)

	_, err := execute(t, "--format", "xml", "products")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestProductsText(t *testing.T) {
	setTillEnv(t)

	out, err := execute(t, "products")
	require.NoError(t, err)
	assert.Contains(t, out, "Nasi Gudeg")
	assert.Contains(t, out, "Rp 15.000")
	assert.Equal(t, 9, strings.Count(out, "\n"))
}

func TestProductsJSON(t *testing.T) {
	setTillEnv(t)

	out, err := execute(t, "--format", "json", "products")
	require.NoError(t, err)

	var products []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &products))
	assert.Len(t, products, 8)
}

func TestSampleAddsTwoTransactions(t *testing.T) {
	setTillEnv(t)

	out, err := execute(t, "sample")
	require.NoError(t, err)
	assert.Equal(t, "2 sample transactions added\n", out)
}

func TestResetRequiresConfirmation(t *testing.T) {
	setTillEnv(t)

	_, err := execute(t, "reset")
	require.Error(t, err)

	out, err := execute(t, "reset", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "data reset\n", out)
}

func TestReportToDirectory(t *testing.T) {
	setTillEnv(t)
	dir := t.TempDir()

	out, err := execute(t, "report", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "report written: ")

	matches, err := filepath.Glob(filepath.Join(dir, "laporan-*.txt"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	body, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "LAPORAN PENJUALAN HARIAN\n"))
	assert.Contains(t, string(body), "Total Transaksi: 0")
}

func TestReportToStdout(t *testing.T) {
	setTillEnv(t)

	out, err := execute(t, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "RINGKASAN:")
}

func TestMigrateRequiresSQLiteMirror(t *testing.T) {
	setTillEnv(t)

	_, err := execute(t, "migrate", "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite mirror")
}

func TestMigrateValidateEmbedded(t *testing.T) {
	setTillEnv(t)

	out, err := execute(t, "migrate", "validate")
	require.NoError(t, err)
	assert.Equal(t, "migration validation passed\n", out)
}

func TestMigrateStatusOnSQLite(t *testing.T) {
	setTillEnv(t)
	t.Setenv("KASIR_MIRROR_DRIVER", "sqlite")
	t.Setenv("KASIR_MIRROR_SQLITE_PATH", filepath.Join(t.TempDir(), "kasir.db"))

	_, err := execute(t, "migrate", "up")
	require.NoError(t, err)

	out, err := execute(t, "migrate", "version")
	require.NoError(t, err)
	assert.Equal(t, "20240601000000\n", out)
}
