package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func useDatabase(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ledger.db")
	t.Setenv("ENV", "test")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", path)
	return path
}

func TestSeedCommand(t *testing.T) {
	useDatabase(t)

	out, err := run(t, "seed")
	require.NoError(t, err)
	assert.Equal(t, "created 13, already present 0\n", out)

	out, err = run(t, "seed")
	require.NoError(t, err)
	assert.Equal(t, "created 0, already present 13\n", out)
}

func TestCommandsUseTheirOwnConfig(t *testing.T) {
	useDatabase(t)
	_, err := run(t, "seed")
	require.NoError(t, err)

	// A second invocation against another database starts from scratch
	useDatabase(t)
	out, err := run(t, "seed")
	require.NoError(t, err)
	assert.Equal(t, "created 13, already present 0\n", out)
}

func TestExportCommand(t *testing.T) {
	useDatabase(t)

	out, err := run(t, "export", "--type", "csv", "--out", "-")
	require.NoError(t, err)
	assert.Equal(t, "id,amount,category_id,category_name,description,is_income,date\n", out)

	target := filepath.Join(t.TempDir(), "report.pdf")
	_, err = run(t, "export", "--type", "pdf", "--start-date", "2024-01-01", "--out", target)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))

	_, err = run(t, "export", "--type", "xlsx", "--out", "-")
	assert.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	useDatabase(t)

	_, err := run(t, "seed", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
