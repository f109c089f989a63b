package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// UpdateGoldenEnv names the variable that rewrites golden files instead of
// comparing against them.
const UpdateGoldenEnv = "TASKBOARD_UPDATE_GOLDEN"

// Golden compares rendered output with testdata/<name>.golden in the
// calling package. Line endings are normalised before comparing.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")
	if os.Getenv(UpdateGoldenEnv) != "" {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, got, 0o644))
		return
	}

	want, err := os.ReadFile(path)
	require.NoErrorf(t, err, "golden file %s (set %s=1 to create it)", path, UpdateGoldenEnv)
	assert.Equal(t, normalizeEOL(string(want)), normalizeEOL(string(got)), "output mismatch for %s", name)
}

// GoldenString is like Golden but takes a string.
func GoldenString(t *testing.T, name string, got string) {
	t.Helper()
	Golden(t, name, []byte(got))
}

func normalizeEOL(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
