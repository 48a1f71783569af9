package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("DOCS_DIR", "/srv/docs")
	p := filepath.Join(t.TempDir(), "mdforge.yaml")
	require.NoError(t, os.WriteFile(p, []byte(
		"input: ${DOCS_DIR}/html\noutput: ./out\nproject: demo\npdf: true\n"), 0o644))

	cfg := NewDefault()
	require.NoError(t, Load(p, cfg))
	require.Equal(t, "/srv/docs/html", cfg.Input)
	require.Equal(t, "./out", cfg.Output)
	require.Equal(t, "demo", cfg.Project)
	require.True(t, cfg.PDF)
	require.NoError(t, cfg.Check())
}

func TestLoadMissingFile(t *testing.T) {
	cfg := NewDefault()
	require.Error(t, Load(filepath.Join(t.TempDir(), "absent.yaml"), cfg))
}

func TestCheck(t *testing.T) {
	cfg := &Config{Input: "in", Output: "out", Project: "p", LogLevel: LevelInfo}
	require.NoError(t, cfg.Check())

	cfg.Project = ""
	require.Error(t, cfg.Check())

	cfg.Project = "p"
	cfg.LogLevel = "loud"
	require.Error(t, cfg.Check())
}

func TestLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, (&Config{LogLevel: LevelDebug}).Level())
	require.Equal(t, slog.LevelWarn, (&Config{LogLevel: LevelWarn}).Level())
	require.Equal(t, slog.LevelError, (&Config{LogLevel: LevelError}).Level())
	require.Equal(t, slog.LevelInfo, (&Config{}).Level())
}
