package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsole(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := Console(&buf, false)
	logger.Debug("Hidden", "index", 1)
	logger.Info("Window moved", "min", 4, "max", 15)

	out := buf.String()
	require.NotContains(t, out, "Hidden")
	require.Contains(t, out, "Window moved")
	require.Contains(t, out, "min=4")
	require.Contains(t, out, "max=15")
}

func TestConsoleDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	Console(&buf, true).Debug("Cell template set", "path", "row")
	require.Contains(t, buf.String(), "Cell template set")
}

func TestRecoverPanicRunsCleanup(t *testing.T) {
	t.Chdir(t.TempDir())

	cleaned := false
	func() {
		defer RecoverPanic("test", func() { cleaned = true })
		panic("boom")
	}()
	require.True(t, cleaned)
}

func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	file := filepath.Join(t.TempDir(), "picklist.log")
	Setup(file, true)
	require.True(t, Initialized())

	slog.Debug("List shown", "count", 3)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"List shown"`)
	require.Contains(t, string(data), `"count":3`)
}
