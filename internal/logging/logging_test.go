package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-schemaform/internal/logging"
)

func TestNewDefaultsToConsoleInfo(t *testing.T) {
	logger, err := logging.New(logging.Config{})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewJSONWritesToOutputPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Config{Level: "debug", Format: "json", OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Debug("catalog resolved")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.True(t, strings.HasPrefix(line, "{"), "expected a JSON line, got %q", line)
	assert.Contains(t, line, `"msg":"catalog resolved"`)
	assert.Contains(t, line, `"level":"debug"`)
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	_, err := logging.New(logging.Config{Format: "xml"})
	require.Error(t, err)

	_, err = logging.New(logging.Config{Level: "loud"})
	require.Error(t, err)
}
