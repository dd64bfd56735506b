package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DisabledIsNop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "off.log")
	log, err := New(Options{Path: path})
	require.NoError(t, err)

	log.Debug("flip - start")
	_ = log.Sync()

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "disabled logger must not create a file")
}

func TestNew_DebugWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "flipdeck.log")
	log, err := New(Options{Debug: true, Path: path})
	require.NoError(t, err)

	log.Debug("flip - next")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.Contains(t, line, `"msg":"flip - next"`)
	assert.Contains(t, line, `"level":"debug"`)
	assert.Contains(t, line, `"pid":`)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "flipdeck.log", filepath.Base(DefaultPath()))
}
