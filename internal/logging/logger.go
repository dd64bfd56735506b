package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls the diagnostic logger.
type Options struct {
	// Debug enables per-operation logging. Without it New returns a no-op logger.
	Debug bool
	// Path is the JSON log file. The terminal belongs to the TUI, so there is
	// no stderr output.
	Path string
}

// DefaultPath returns the log file used when Options.Path is empty.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "flipdeck", "flipdeck.log")
}

// New creates a zap logger that writes JSON lines at debug level to
// opts.Path. The process ID is included as an initial field.
func New(opts Options) (*zap.Logger, error) {
	if !opts.Debug {
		return zap.NewNop(), nil
	}
	path := opts.Path
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(file), zapcore.DebugLevel)

	return zap.New(core, zap.Fields(zap.Int("pid", os.Getpid()))), nil
}
