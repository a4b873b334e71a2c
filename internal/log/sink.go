package log

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// EnvLogFile names the environment variable that enables the debug log file.
const EnvLogFile = "WT_LOG_FILE"

// SinkConfig holds configuration for the rotating debug log file.
type SinkConfig struct {
	FilePath   string // Path to log file
	MaxSizeMB  int    // Max size in MB before rotation
	MaxBackups int    // Max number of old log files to keep
	MaxAgeDays int    // Max days to keep old log files
}

// NewFileSink creates a zap logger writing JSON records to a rotated file.
// The returned close function flushes and closes the file.
func NewFileSink(cfg SinkConfig) (*zap.Logger, func() error, error) {
	if cfg.FilePath == "" {
		return nil, nil, fmt.Errorf("log file path is required")
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 5
	}
	if cfg.MaxBackups == 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAgeDays == 0 {
		cfg.MaxAgeDays = 14
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(fileWriter),
		zapcore.DebugLevel,
	)
	logger := zap.New(core).With(zap.Int("pid", os.Getpid()))

	closeFn := func() error {
		_ = logger.Sync()
		return fileWriter.Close()
	}
	return logger, closeFn, nil
}

// SinkFromEnv opens the debug log file named by WT_LOG_FILE.
// Returns a nil logger and a no-op close function when the variable is unset.
func SinkFromEnv() (*zap.Logger, func() error, error) {
	path := os.Getenv(EnvLogFile)
	if path == "" {
		return nil, func() error { return nil }, nil
	}
	return NewFileSink(SinkConfig{FilePath: path})
}
