// Package logger wraps zap with a process-wide logger configured once at startup.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls logger initialization
type Config struct {
	LogFile   string // optional file sink in addition to stdout
	LogLevel  string // debug, info, warn, error
	AppName   string // added to every entry as "app"
	AddCaller bool
}

// Logger is a thin wrapper so packages depend on this type, not zap directly
type Logger struct {
	*zap.Logger
}

var global *Logger

// Init builds the global logger. Must be called before Get.
func Init(cfg Config) error {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", cfg.LogLevel, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stdout"}
	if cfg.LogFile != "" {
		zapCfg.OutputPaths = append(zapCfg.OutputPaths, cfg.LogFile)
	}
	zapCfg.InitialFields = map[string]interface{}{
		"app": cfg.AppName,
	}

	opts := []zap.Option{}
	if cfg.AddCaller {
		opts = append(opts, zap.AddCaller())
	}

	zl, err := zapCfg.Build(opts...)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	global = &Logger{zl}
	return nil
}

// Get returns the global logger, falling back to a no-op logger if Init
// was never called (keeps tests quiet).
func Get() *Logger {
	if global == nil {
		global = &Logger{zap.NewNop()}
	}
	return global
}

// Sync flushes buffered entries. Safe to call on shutdown.
func Sync() error {
	if global == nil {
		return nil
	}
	return global.Logger.Sync()
}
