// Package obslog owns the process-wide zap logger. Components log
// structured events named as lowercase snake_case verbs scoped by the
// emitting component (ingest_match, tracker_advance, role_reset,
// announce_posted) so a line can be filtered by event name alone; free
// text goes into fields, never into the event name.
package obslog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger = zap.NewNop()

// L returns the global logger.
func L() *zap.Logger { return globalLogger }

// Sync flushes buffered log entries. Call it on shutdown.
func Sync() { _ = globalLogger.Sync() }

// settings is the env-derived logger configuration.
type settings struct {
	level    zapcore.Level
	format   string
	console  bool
	toFile   bool
	filePath string
	caller   bool
}

func settingsFromEnv() settings {
	return settings{
		level:    parseLevel(getenvDefault("LOG_LEVEL", "info")),
		format:   strings.ToLower(strings.TrimSpace(getenvDefault("LOG_FORMAT", "text"))),
		console:  strings.EqualFold(getenvDefault("LOG_TO_CONSOLE", "true"), "true"),
		toFile:   strings.EqualFold(getenvDefault("LOG_TO_FILE", "true"), "true"),
		filePath: strings.TrimSpace(getenvDefault("LOG_FILE", filepath.Join("logs", "puzzlebot.log"))),
		caller:   strings.EqualFold(getenvDefault("LOG_CALLER", "false"), "true"),
	}
}

// InitFromEnv initializes the global logger from LOG_* environment
// settings. LOG_FORMAT selects text (pipe-separated, the default), json,
// or console output; console and file sinks share the format.
func InitFromEnv() error {
	s := settingsFromEnv()

	var cores []zapcore.Core
	if s.console {
		cores = append(cores, zapcore.NewCore(encoderFor(s.format), zapcore.AddSync(os.Stdout), s.level))
	}
	if s.toFile {
		if err := ensureDir(filepath.Dir(s.filePath)); err != nil {
			return err
		}
		f, err := os.OpenFile(s.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(encoderFor(s.format), zapcore.AddSync(f), s.level))
	}
	if len(cores) == 0 {
		// Both sinks disabled still leaves stdout so failures stay visible.
		cores = append(cores, zapcore.NewCore(encoderFor(s.format), zapcore.AddSync(os.Stdout), s.level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zapcore.ErrorLevel))
	if s.caller {
		logger = logger.WithOptions(zap.AddCaller())
	}
	globalLogger = logger
	return nil
}

func encoderFor(format string) zapcore.Encoder {
	switch format {
	case "json":
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(cfg)
	case "console":
		return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	default:
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.ConsoleSeparator = " | "
		return zapcore.NewConsoleEncoder(cfg)
	}
}

func ensureDir(dir string) error {
	if strings.TrimSpace(dir) == "" || dir == "." {
		return nil
	}
	if _, err := os.Stat(dir); err == nil {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "dpanic":
		return zapcore.DPanicLevel
	case "panic":
		return zapcore.PanicLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
