// Package log configures the process-wide slog logger.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	charmlog "charm.land/log/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	initOnce    sync.Once
	initialized atomic.Bool
)

// Setup routes the default slog logger to a rotating JSON log file. Only
// the first call has an effect.
func Setup(logFile string, debug bool) {
	initOnce.Do(func() {
		rotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 0,
			MaxAge:     30, // days
			Compress:   false,
		}

		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}

		logger := slog.NewJSONHandler(rotator, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})

		slog.SetDefault(slog.New(logger))
		initialized.Store(true)
	})
}

// Initialized reports whether Setup has run.
func Initialized() bool {
	return initialized.Load()
}

// Console returns a human readable logger writing to w, for headless
// commands.
func Console(w io.Writer, debug bool) *slog.Logger {
	level := charmlog.InfoLevel
	if debug {
		level = charmlog.DebugLevel
	}
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "picklist",
	})
	return slog.New(handler)
}

// RecoverPanic logs a panic and writes it to a timestamped file before
// running cleanup. Use it deferred at the top of goroutines and main.
func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		if Initialized() {
			slog.Error("Panic recovered", "name", name, "panic", r)
		} else {
			fmt.Fprintf(os.Stderr, "panic in %s: %v\n", name, r)
		}

		filename := fmt.Sprintf("picklist-panic-%s-%s.log", name, time.Now().Format("20060102-150405"))
		if f, err := os.Create(filename); err == nil {
			fmt.Fprintf(f, "Panic in %s: %v\n\nTime: %s\n", name, r, time.Now().Format(time.RFC3339))
			_ = f.Close()
		}

		if cleanup != nil {
			cleanup()
		}
	}
}
