package main

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	CACHE_ENV = "ADDER_CACHE"
	LOG_ENV   = "ADDER_LOG"

	OS_WINDOWS = "windows"
	OS_DARWIN  = "darwin"

	HISTORY_FILE = "history"
)

type config struct {
	CacheDir string
	LogLevel zerolog.Level
}

func loadConfig() config {
	return config{
		CacheDir: defaultCacheDir(),
		LogLevel: logLevel(os.Getenv(LOG_ENV)),
	}
}

// defaultCacheDir returns ADDER_CACHE if set, otherwise the platform cache
// directory for windows, mac and linux.
func defaultCacheDir() string {
	if env := os.Getenv(CACHE_ENV); env != "" {
		return env
	}

	homeDir, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case OS_WINDOWS:
		if localAppData := os.Getenv("LocalAppData"); localAppData != "" {
			return filepath.Join(localAppData, "adder")
		}
		return filepath.Join(homeDir, "AppData", "Local", "adder")

	case OS_DARWIN:
		return filepath.Join(homeDir, "Library", "Caches", "adder")

	default: // Linux and others
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, "adder")
		}
		return filepath.Join(homeDir, ".cache", "adder")
	}
}

// logLevel parses ADDER_LOG. Empty or invalid values mean warn.
func logLevel(s string) zerolog.Level {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return zerolog.WarnLevel
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return lvl
}

func newLogger(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
