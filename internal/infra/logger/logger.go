// Package logger holds the process-wide slog logger. It discards everything
// until Setup opens brix.log.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aalvaropc/brixbalance/internal/domain"
)

const (
	DefaultDir = ".brix/logs"
	FileName   = "brix.log"
)

// Config selects the log file and level. Debug overrides Level and adds
// source locations.
type Config struct {
	Root  string
	Dir   string
	Level slog.Level
	Debug bool
}

// FromSettings builds a Config from the log section of brix.yaml.
func FromSettings(root string, s domain.LogConfig, debug bool) (Config, error) {
	level, err := ParseLevel(s.Level)
	if err != nil {
		return Config{}, err
	}
	return Config{Root: root, Dir: s.Dir, Level: level, Debug: debug}, nil
}

// ParseLevel accepts debug, info, warn and error. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, domain.ErrInvalidConfig)
	}
	return l, nil
}

func (c Config) path() string {
	dir := c.Dir
	if dir == "" {
		dir = DefaultDir
	}
	if !filepath.IsAbs(dir) {
		root := c.Root
		if root == "" {
			root = "."
		}
		dir = filepath.Join(filepath.Clean(root), dir)
	}
	return filepath.Join(dir, FileName)
}

type sink struct {
	log  *slog.Logger
	file *os.File
	path string
}

var (
	mu      sync.RWMutex
	current = discard()
)

func discard() sink {
	return sink{log: slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

// Setup opens the log file described by cfg and makes it the global sink. On
// failure the global logger keeps discarding.
func Setup(cfg Config) (func() error, error) {
	path := cfg.path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		reset()
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		reset()
		return nil, err
	}

	level := cfg.Level
	if cfg.Debug {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level:       level,
		AddSource:   cfg.Debug,
		ReplaceAttr: utcTime,
	}))

	mu.Lock()
	current = sink{log: l, file: f, path: path}
	mu.Unlock()

	l.Info("logger.initialized", "path", path, "level", level.String())

	return func() error {
		mu.Lock()
		defer mu.Unlock()
		if current.file != f {
			return nil
		}
		current = discard()
		return f.Close()
	}, nil
}

func utcTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
	}
	return a
}

func reset() {
	mu.Lock()
	current = discard()
	mu.Unlock()
}

// L returns the process-wide logger.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current.log
}

// Path is the open log file, or "" while discarding.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return current.path
}
