package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger *zerolog.Logger
)

// ParseLevel maps "debug", "info", "warn" and "error" to zerolog levels.
// Anything else is INFO.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init configures the global logger. Console output goes to stderr so it
// does not interleave with the progress view on stdout; when file is set
// the same records are also appended to it.
func Init(level string, file string) error {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}

	if file != "" {
		f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		out = zerolog.MultiLevelWriter(out, f)
	}

	l := zerolog.New(out).With().Timestamp().Logger().Level(ParseLevel(level))
	Set(l)
	return nil
}

// Set replaces the global logger.
func Set(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = &l
}

// Get returns the global logger. Before Init it discards everything.
func Get() *zerolog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}

	nop := zerolog.Nop()
	return &nop
}

// WithComponent returns a child logger tagged with the component field.
func WithComponent(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}
