package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"meigen/internal/config"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

var levelMap = map[string]LogLevel{
	"debug": DEBUG,
	"info":  INFO,
	"warn":  WARN,
	"error": ERROR,
}

// Logger is a leveled wrapper around the standard logger.
type Logger struct {
	mu     sync.RWMutex
	logger *log.Logger
	level  LogLevel
	closer io.Closer
}

// New builds a logger from config. Output is stdout, stderr, none or a file path.
func New(cfg config.LoggingConfig) (*Logger, error) {
	level, ok := levelMap[cfg.Level]
	if !ok {
		level = INFO
	}
	var out io.Writer
	var closer io.Closer
	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	case "stderr", "":
		out = os.Stderr
	case "none":
		out = io.Discard
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	}
	return &Logger{logger: log.New(out, cfg.Prefix, log.LstdFlags), level: level, closer: closer}, nil
}

// NewWriter logs to w at the given level. Handy in tests.
func NewWriter(w io.Writer, level LogLevel) *Logger {
	return &Logger{logger: log.New(w, "", 0), level: level}
}

// Discard drops everything.
func Discard() *Logger { return NewWriter(io.Discard, ERROR) }

// SetOutput redirects the logger, e.g. away from a terminal owned by the UI.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetOutput(w)
}

func (l *Logger) Debug(format string, args ...interface{}) { l.logf(DEBUG, "[DEBUG] ", format, args) }

func (l *Logger) Info(format string, args ...interface{}) { l.logf(INFO, "[INFO] ", format, args) }

func (l *Logger) Warn(format string, args ...interface{}) { l.logf(WARN, "[WARN] ", format, args) }

func (l *Logger) Error(format string, args ...interface{}) { l.logf(ERROR, "[ERROR] ", format, args) }

func (l *Logger) logf(level LogLevel, tag, format string, args []interface{}) {
	if l.level > level {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Printf(tag+format, args...)
}

// Close releases a log file opened by New.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
