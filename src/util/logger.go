package util

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"sustainabot/src/config"
)

// LogLevel represents logging level
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var levelNames = [...]string{
	LogLevelDebug: "debug",
	LogLevelInfo:  "info",
	LogLevelWarn:  "warn",
	LogLevelError: "error",
}

// String returns the lowercase level name
func (l LogLevel) String() string {
	if l < LogLevelDebug || l > LogLevelError {
		return "info"
	}
	return levelNames[l]
}

// ParseLevel maps a level name to a LogLevel, defaulting to info
func ParseLevel(s string) LogLevel {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return LogLevel(i)
		}
	}
	return LogLevelInfo
}

// Logger writes leveled messages as text or JSON lines.
// Reports go to stdout; the logger defaults to stderr so the two never mix.
type Logger struct {
	mu        sync.Mutex
	out       io.Writer
	level     LogLevel
	json      bool
	timestamp bool
}

// NewLogger creates a logger from config, appending to cfg.File when set
func NewLogger(cfg config.LoggingConfig) *Logger {
	var out io.Writer = os.Stderr
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open log file %s, logging to stderr: %v\n", cfg.File, err)
		} else {
			out = f
		}
	}
	return NewLoggerTo(out, cfg)
}

// NewLoggerTo creates a logger writing to w; cfg.File is ignored
func NewLoggerTo(w io.Writer, cfg config.LoggingConfig) *Logger {
	return &Logger{
		out:       w,
		level:     ParseLevel(cfg.Level),
		json:      cfg.Format == "json",
		timestamp: cfg.IncludeTimestamp,
	}
}

// GetLevel returns the current log level as a string
func (l *Logger) GetLevel() string {
	return l.level.String()
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...any) { l.logf(LogLevelDebug, msg, args) }

// Info logs an info message
func (l *Logger) Info(msg string, args ...any) { l.logf(LogLevelInfo, msg, args) }

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...any) { l.logf(LogLevelWarn, msg, args) }

// Error logs an error message
func (l *Logger) Error(msg string, args ...any) { l.logf(LogLevelError, msg, args) }

type jsonRecord struct {
	Time  string `json:"time,omitempty"`
	Level string `json:"level"`
	Msg   string `json:"msg"`
}

func (l *Logger) logf(level LogLevel, msg string, args []any) {
	if level < l.level {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	tag := strings.ToUpper(level.String())

	var line []byte
	if l.json {
		rec := jsonRecord{Level: tag, Msg: msg}
		if l.timestamp {
			rec.Time = time.Now().UTC().Format(time.RFC3339)
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return
		}
		line = data
	} else {
		var sb strings.Builder
		if l.timestamp {
			sb.WriteString(time.Now().Format("2006-01-02 15:04:05 "))
		}
		sb.WriteString("[" + tag + "] ")
		sb.WriteString(msg)
		line = []byte(sb.String())
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Write(append(line, '\n'))
}

// DefaultLogger is the package-level default logger
var DefaultLogger = NewLogger(config.LoggingConfig{
	Level:            "info",
	IncludeTimestamp: true,
})

// SetDefaultLogger replaces the default logger
func SetDefaultLogger(cfg config.LoggingConfig) {
	DefaultLogger = NewLogger(cfg)
}

// Debug logs using the default logger
func Debug(msg string, args ...any) { DefaultLogger.Debug(msg, args...) }

// Info logs using the default logger
func Info(msg string, args ...any) { DefaultLogger.Info(msg, args...) }

// Warn logs using the default logger
func Warn(msg string, args ...any) { DefaultLogger.Warn(msg, args...) }

// Error logs using the default logger
func Error(msg string, args ...any) { DefaultLogger.Error(msg, args...) }
