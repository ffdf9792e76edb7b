// Package logger writes one JSON object per line for extraction runs and keeps
// run-wide metrics (counters, gauges and timings).
//
//	logger.Info("Period parsed", logger.Fields{"period": "03/2024", "records": 412})
//	logger.Warn("Period unavailable", logger.Fields{"period": "04/2024", "error": err.Error()})
//	logger.IncrCounter("periods.fetched")
//	logger.RecordTiming("fetch.duration", d)
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var severity = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ParseLevel converts a level name (case-insensitive) to a Level
func ParseLevel(name string) (Level, error) {
	switch level := Level(strings.ToUpper(strings.TrimSpace(name))); level {
	case "":
		return LevelInfo, nil
	case "WARNING":
		return LevelWarn, nil
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return level, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level: %s", name)
	}
}

// Fields represents structured log fields
type Fields map[string]interface{}

type entry struct {
	Timestamp string `json:"timestamp"`
	Level     Level  `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Logger writes entries at or above its minimum level to an io.Writer
type Logger struct {
	mu       sync.Mutex
	minLevel Level
	output   io.Writer
}

// New creates a logger that discards messages below level
func New(level Level, output io.Writer) *Logger {
	return &Logger{minLevel: level, output: output}
}

// stdout is reserved for the run summary
var defaultLogger = New(LevelInfo, os.Stderr)

// SetDefault replaces the logger used by Debug, Info, Warn and Error
func SetDefault(l *Logger) {
	defaultLogger = l
}

func (l *Logger) enabled(level Level) bool {
	return severity[level] >= severity[l.minLevel]
}

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	if !l.enabled(level) {
		return
	}

	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Message:   message,
		Fields:    fields,
	}
	if err != nil {
		e.Error = err.Error()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	data, marshalErr := json.Marshal(e)
	if marshalErr != nil {
		fmt.Fprintf(l.output, "[%s] %s: %s (marshal error: %v)\n", e.Timestamp, e.Level, e.Message, marshalErr)
		return
	}
	fmt.Fprintln(l.output, string(data))
}

func Debug(message string, fields Fields) {
	defaultLogger.log(LevelDebug, message, fields, nil)
}

func Info(message string, fields Fields) {
	defaultLogger.log(LevelInfo, message, fields, nil)
}

func Warn(message string, fields Fields) {
	defaultLogger.log(LevelWarn, message, fields, nil)
}

// Error logs message with err attached as a top-level "error" key
func Error(message string, fields Fields, err error) {
	defaultLogger.log(LevelError, message, fields, err)
}
