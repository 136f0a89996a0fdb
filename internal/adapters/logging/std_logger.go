package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/andrescamacho/colonysim-go/internal/infrastructure/config"
)

var levelRank = map[string]int{
	"DEBUG": 0,
	"INFO":  1,
	"WARN":  2,
	"ERROR": 3,
}

// StdLogger writes operation log lines as text or JSON, dropping lines below
// the configured level. Unknown levels are always written.
type StdLogger struct {
	mu         sync.Mutex
	out        io.Writer
	minRank    int
	jsonFormat bool
	clock      func() time.Time
}

// NewStdLogger creates a logger writing to out
func NewStdLogger(out io.Writer, level, format string) *StdLogger {
	rank, ok := levelRank[strings.ToUpper(level)]
	if !ok {
		rank = levelRank["INFO"]
	}
	return &StdLogger{
		out:        out,
		minRank:    rank,
		jsonFormat: strings.EqualFold(format, "json"),
		clock:      func() time.Time { return time.Now().UTC() },
	}
}

// NewStdLoggerFromConfig opens the configured destination. The returned
// closer must be called on shutdown; it is a no-op for stdout and stderr.
func NewStdLoggerFromConfig(cfg config.LoggingConfig) (*StdLogger, io.Closer, error) {
	var (
		out    io.Writer
		closer io.Closer = nopCloser{}
	)

	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	case "file":
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = file, file
	default:
		out = os.Stderr
	}

	return NewStdLogger(out, cfg.Level, cfg.Format), closer, nil
}

// WithClock overrides the timestamp source
func (l *StdLogger) WithClock(clock func() time.Time) *StdLogger {
	l.clock = clock
	return l
}

// Log implements common.OperationLogger
func (l *StdLogger) Log(level, message string, metadata map[string]interface{}) {
	level = strings.ToUpper(level)
	if rank, ok := levelRank[level]; ok && rank < l.minRank {
		return
	}

	var line string
	if l.jsonFormat {
		line = l.formatJSON(level, message, metadata)
	} else {
		line = l.formatText(level, message, metadata)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, line+"\n")
}

func (l *StdLogger) formatText(level, message string, metadata map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s %s", l.clock().Format(time.RFC3339), level, message)
	for _, key := range sortedKeys(metadata) {
		fmt.Fprintf(&b, " %s=%v", key, metadata[key])
	}
	return b.String()
}

func (l *StdLogger) formatJSON(level, message string, metadata map[string]interface{}) string {
	entry := make(map[string]interface{}, len(metadata)+3)
	for key, value := range metadata {
		entry[key] = value
	}
	entry["time"] = l.clock().Format(time.RFC3339)
	entry["level"] = level
	entry["message"] = message

	data, err := json.Marshal(entry)
	if err != nil {
		return l.formatText(level, message, metadata)
	}
	return string(data)
}

func sortedKeys(metadata map[string]interface{}) []string {
	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
