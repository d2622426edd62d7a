// internal/logging/logging.go

// Package logging routes process logs to stdout and an optional log file.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init directs the standard logger to stdout and, when logPath is set, to
// an append-only file as well. Calling Init again replaces the file.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	writers = append(writers, os.Stdout)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close releases the log file, if any, and points the logger back at stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// LogEvent writes a formatted line.
func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogWarn writes a formatted line tagged as a warning.
func LogWarn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println("[WARN] " + msg)
}

// LogRequest writes a single mock-service request line.
func LogRequest(method, scenario string, params map[string]any) {
	log.Println(buildRequestMessage(method, scenario, params))
}

func buildRequestMessage(method, scenario string, params map[string]any) string {
	methodValue := strings.TrimSpace(method)
	if methodValue == "" {
		methodValue = "unknown"
	}
	scenarioValue := strings.TrimSpace(scenario)
	if scenarioValue == "" {
		scenarioValue = "unknown"
	}
	parts := []string{"[MOCK]"}
	parts = append(parts, fmt.Sprintf("method=%s", methodValue))
	parts = append(parts, fmt.Sprintf("scenario=%s", scenarioValue))

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, formatPayload(params[k])))
	}
	return strings.Join(parts, " ")
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
