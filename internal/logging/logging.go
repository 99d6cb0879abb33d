package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	mu      sync.Mutex
	logFile *os.File
	debug   atomic.Bool
)

// Init routes the standard logger to stderr and, when logPath is set, to an
// appended log file as well. Stdout is left to the report.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	writers = append(writers, os.Stderr)

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

// SetDebug toggles LogDebug and LogPhase output.
func SetDebug(enabled bool) { debug.Store(enabled) }

// DebugEnabled reports whether debug events are written.
func DebugEnabled() bool { return debug.Load() }

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

func LogDebug(format string, args ...any) {
	if !debug.Load() {
		return
	}
	LogEvent(format, args...)
}

// LogPhase records a runner state transition for one benchmark entry.
// Phase transitions are only written in debug mode.
func LogPhase(phase, entry string, detail any) {
	if !debug.Load() {
		return
	}
	log.Println(buildPhaseMessage(phase, entry, detail))
}

func buildPhaseMessage(phase, entry string, detail any) string {
	p := strings.TrimSpace(phase)
	if p != "" {
		p = strings.ToUpper(p)
	}
	entryValue := strings.TrimSpace(entry)
	if entryValue == "" {
		entryValue = "unknown"
	}
	parts := []string{fmt.Sprintf("[%s]", p)}
	parts = append(parts, fmt.Sprintf("entry=%s", entryValue))
	if detail != nil {
		parts = append(parts, fmt.Sprintf("detail=%s", formatDetail(detail)))
	}
	return strings.Join(parts, " ")
}

func formatDetail(detail any) string {
	switch v := detail.(type) {
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
	case error:
		return v.Error()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
