// FILE: lixenwraith/asynclog/utility.go
package log

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// String returns the level token written to log lines
func (lv Level) String() string {
	switch lv {
	case LevelSilent:
		return "SILENT"
	case LevelVerbose:
		return "VERBOSE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNDEFINED_LOG_LEVEL"
	}
}

// ParseLevel converts a level name or number to a Level
func ParseLevel(levelStr string) (Level, error) {
	s := strings.TrimSpace(levelStr)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		lv := Level(n)
		if lv < LevelSilent || lv > LevelFatal {
			return 0, fmtErrorf("level out of range: %d", n)
		}
		return lv, nil
	}

	switch strings.ToLower(s) {
	case "silent":
		return LevelSilent, nil
	case "verbose":
		return LevelVerbose, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	default:
		return 0, fmtErrorf("invalid level string: '%s' (use silent, verbose, debug, info, warn, error, fatal)", levelStr)
	}
}

// callerLocation returns the base file name and line of the caller skip frames above it
func callerLocation(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "???", 0
	}
	return filepath.Base(file), line
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "log: ") {
		format = "log: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string.
// Values of whitespace-significant keys are kept verbatim.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(arg, "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := parts[1]
	if key != "delimiter" {
		value = strings.TrimSpace(value)
	}
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}
