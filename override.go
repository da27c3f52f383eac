// FILE: lixenwraith/asynclog/override.go
package log

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyOverride applies string key-value overrides to the logger's current configuration.
// Each override should be in the format "key=value". All overrides are parsed before
// anything is applied, a single bad entry leaves the logger untouched.
//
// Example:
//
//	logger := log.NewLogger()
//	err := logger.ApplyOverride(
//	    "file=/var/log/app.log",
//	    "level=debug",
//	    "rotation_size=1048576",
//	)
func (l *Logger) ApplyOverride(overrides ...string) error {
	cfg := l.getConfig().Clone()

	var errs []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if err := applyConfigField(cfg, key, value); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return combineConfigErrors(errs)
	}

	return l.ApplyConfig(cfg)
}

// combineConfigErrors combines multiple configuration errors into a single numbered error
func combineConfigErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}

	var sb strings.Builder
	sb.WriteString("log: multiple configuration errors:")
	for i, err := range errs {
		errMsg := strings.TrimPrefix(err.Error(), "log: ")
		fmt.Fprintf(&sb, "\n  %d. %s", i+1, errMsg)
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	case "level":
		if _, err := ParseLevel(value); err != nil {
			return fmtErrorf("invalid level value '%s': %w", value, err)
		}
		cfg.Level = value
	case "file":
		cfg.File = value
	case "format":
		cfg.Format = value
	case "delimiter":
		cfg.Delimiter = value

	case "message_buffer_size":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for message_buffer_size '%s': %w", value, err)
		}
		cfg.MessageBufferSize = intVal
	case "rotation_size":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for rotation_size '%s': %w", value, err)
		}
		cfg.RotationSize = intVal

	case "heartbeat_interval_s":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for heartbeat_interval_s '%s': %w", value, err)
		}
		cfg.HeartbeatIntervalS = intVal

	case "internal_errors_to_stderr":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for internal_errors_to_stderr '%s': %w", value, err)
		}
		cfg.InternalErrorsToStderr = boolVal

	default:
		return fmtErrorf("unknown configuration key '%s'", key)
	}

	return nil
}
