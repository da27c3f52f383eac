// FILE: lixenwraith/asynclog/config.go
package log

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/lixenwraith/config"
)

// ErrNilConfig is returned when a nil configuration is applied
var ErrNilConfig = errors.New("log: configuration cannot be nil")

// Config holds all logger configuration values
type Config struct {
	// Basic settings
	Level  string `toml:"level"`  // Threshold name or number
	File   string `toml:"file"`   // Output path, empty means no sink yet
	Format string `toml:"format"` // "txt" or "json"

	// Output shaping
	Delimiter         string `toml:"delimiter"`           // Field separator for the txt format
	MessageBufferSize int64  `toml:"message_buffer_size"` // Render buffer, messages keep at most size-1 bytes
	RotationSize      int64  `toml:"rotation_size"`       // Bytes before rotation, 0 disables

	// Heartbeat configuration
	HeartbeatIntervalS int64 `toml:"heartbeat_interval_s"` // Seconds between heartbeat records, 0 disables

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Report pipeline failures to the error writer
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Level:  "warn",
	File:   "",
	Format: FormatTxt,

	Delimiter:         defaultDelimiter,
	MessageBufferSize: defaultMessageBufferSize,
	RotationSize:      0,

	HeartbeatIntervalS: 0,

	InternalErrorsToStderr: true,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from the [log] table of a TOML file and returns a validated Config.
// A missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()

	if err := loader.RegisterStruct("log.", *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, "log.", cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides keyed by toml name
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmtErrorf("failed to apply overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig copies loader values into cfg by toml tag
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue
		}

		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tomlTag := t.Field(i).Tag.Get("toml"); tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion.
// String fields also accept integers so a numeric TOML level loads.
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		switch v := value.(type) {
		case string:
			field.SetString(v)
		case int64:
			field.SetString(strconv.FormatInt(v, 10))
		case int:
			field.SetString(strconv.Itoa(v))
		default:
			return fmt.Errorf("expected string, got %T", value)
		}

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case float64:
			if v != float64(int64(v)) {
				return fmt.Errorf("expected integer, got %v", v)
			}
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}

	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}

	if c.Format != FormatTxt && c.Format != FormatJSON {
		return fmtErrorf("invalid format: '%s' (use txt or json)", c.Format)
	}

	if c.Format == FormatTxt && c.Delimiter == "" {
		return fmtErrorf("delimiter cannot be empty for txt format")
	}

	if strings.ContainsAny(c.Delimiter, "\r\n") {
		return fmtErrorf("delimiter cannot contain line breaks: %q", c.Delimiter)
	}

	if c.MessageBufferSize < minMessageBufferSize {
		return fmtErrorf("message_buffer_size must be at least %d: %d", minMessageBufferSize, c.MessageBufferSize)
	}

	if c.RotationSize < 0 {
		return fmtErrorf("rotation_size cannot be negative: %d", c.RotationSize)
	}

	if c.HeartbeatIntervalS < 0 {
		return fmtErrorf("heartbeat_interval_s cannot be negative: %d", c.HeartbeatIntervalS)
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}
