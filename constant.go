// FILE: lixenwraith/asynclog/constant.go
package log

import (
	"time"
)

// Level is an ordered record severity, lowest priority first
type Level int64

// Log level constants
const (
	LevelSilent  Level = -1
	LevelVerbose Level = 0
	LevelDebug   Level = 1
	LevelInfo    Level = 2
	LevelWarn    Level = 3
	LevelError   Level = 4
	LevelFatal   Level = 5
)

// Pipeline lifecycle
const (
	stateCreated int32 = iota
	stateRunning
	stateStopped
)

// Rendering and output defaults
const (
	// Render buffer for one message, the stored message is at most one byte shorter
	defaultMessageBufferSize int64 = 2048
	// Smallest accepted render buffer
	minMessageBufferSize int64 = 16
	defaultDelimiter             = " "
	// Local time layout used in archive names
	archiveTimestampLayout = "2006-01-02-150405"
	// Component name used for heartbeat records
	heartbeatComponent = "heartbeat"
)

// Formats selectable by name through Config
const (
	FormatTxt  = "txt"
	FormatJSON = "json"
)

// Timers
const (
	// Floor for the heartbeat ticker
	minHeartbeatInterval = time.Second
)
