// FILE: lixenwraith/asynclog/compat/record.go
package compat

import (
	"fmt"
	"path/filepath"
	"runtime"

	log "github.com/lixenwraith/asynclog"
)

// logAt forwards an adapter call to Logf, attributed to the framework code that called the adapter
func logAt(l *log.Logger, level log.Level, component, format string, args ...any) {
	file, line := "???", 0
	// 0 is logAt, 1 the adapter method, 2 its caller
	if _, f, ln, ok := runtime.Caller(2); ok {
		file, line = filepath.Base(f), ln
	}
	l.Logf(level, file, line, l.Now(), component, format, args...)
}

func fmtMessage(format string, args []any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
