// FILE: lixenwraith/asynclog/interface.go
package log

// Leveled entry points. Each captures the caller's file and line and the current
// timestamp, then behaves as Logf.

// Fatalf logs at fatal level. It does not exit the process.
func (l *Logger) Fatalf(component, format string, args ...any) int {
	file, line := callerLocation(1)
	return l.Logf(LevelFatal, file, line, l.now(), component, format, args...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(component, format string, args ...any) int {
	file, line := callerLocation(1)
	return l.Logf(LevelError, file, line, l.now(), component, format, args...)
}

// Warnf logs at warn level.
func (l *Logger) Warnf(component, format string, args ...any) int {
	file, line := callerLocation(1)
	return l.Logf(LevelWarn, file, line, l.now(), component, format, args...)
}

// Infof logs at info level.
func (l *Logger) Infof(component, format string, args ...any) int {
	file, line := callerLocation(1)
	return l.Logf(LevelInfo, file, line, l.now(), component, format, args...)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(component, format string, args ...any) int {
	file, line := callerLocation(1)
	return l.Logf(LevelDebug, file, line, l.now(), component, format, args...)
}

// Verbosef logs at verbose level.
func (l *Logger) Verbosef(component, format string, args ...any) int {
	file, line := callerLocation(1)
	return l.Logf(LevelVerbose, file, line, l.now(), component, format, args...)
}

// Silentf logs at silent level, written only when the threshold is silent.
func (l *Logger) Silentf(component, format string, args ...any) int {
	file, line := callerLocation(1)
	return l.Logf(LevelSilent, file, line, l.now(), component, format, args...)
}
