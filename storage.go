// FILE: lixenwraith/asynclog/storage.go
package log

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// Most archive names tried when several rotations land in the same second
const maxArchiveCollisions = 1000

// fileSink is the output file and its rotation policy.
// Only the consumer goroutine writes; mu also guards reconfiguration and the offset.
type fileSink struct {
	mu          sync.Mutex
	file        *os.File
	offset      int64
	path        string
	archiveBase string // path without its extension
	archiveExt  string // extension including the dot, or empty
	rotateSize  int64  // bytes, <= 0 disables rotation
}

// splitArchiveTemplate derives the archive name parts from the live path.
// "dir/app.log" archives as "dir/app-<ts>.log", "dir/app" as "dir/app-<ts>".
func splitArchiveTemplate(path string) (base, ext string) {
	ext = filepath.Ext(path)
	return strings.TrimSuffix(path, ext), ext
}

// archiveName builds the archive path for a timestamp suffix
func (s *fileSink) archiveName(suffix string) string {
	return s.archiveBase + "-" + suffix + s.archiveExt
}

// openSinkFile closes any current handle and opens path, truncated or for appending.
// On failure the sink stays writer-less and the error is reported and returned.
func (l *Logger) openSinkFile(path string, truncate bool) error {
	s := &l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		if err := s.file.Close(); err != nil {
			l.internalLog("failed to close log file '%s': %v\n", s.path, err)
		}
		s.file = nil
	}

	s.path = path
	s.archiveBase, s.archiveExt = splitArchiveTemplate(path)
	s.offset = 0

	flags := os.O_CREATE | os.O_WRONLY
	if truncate {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		l.internalLog("couldn't open file for logging '%s': %v\n", path, err)
		return fmtErrorf("failed to open log file '%s': %w", path, err)
	}
	if !truncate {
		if fi, errStat := file.Stat(); errStat == nil {
			s.offset = fi.Size()
		}
	}
	s.file = file
	return nil
}

// closeSinkFile syncs and closes the current handle
func (l *Logger) closeSinkFile() error {
	s := &l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}

	var finalErr error
	if err := s.file.Sync(); err != nil {
		finalErr = fmtErrorf("failed to sync log file '%s': %w", s.path, err)
	}
	if err := s.file.Close(); err != nil {
		finalErr = combineErrors(finalErr, fmtErrorf("failed to close log file '%s': %w", s.path, err))
	}
	s.file = nil
	return finalErr
}

// writeLine writes one formatted line and rotates once the offset exceeds the threshold.
// Returns false if there was no handle or the write failed.
func (l *Logger) writeLine(line string) bool {
	s := &l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return false
	}

	n, err := s.file.WriteString(line)
	s.offset += int64(n)
	if err != nil {
		l.internalLog("failed to write to log file '%s': %v\n", s.path, err)
		return false
	}

	if s.rotateSize > 0 && s.offset > s.rotateSize {
		l.rotateLocked()
	}
	return true
}

// rotateLocked archives the live file under a timestamped name and reopens the original path.
// A failed rename is reported and logging continues on the truncated live path. s.mu must be held.
func (l *Logger) rotateLocked() {
	s := &l.sink
	if s.file == nil {
		return
	}

	if err := s.file.Close(); err != nil {
		l.internalLog("failed to close log file before rotation: %v\n", err)
	}
	s.file = nil

	suffix := l.wallNow().Local().Format(archiveTimestampLayout)
	archivePath := l.uniqueArchiveName(suffix)

	if err := os.Rename(s.path, archivePath); err != nil {
		l.internalLog("couldn't rotate files from '%s' to '%s': %v\n", s.path, archivePath, err)
		l.state.RotationFailures.Add(1)
	} else {
		l.state.TotalRotations.Add(1)
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		l.internalLog("failed to reopen log file '%s' after rotation: %v\n", s.path, err)
		s.offset = 0
		return
	}
	s.file = file
	s.offset = 0
}

// uniqueArchiveName returns the archive path for suffix, adding -N when that name is taken
func (l *Logger) uniqueArchiveName(suffix string) string {
	s := &l.sink
	name := s.archiveName(suffix)
	for i := 1; i <= maxArchiveCollisions; i++ {
		if _, err := os.Lstat(name); errors.Is(err, fs.ErrNotExist) {
			return name
		}
		name = s.archiveName(suffix + "-" + strconv.Itoa(i))
	}
	return name
}

// FileName returns the live output path, empty if none was set
func (l *Logger) FileName() string {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return l.sink.path
}

// SetRotationSize sets the byte threshold checked after each write. Zero or negative disables rotation.
func (l *Logger) SetRotationSize(size int64) {
	if size < 0 {
		size = 0
	}
	l.sink.mu.Lock()
	l.sink.rotateSize = size
	l.sink.mu.Unlock()
	l.updateConfig(func(c *Config) { c.RotationSize = size })
}

// currentOffset reports the bytes written to the live file since it was opened
func (l *Logger) currentOffset() int64 {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return l.sink.offset
}
