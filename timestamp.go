// FILE: lixenwraith/asynclog/timestamp.go
package log

import (
	"strconv"
	"time"

	"github.com/trickstertwo/xclock"
)

// Timestamp is a wall-clock instant in microseconds since the Unix epoch
type Timestamp struct {
	usec uint64
}

// Now reads the process clock
func Now() Timestamp {
	return TimestampFromTime(xclock.Now())
}

// NowFrom reads the given clock, falling back to the process clock when nil
func NowFrom(c xclock.Clock) Timestamp {
	if c == nil {
		return Now()
	}
	return TimestampFromTime(c.Now())
}

// TimestampFromUsec wraps a raw microsecond count
func TimestampFromUsec(usec uint64) Timestamp {
	return Timestamp{usec: usec}
}

// TimestampFromTime truncates t to microsecond resolution. Instants before the epoch map to zero.
func TimestampFromTime(t time.Time) Timestamp {
	us := t.UnixMicro()
	if us < 0 {
		return Timestamp{}
	}
	return Timestamp{usec: uint64(us)}
}

func (t Timestamp) Usec() uint64 { return t.usec }
func (t Timestamp) Msec() uint64 { return t.usec / 1000 }
func (t Timestamp) Sec() uint64  { return t.usec / 1000000 }

// Add returns t shifted forward by d
func (t Timestamp) Add(d Timestamp) Timestamp {
	return Timestamp{usec: t.usec + d.usec}
}

// Sub returns t minus d, saturating at zero
func (t Timestamp) Sub(d Timestamp) Timestamp {
	if d.usec > t.usec {
		return Timestamp{}
	}
	return Timestamp{usec: t.usec - d.usec}
}

func (t Timestamp) After(u Timestamp) bool  { return t.usec > u.usec }
func (t Timestamp) Before(u Timestamp) bool { return t.usec < u.usec }
func (t Timestamp) Equal(u Timestamp) bool  { return t.usec == u.usec }

// IsZero reports whether t is the epoch
func (t Timestamp) IsZero() bool { return t.usec == 0 }

// Time converts back to a time.Time in local time
func (t Timestamp) Time() time.Time {
	return time.UnixMicro(int64(t.usec))
}

// String renders the raw microsecond count, the form written to log files
func (t Timestamp) String() string {
	return strconv.FormatUint(t.usec, 10)
}

// AppendTo appends the decimal microsecond count to buf
func (t Timestamp) AppendTo(buf []byte) []byte {
	return strconv.AppendUint(buf, t.usec, 10)
}
