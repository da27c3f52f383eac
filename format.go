// FILE: lixenwraith/asynclog/format.go
package log

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/lixenwraith/asynclog/sanitizer"
)

// Context is the read-only view of the pipeline handed to formatters
type Context interface {
	GetLevel() Level
	FileName() string
}

// Formatter converts one record into a line of text
type Formatter interface {
	Format(ctx Context, delim string, rec Record) string
}

// FormatterFunc adapts a plain function to Formatter
type FormatterFunc func(ctx Context, delim string, rec Record) string

func (f FormatterFunc) Format(ctx Context, delim string, rec Record) string {
	return f(ctx, delim, rec)
}

// DefaultFormatter writes timestamp, level, component, file, line and message joined by the delimiter.
// The level written is the record's own level, not the logger threshold.
// Non-printable runes in the component, file and message are hex encoded so a record never spans lines.
type DefaultFormatter struct {
	san *sanitizer.Sanitizer
}

// NewDefaultFormatter creates the delimited text formatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{san: sanitizer.New().Policy(sanitizer.PolicyTxt)}
}

func (f *DefaultFormatter) Format(_ Context, delim string, rec Record) string {
	buf := make([]byte, 0, 64+len(rec.Component)+len(rec.File)+len(rec.Message))
	buf = rec.Timestamp.AppendTo(buf)
	buf = append(buf, delim...)
	buf = append(buf, rec.Level.String()...)
	buf = append(buf, delim...)
	buf = f.san.Append(buf, rec.Component)
	buf = append(buf, delim...)
	buf = f.san.Append(buf, rec.File)
	buf = append(buf, delim...)
	buf = strconv.AppendInt(buf, int64(rec.Line), 10)
	buf = append(buf, delim...)
	buf = f.san.Append(buf, rec.Message)
	buf = append(buf, '\n')
	return string(buf)
}

// JSONFormatter writes one JSON object per record. The delimiter is ignored.
type JSONFormatter struct{}

// NewJSONFormatter creates the JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Format(_ Context, _ string, rec Record) string {
	buf := make([]byte, 0, 96+len(rec.Component)+len(rec.File)+len(rec.Message))
	buf = append(buf, `{"ts":`...)
	buf = rec.Timestamp.AppendTo(buf)
	buf = append(buf, `,"level":`...)
	buf = sanitizer.AppendJSONString(buf, rec.Level.String())
	buf = append(buf, `,"component":`...)
	buf = sanitizer.AppendJSONString(buf, rec.Component)
	buf = append(buf, `,"file":`...)
	buf = sanitizer.AppendJSONString(buf, rec.File)
	buf = append(buf, `,"line":`...)
	buf = strconv.AppendInt(buf, int64(rec.Line), 10)
	buf = append(buf, `,"msg":`...)
	buf = sanitizer.AppendJSONString(buf, rec.Message)
	buf = append(buf, '}', '\n')
	return string(buf)
}

// formatterByName maps Config.Format to a formatter
func formatterByName(name string) (Formatter, error) {
	switch name {
	case FormatTxt, "":
		return NewDefaultFormatter(), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	default:
		return nil, fmtErrorf("invalid format: '%s' (use txt or json)", name)
	}
}

// formatterName is the inverse of formatterByName for built-in formatters
func formatterName(f Formatter) string {
	switch f.(type) {
	case *DefaultFormatter:
		return FormatTxt
	case *JSONFormatter:
		return FormatJSON
	case nil:
		return ""
	default:
		return "custom"
	}
}

// Compact single-line dumper for values without a natural string form
var valueDumper = &spew.ConfigState{
	Indent:                  "",
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// renderValues joins args with single spaces
func renderValues(args []any) string {
	buf := make([]byte, 0, 64)
	for i, arg := range args {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = appendValue(buf, arg)
	}
	return string(buf)
}

// appendValue converts any value to its text representation.
// Composite types fall back to spew.
func appendValue(buf []byte, v any) []byte {
	switch val := v.(type) {
	case string:
		return append(buf, val...)
	case int:
		return strconv.AppendInt(buf, int64(val), 10)
	case int64:
		return strconv.AppendInt(buf, val, 10)
	case int32:
		return strconv.AppendInt(buf, int64(val), 10)
	case uint:
		return strconv.AppendUint(buf, uint64(val), 10)
	case uint64:
		return strconv.AppendUint(buf, val, 10)
	case uint32:
		return strconv.AppendUint(buf, uint64(val), 10)
	case float32:
		return strconv.AppendFloat(buf, float64(val), 'f', -1, 32)
	case float64:
		return strconv.AppendFloat(buf, val, 'f', -1, 64)
	case bool:
		return strconv.AppendBool(buf, val)
	case nil:
		return append(buf, "nil"...)
	case time.Time:
		return val.AppendFormat(buf, time.RFC3339Nano)
	case time.Duration:
		return append(buf, val.String()...)
	case error:
		return append(buf, val.Error()...)
	case fmt.Stringer:
		return append(buf, val.String()...)
	case []byte:
		return hex.AppendEncode(buf, val)
	default:
		var b bytes.Buffer
		valueDumper.Fdump(&b, val)
		return append(buf, bytes.Join(bytes.Fields(b.Bytes()), []byte{' '})...)
	}
}
