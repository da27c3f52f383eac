// FILE: lixenwraith/asynclog/format_test.go
package log

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord() Record {
	return Record{
		File:      "main.go",
		Line:      17,
		Component: "net",
		Level:     LevelWarn,
		Timestamp: TimestampFromUsec(1700000000123456),
		Message:   "disk \"almost\" full",
	}
}

func TestDefaultFormatter(t *testing.T) {
	f := NewDefaultFormatter()

	got := f.Format(NewLogger(), " ", testRecord())
	assert.Equal(t, "1700000000123456 WARN net main.go 17 disk \"almost\" full\n", got)

	got = f.Format(NewLogger(), "\t", testRecord())
	assert.Equal(t, "1700000000123456\tWARN\tnet\tmain.go\t17\tdisk \"almost\" full\n", got)
}

func TestDefaultFormatterEncodesControlRunes(t *testing.T) {
	rec := testRecord()
	rec.Message = "a\r\nb\x00c"

	got := NewDefaultFormatter().Format(NewLogger(), " ", rec)
	assert.Equal(t, "1700000000123456 WARN net main.go 17 a<0d><0a>b<00>c\n", got)
}

func TestDefaultFormatterEncodesControlRunesInFields(t *testing.T) {
	rec := testRecord()
	rec.Component = "n\net"
	rec.File = "ma\tin.go"

	got := NewDefaultFormatter().Format(NewLogger(), " ", rec)
	assert.Equal(t, "1700000000123456 WARN n<0a>et ma<09>in.go 17 disk \"almost\" full\n", got)
}

func TestDefaultFormatterWritesRecordLevel(t *testing.T) {
	logger := NewLogger()
	logger.SetLevel(LevelError)

	got := NewDefaultFormatter().Format(logger, " ", testRecord())
	assert.True(t, strings.HasPrefix(got, "1700000000123456 WARN "), got)
}

func TestJSONFormatter(t *testing.T) {
	rec := testRecord()
	rec.Message = "line1\nline2 \"q\""

	got := NewJSONFormatter().Format(NewLogger(), "ignored", rec)
	require.True(t, len(got) > 0 && got[len(got)-1] == '\n')

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &entry))
	assert.Equal(t, 1700000000123456.0, entry["ts"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "net", entry["component"])
	assert.Equal(t, "main.go", entry["file"])
	assert.Equal(t, 17.0, entry["line"])
	assert.Equal(t, "line1\nline2 \"q\"", entry["msg"])
}

func TestFormatterByName(t *testing.T) {
	f, err := formatterByName("txt")
	require.NoError(t, err)
	assert.Equal(t, FormatTxt, formatterName(f))

	f, err = formatterByName("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, formatterName(f))

	_, err = formatterByName("yaml")
	assert.Error(t, err)

	custom := FormatterFunc(func(Context, string, Record) string { return "" })
	assert.Equal(t, "custom", formatterName(custom))
	assert.Equal(t, "", formatterName(nil))
}

type point struct {
	X, Y int
}

type named string

func (n named) String() string { return "named:" + string(n) }

func TestRenderValues(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want string
	}{
		{"scalars", []any{"a", 1, int64(-2), uint(3), 1.5, true, nil}, "a 1 -2 3 1.5 true nil"},
		{"duration", []any{1500 * time.Millisecond}, "1.5s"},
		{"error", []any{errors.New("boom")}, "boom"},
		{"stringer", []any{named("x")}, "named:x"},
		{"bytes", []any{[]byte{0xde, 0xad}}, "dead"},
		{"time", []any{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}, "2025-01-01T00:00:00Z"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderValues(tt.args))
		})
	}
}

func TestRenderValuesComposite(t *testing.T) {
	got := renderValues([]any{"p", point{X: 1, Y: 2}, map[string]int{"b": 2, "a": 1}})

	assert.NotContains(t, got, "\n", "composite dumps are collapsed to one line")
	assert.Contains(t, got, "X: (int) 1")
	assert.Contains(t, got, "Y: (int) 2")
	assert.Regexp(t, `"a": \(int\) 1.*"b": \(int\) 2`, got, "map keys are sorted")
}
