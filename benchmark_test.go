// FILE: lixenwraith/asynclog/benchmark_test.go
package log

import (
	"path/filepath"
	"testing"
)

func benchmarkLogger(b *testing.B, format string) *Logger {
	b.Helper()
	logger, err := NewBuilder().
		File(filepath.Join(b.TempDir(), "bench.log")).
		LevelString("info").
		Format(format).
		Build()
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = logger.Shutdown() })
	return logger
}

func BenchmarkInfof(b *testing.B) {
	logger := benchmarkLogger(b, FormatTxt)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Infof("bench", "request id=%d status=%d", i, 200)
	}
}

func BenchmarkInfofParallel(b *testing.B) {
	logger := benchmarkLogger(b, FormatTxt)
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			logger.Infof("bench", "request id=%d", i)
			i++
		}
	})
}

func BenchmarkFilteredDebugf(b *testing.B) {
	logger := benchmarkLogger(b, FormatTxt)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debugf("bench", "never rendered %d", i)
	}
}

func BenchmarkLogv(b *testing.B) {
	logger := benchmarkLogger(b, FormatTxt)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Logv(LevelInfo, "bench", "id", i, "ok", true)
	}
}

func BenchmarkDefaultFormatter(b *testing.B) {
	f := NewDefaultFormatter()
	ctx := NewLogger()
	rec := Record{File: "main.go", Line: 10, Component: "net", Level: LevelInfo, Timestamp: Now(), Message: "request served status=200"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Format(ctx, " ", rec)
	}
}

func BenchmarkJSONFormatter(b *testing.B) {
	f := NewJSONFormatter()
	ctx := NewLogger()
	rec := Record{File: "main.go", Line: 10, Component: "net", Level: LevelInfo, Timestamp: Now(), Message: "request served status=200"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Format(ctx, " ", rec)
	}
}
