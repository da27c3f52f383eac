// FILE: lixenwraith/asynclog/cmd/heartbeat/main.go
package main

import (
	"fmt"
	"os"
	"time"

	log "github.com/lixenwraith/asynclog"
)

func main() {
	if err := os.MkdirAll("./logs", 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create test logs directory: %v\n", err)
		os.Exit(1)
	}

	// Test cycle: disabled -> fast -> slow -> disabled
	intervals := []struct {
		seconds     int64
		description string
	}{
		{0, "Heartbeats disabled"},
		{1, "Heartbeat every second"},
		{2, "Heartbeat every two seconds"},
		{0, "Heartbeats disabled (final)"},
	}

	// A single logger instance that we reconfigure
	logger := log.NewLogger()

	for _, interval := range intervals {
		overrides := []string{
			"file=./logs/heartbeat.log",
			"level=error", // Heartbeats are written regardless of threshold
			fmt.Sprintf("heartbeat_interval_s=%d", interval.seconds),
		}

		if err := logger.ApplyOverride(overrides...); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to configure logger: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("\n--- %s ---\n", interval.description)
		logger.Errorf("main", "phase start: %s", interval.description)

		time.Sleep(5 * time.Second)
		stats := logger.Stats()
		fmt.Printf("processed=%d queued=%d\n", stats.Processed, stats.Queued)
	}

	if err := logger.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
	}
	fmt.Println("\nCheck ./logs/heartbeat.log for records with component 'heartbeat'")
}
