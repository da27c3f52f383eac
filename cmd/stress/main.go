// FILE: lixenwraith/asynclog/cmd/stress/main.go
package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	log "github.com/lixenwraith/asynclog"
	"github.com/lixenwraith/asynclog/pool"
)

const (
	totalBursts    = 100
	logsPerBurst   = 500
	maxMessageSize = 4000
	numProducers   = 64
	poolWorkers    = 8
)

const configFile = "stress_config.toml"
const logsDir = "./logs"

// Example TOML content for stress test
var tomlContent = `
# Example stress_config.toml
[log]
  level = "debug"
  file = "./logs/stress.log"
  format = "txt"
  delimiter = " "
  message_buffer_size = 2048 # longer messages are truncated
  rotation_size = 1048576    # force frequent rotation (1MB)
  heartbeat_interval_s = 1
  internal_errors_to_stderr = true
`

var levels = []log.Level{
	log.LevelDebug,
	log.LevelInfo,
	log.LevelWarn,
	log.LevelError,
}

var logger *log.Logger

func generateRandomMessage(size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rand.Intn(len(chars))])
	}
	return sb.String()
}

// logBurst simulates a burst of logging activity, half of it from pool items
func logBurst(burstID int, workPool *pool.Pool) {
	for i := 0; i < logsPerBurst; i++ {
		level := levels[rand.Intn(len(levels))]
		msg := generateRandomMessage(rand.Intn(maxMessageSize) + 10)
		seq := i
		if i%2 == 0 {
			logger.Logv(level, "stress", "bst", burstID, "seq", seq, msg)
			continue
		}
		_ = workPool.AddFunc(func() {
			logger.Logv(level, "stress-pool", "bst", burstID, "seq", seq, msg)
		})
	}
}

// producer goroutine function
func producer(burstChan chan int, wg *sync.WaitGroup, completedBursts *atomic.Int64, workPool *pool.Pool) {
	defer wg.Done()
	for burstID := range burstChan {
		logBurst(burstID, workPool)
		completed := completedBursts.Add(1)
		if completed%10 == 0 || completed == totalBursts {
			fmt.Printf("\rProgress: %d/%d bursts completed", completed, totalBursts)
		}
	}
}

func main() {
	fmt.Println("--- Logger Stress Test ---")

	// --- Setup Config ---
	if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created config file: %s\n", configFile)
	_ = os.RemoveAll(logsDir) // Clean previous run's logs before starting
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logs directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := log.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// --- Initialize Logger and Pool ---
	logger = log.NewLogger()
	if err := logger.ApplyConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Logger initialized. Logs will be written to: %s\n", cfg.File)

	workPool := pool.New(poolWorkers, pool.WithLogger(logger))
	if err := workPool.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start pool: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting stress test: %d producers, %d pool workers, %d bursts, %d logs/burst.\n",
		numProducers, poolWorkers, totalBursts, logsPerBurst)
	fmt.Println("Press Ctrl+C to stop early.")

	// --- Setup Producers and Signal Handling ---
	burstChan := make(chan int, numProducers)
	var wg sync.WaitGroup
	completedBursts := atomic.Int64{}
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	stopChan := make(chan struct{})

	go func() {
		<-sigChan
		fmt.Println("\n[Signal Received] Stopping burst generation...")
		close(stopChan)
	}()

	for i := 0; i < numProducers; i++ {
		wg.Add(1)
		go producer(burstChan, &wg, &completedBursts, workPool)
	}

	// --- Run Test ---
	startTime := time.Now()
submit:
	for i := 1; i <= totalBursts; i++ {
		select {
		case burstChan <- i:
		case <-stopChan:
			fmt.Println("[Signal Received] Halting burst submission.")
			break submit
		}
	}
	close(burstChan)

	fmt.Println("\nWaiting for producers to finish...")
	wg.Wait()

	fmt.Println("Stopping pool (residual items run on this goroutine)...")
	if err := workPool.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "Pool stop error: %v\n", err)
	}
	duration := time.Since(startTime)
	finalCompleted := completedBursts.Load()

	fmt.Printf("\n--- Test Finished ---")
	fmt.Printf("\nCompleted %d/%d bursts in %v\n", finalCompleted, totalBursts, duration.Round(time.Millisecond))
	if finalCompleted > 0 && duration.Seconds() > 0 {
		logsPerSec := float64(finalCompleted*logsPerBurst) / duration.Seconds()
		fmt.Printf("Approximate Logs/sec: %.2f\n", logsPerSec)
	}

	// --- Shutdown Logger ---
	fmt.Println("Shutting down logger...")
	if err := logger.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger shutdown error: %v\n", err)
	} else {
		fmt.Println("Logger shutdown complete.")
	}

	stats := logger.Stats()
	poolStats := workPool.Stats()
	fmt.Printf("Logger: processed=%d dropped=%d filtered=%d rotations=%d rotation_failures=%d\n",
		stats.Processed, stats.Dropped, stats.Filtered, stats.Rotations, stats.RotationFailures)
	fmt.Printf("Pool: executed=%d panics=%d queued=%d\n", poolStats.Executed, poolStats.Panics, poolStats.Queued)

	archives, _ := filepath.Glob(filepath.Join(logsDir, "stress-*.log"))
	fmt.Printf("Check %d archives in '%s' and the config '%s'.\n", len(archives), logsDir, configFile)
}
