// FILE: lixenwraith/asynclog/cmd/reconfig/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/lixenwraith/asynclog"
)

// Switch files and settings rapidly while producers keep logging,
// then check that every accepted record reached exactly one file
func main() {
	var count atomic.Int64

	dir, err := os.MkdirTemp("", "reconfig-")
	if err != nil {
		fmt.Printf("Temp dir error: %v\n", err)
		return
	}
	fmt.Printf("Writing logs under %s\n", dir)

	logger, err := log.NewBuilder().
		File(filepath.Join(dir, "reconfig-0.log")).
		LevelString("info").
		RotationSize(64 * 1024).
		Build()
	if err != nil {
		fmt.Printf("Initial build error: %v\n", err)
		return
	}

	// Log something constantly
	stop := make(chan struct{})
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; ; i++ {
				select {
				case <-stop:
					return
				default:
				}
				if logger.Infof("producer", "p=%d i=%d", p, i) >= 0 {
					count.Add(1)
				}
				time.Sleep(100 * time.Microsecond)
			}
		}(p)
	}

	// Trigger multiple reconfigurations rapidly
	for i := 1; i <= 10; i++ {
		if err := logger.SetFileName(filepath.Join(dir, fmt.Sprintf("reconfig-%d.log", i))); err != nil {
			fmt.Printf("SetFileName error: %v\n", err)
		}
		override := fmt.Sprintf("delimiter=%s", []string{",", "|", ";"}[i%3])
		if err := logger.ApplyOverride(override); err != nil {
			fmt.Printf("Override error: %v\n", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	close(stop)
	wg.Wait()

	if err := logger.Shutdown(); err != nil {
		fmt.Printf("Shutdown error: %v\n", err)
	}

	stats := logger.Stats()
	fmt.Printf("Total logs accepted: %d\n", count.Load())
	fmt.Printf("Processed: %d  Dropped: %d  Rotations: %d\n", stats.Processed, stats.Dropped, stats.Rotations)
	if uint64(count.Load()) != stats.Processed+stats.Dropped {
		fmt.Println("MISMATCH: some records were neither written nor counted as dropped")
		os.Exit(1)
	}
}
