// Package system reports on the running process and pools buffers.
package system

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessStats is a point-in-time view of this process.
type ProcessStats struct {
	RSS        uint64  // resident memory, bytes
	CPUUser    float64 // seconds
	CPUSystem  float64 // seconds
	Threads    int32
	Goroutines int
	HeapAlloc  uint64
}

// CPUTotal is user plus system CPU time in seconds.
func (s ProcessStats) CPUTotal() float64 {
	return s.CPUUser + s.CPUSystem
}

// Sub returns the growth from earlier to s. Memory figures are kept as is.
func (s ProcessStats) Sub(earlier ProcessStats) ProcessStats {
	s.CPUUser -= earlier.CPUUser
	s.CPUSystem -= earlier.CPUSystem
	return s
}

func (s ProcessStats) String() string {
	return fmt.Sprintf("rss=%.1fMiB cpu=%.3fs threads=%d goroutines=%d heap=%.1fMiB",
		float64(s.RSS)/(1<<20), s.CPUTotal(), s.Threads, s.Goroutines, float64(s.HeapAlloc)/(1<<20))
}

// Snapshot reads process counters via gopsutil. Runtime figures are always
// filled even when the OS query fails.
func Snapshot() (ProcessStats, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	stats := ProcessStats{
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  ms.HeapAlloc,
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return stats, fmt.Errorf("open process: %w", err)
	}

	mem, err := proc.MemoryInfo()
	if err != nil {
		return stats, fmt.Errorf("memory info: %w", err)
	}
	stats.RSS = mem.RSS

	times, err := proc.Times()
	if err != nil {
		return stats, fmt.Errorf("cpu times: %w", err)
	}
	stats.CPUUser = times.User
	stats.CPUSystem = times.System

	if threads, err := proc.NumThreads(); err == nil {
		stats.Threads = threads
	}

	return stats, nil
}
