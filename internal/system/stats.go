package system

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// RunStats is a snapshot of process and host load after a scan run.
type RunStats struct {
	Elapsed    time.Duration
	ProcessRSS uint64  // bytes
	HostUsed   float64 // percent of host memory in use
	CPUPercent float64 // host CPU utilisation over the sampling window
}

// CollectRunStats samples process memory and host load. Individual gauges
// that cannot be read on this platform are left zero rather than failing
// the run.
func CollectRunStats(start time.Time) RunStats {
	stats := RunStats{Elapsed: time.Since(start)}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if info, err := proc.MemoryInfo(); err == nil {
			stats.ProcessRSS = info.RSS
		}
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		stats.HostUsed = vm.UsedPercent
	}

	if pct, err := cpu.Percent(100*time.Millisecond, false); err == nil && len(pct) > 0 {
		stats.CPUPercent = pct[0]
	}

	return stats
}

// Print writes the stats in the CLI's bracket-prefixed report style.
func (s RunStats) Print() {
	fmt.Printf("[*] Run time: %.2fs\n", s.Elapsed.Seconds())
	fmt.Printf("[*] Process RSS: %.1f MB | Host memory: %.1f%% | CPU: %.1f%%\n",
		float64(s.ProcessRSS)/(1024*1024), s.HostUsed, s.CPUPercent)
}
