package monitor

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// Usage is a point-in-time snapshot of resource consumption in percent.
type Usage struct {
	CPUPercent    float64
	MemoryPercent float64
	DiskPercent   float64
}

// ResourceCollector samples CPU, memory and disk usage from the kernel.
// The zero value is not usable; call NewResourceCollector.
type ResourceCollector struct {
	// ProcPath is the procfs mount, normally /proc.
	ProcPath string

	// Mount is the filesystem whose fullness is checked.
	Mount string

	// SampleGap is the pause between the two CPU samples.
	SampleGap time.Duration

	// statfs is swapped out in tests.
	statfs func(path string, buf *unix.Statfs_t) error
}

// NewResourceCollector creates a collector with production defaults.
func NewResourceCollector() *ResourceCollector {
	return &ResourceCollector{
		ProcPath:  "/proc",
		Mount:     "/",
		SampleGap: 500 * time.Millisecond,
		statfs:    unix.Statfs,
	}
}

// Collect samples current resource usage. CPU usage is derived from two
// /proc/stat reads SampleGap apart.
func (c *ResourceCollector) Collect(ctx context.Context) (Usage, error) {
	first, err := c.readCPUSample()
	if err != nil {
		return Usage{}, err
	}

	select {
	case <-time.After(c.SampleGap):
	case <-ctx.Done():
		return Usage{}, ctx.Err()
	}

	second, err := c.readCPUSample()
	if err != nil {
		return Usage{}, err
	}

	usage := Usage{CPUPercent: cpuPercent(first, second)}

	if usage.MemoryPercent, err = c.readMemoryPercent(); err != nil {
		return Usage{}, err
	}
	if usage.DiskPercent, err = c.readDiskPercent(); err != nil {
		return Usage{}, err
	}
	return usage, nil
}

// cpuSample is the aggregate jiffy counters from the "cpu" line of
// /proc/stat.
type cpuSample struct {
	idle  uint64
	total uint64
}

func (c *ResourceCollector) readCPUSample() (cpuSample, error) {
	data, err := os.ReadFile(c.ProcPath + "/stat")
	if err != nil {
		return cpuSample{}, fmt.Errorf("failed to read cpu stats: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 5 || fields[0] != "cpu" {
			continue
		}
		var s cpuSample
		for i, f := range fields[1:] {
			v, err := strconv.ParseUint(f, 10, 64)
			if err != nil {
				return cpuSample{}, fmt.Errorf("malformed cpu line %q: %w", line, err)
			}
			s.total += v
			// Fields 4 and 5 after "cpu" are idle and iowait.
			if i == 3 || i == 4 {
				s.idle += v
			}
		}
		return s, nil
	}
	return cpuSample{}, fmt.Errorf("no cpu line in %s/stat", c.ProcPath)
}

func cpuPercent(first, second cpuSample) float64 {
	totalDelta := float64(second.total - first.total)
	if totalDelta <= 0 {
		return 0
	}
	idleDelta := float64(second.idle - first.idle)
	return (totalDelta - idleDelta) / totalDelta * 100
}

func (c *ResourceCollector) readMemoryPercent() (float64, error) {
	data, err := os.ReadFile(c.ProcPath + "/meminfo")
	if err != nil {
		return 0, fmt.Errorf("failed to read meminfo: %w", err)
	}

	var total, available float64
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		switch fields[0] {
		case "MemTotal:":
			total = v
		case "MemAvailable:":
			available = v
		}
	}
	if total == 0 {
		return 0, fmt.Errorf("meminfo reports no MemTotal")
	}
	return (total - available) / total * 100, nil
}

func (c *ResourceCollector) readDiskPercent() (float64, error) {
	var st unix.Statfs_t
	if err := c.statfs(c.Mount, &st); err != nil {
		return 0, fmt.Errorf("failed to statfs %s: %w", c.Mount, err)
	}
	if st.Blocks == 0 {
		return 0, fmt.Errorf("statfs %s reports zero blocks", c.Mount)
	}
	used := float64(st.Blocks - st.Bavail)
	return used / float64(st.Blocks) * 100, nil
}
