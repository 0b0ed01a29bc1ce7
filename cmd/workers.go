package cmd

import (
	"runtime"

	"github.com/shirou/gopsutil/cpu"
)

// defaultWorkerCount returns the number of logical CPUs, falling back to the
// Go runtime's view when the host cannot be queried.
func defaultWorkerCount() int {
	count, err := cpu.Counts(true)
	if err != nil || count <= 0 {
		logger.Debugf("cpu count unavailable (%v), using runtime.NumCPU", err)
		return runtime.NumCPU()
	}
	return count
}
