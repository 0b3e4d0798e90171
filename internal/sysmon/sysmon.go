// Package sysmon samples host-wide CPU and memory load, shown next to the
// process statistics while long products run.
package sysmon

import (
	"context"
	"errors"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one host load sample.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0, all cores
	MemPercent float64 // 0.0 .. 100.0
	MemUsed    uint64
	MemTotal   uint64
}

// Sample reads the host load. CPU usage is the delta since the previous
// call, so the first sample of a process may report 0. Whatever could be
// read is returned together with the joined errors.
func Sample(ctx context.Context) (Stats, error) {
	var s Stats
	var errs []error
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err != nil {
		errs = append(errs, err)
	} else if len(pcts) > 0 {
		s.CPUPercent = min(max(pcts[0], 0), 100)
	}
	if vmem, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		errs = append(errs, err)
	} else if vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.MemUsed = vmem.Used
		s.MemTotal = vmem.Total
	}
	return s, errors.Join(errs...)
}
