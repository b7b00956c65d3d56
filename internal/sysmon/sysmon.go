// Package sysmon samples host CPU, memory and load for the dashboard.
package sysmon

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// DefaultTimeout bounds one Sample call.
const DefaultTimeout = 200 * time.Millisecond

// Stats is one snapshot of host resource usage. Fields a platform cannot
// report stay zero.
type Stats struct {
	CPUPercent float64 // 0..100, since the previous call
	MemPercent float64 // 0..100
	Load1      float64 // one-minute load average
}

// Sample collects a snapshot. It never fails; probes that error or exceed
// the context deadline leave their field at zero.
func Sample(ctx context.Context) Stats {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	var s Stats
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = clamp(pcts[0])
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm != nil {
		s.MemPercent = clamp(vm.UsedPercent)
	}
	if avg, err := load.AvgWithContext(ctx); err == nil && avg != nil {
		s.Load1 = avg.Load1
	}
	return s
}

func clamp(pct float64) float64 {
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}
