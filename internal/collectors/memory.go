package collectors

import (
	"github.com/shirou/gopsutil/v3/mem"
)

// TotalMemory returns total physical memory in bytes.
func (gopsutilHost) TotalMemory() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Total, nil
}

// estimateMemoryUsage splits total into synthetic used/free values. There is
// no source for live VRAM usage, so used is a fixed sixth of the total.
func estimateMemoryUsage(total uint64) (used, free uint64) {
	if total == 0 {
		return 0, 0
	}
	used = total / 6
	if total > used {
		free = total - used
	}
	return used, free
}

// integratedMemory guesses shared graphics memory as an eighth of system RAM.
func (p *Probe) integratedMemory() uint64 {
	total, err := p.Host.TotalMemory()
	if err != nil {
		p.logf("gpu: total memory unavailable: %v", err)
		return 0
	}
	return total / 8
}
