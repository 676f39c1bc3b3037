package collectors

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
)

// CPU samples utilization twice around the settle delay and fills in identity,
// cache, temperature and uptime from the remaining sources. It never fails;
// anything that cannot be read is left at its placeholder.
func (p *Probe) CPU() CPUSnapshot {
	usage, perCore := p.sampleUsage()
	brand, freq := p.identity()

	logical, _ := firstOf(
		lookup[int](func() (int, bool) { return len(perCore), len(perCore) > 0 }),
		p.count(true),
	)
	physical, ok := firstOf(p.count(false))
	if !ok {
		physical = logical
	}

	temp, tempOK := p.scanTemperature(cpuSensorLabels, scanOptions{anySensor: true, thermalZones: true})

	procs := p.processors()
	details := p.cpuDetails(procs, brand)
	maxFreq, ok := firstOf(maxClockSpeed(procs))
	if !ok {
		maxFreq = freq
	}

	return CPUSnapshot{
		Brand:         brand,
		Frequency:     freq,
		Cores:         physical,
		LogicalCores:  logical,
		Usage:         usage,
		PerCoreUsage:  perCore,
		Temperature:   temp,
		TempAvailable: tempOK,
		Vendor:        cpuVendor(brand),
		Architecture:  buildArchitecture,
		MaxFrequency:  maxFreq,
		CacheL1:       details.cacheL1,
		CacheL2:       details.cacheL2,
		CacheL3:       details.cacheL3,
		Socket:        details.socket,
		ProcessNode:   details.processNode,
		Uptime:        p.uptime(),
	}
}

// sampleUsage takes a baseline, waits settleDelay and computes aggregate and
// per-core usage from the second sample relative to the first.
func (p *Probe) sampleUsage() (float64, []float64) {
	baseTotal, errTotal := p.Host.Times(false)
	baseCores, errCores := p.Host.Times(true)

	p.sleep(settleDelay)

	var usage float64
	if errTotal == nil {
		if now, err := p.Host.Times(false); err == nil {
			if busy := busyPercents(baseTotal, now); len(busy) > 0 {
				usage = busy[0]
			}
		} else {
			errTotal = err
		}
	}
	if errTotal != nil {
		p.logf("cpu: aggregate times unavailable: %v", errTotal)
	}

	perCore := []float64{}
	if errCores == nil {
		if now, err := p.Host.Times(true); err == nil {
			perCore = busyPercents(baseCores, now)
		} else {
			errCores = err
		}
	}
	if errCores != nil {
		p.logf("cpu: per-core times unavailable: %v", errCores)
	}
	return usage, perCore
}

// busyPercents pairs samples by index; entries with no baseline report 0.
func busyPercents(before, after []cpu.TimesStat) []float64 {
	out := make([]float64, len(after))
	for i := range after {
		if i < len(before) {
			out[i] = busyPercent(before[i], after[i])
		}
	}
	return out
}

func busyPercent(before, after cpu.TimesStat) float64 {
	deltaTotal := cpuTotal(after) - cpuTotal(before)
	if deltaTotal <= 0 {
		return 0
	}
	deltaIdle := (after.Idle + after.Iowait) - (before.Idle + before.Iowait)
	return clampFloat((deltaTotal-deltaIdle)/deltaTotal*100, 0, 100)
}

// cpuTotal leaves out guest time, which the kernel already counts in user.
func cpuTotal(t cpu.TimesStat) float64 {
	return t.User + t.System + t.Nice + t.Idle + t.Iowait + t.Irq + t.Softirq + t.Steal
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// identity returns the brand and sampled frequency (MHz) of the first CPU.
func (p *Probe) identity() (string, uint64) {
	infos, err := p.Host.Info()
	if err != nil || len(infos) == 0 {
		if err != nil {
			p.logf("cpu: info unavailable: %v", err)
		}
		return "N/A", 0
	}
	brand := strings.TrimSpace(infos[0].ModelName)
	if brand == "" {
		brand = "N/A"
	}
	var freq uint64
	if infos[0].Mhz > 0 {
		freq = uint64(infos[0].Mhz)
	}
	return brand, freq
}

func (p *Probe) count(logical bool) lookup[int] {
	return func() (int, bool) {
		n, err := p.Host.Counts(logical)
		if err != nil {
			p.logf("cpu: count(logical=%t): %v", logical, err)
			return 0, false
		}
		return n, n > 0
	}
}

func (p *Probe) processors() []Processor {
	if p.Inventory == nil {
		return nil
	}
	procs, err := p.Inventory.Processors()
	if err != nil {
		p.logf("cpu: Win32_Processor: %v", err)
		return nil
	}
	return procs
}

func maxClockSpeed(procs []Processor) lookup[uint64] {
	return func() (uint64, bool) {
		for _, proc := range procs {
			if proc.MaxClockSpeed != nil {
				return uint64(*proc.MaxClockSpeed), true
			}
		}
		return 0, false
	}
}

type cpuDetails struct {
	cacheL1     string
	cacheL2     string
	cacheL3     string
	socket      string
	processNode string
}

func (p *Probe) cpuDetails(procs []Processor, brand string) cpuDetails {
	d := cpuDetails{
		cacheL1:     Unknown,
		cacheL2:     Unknown,
		cacheL3:     Unknown,
		socket:      Unknown,
		processNode: Unknown,
	}

	name := brand
	if len(procs) > 0 {
		proc := procs[0]
		if proc.Name != "" {
			name = proc.Name
		}
		if proc.L2CacheSize != nil && *proc.L2CacheSize > 0 {
			d.cacheL2 = formatKB(*proc.L2CacheSize)
		}
		if proc.L3CacheSize != nil && *proc.L3CacheSize > 0 {
			d.cacheL3 = formatKB(*proc.L3CacheSize)
		}
		if proc.SocketDesignation != "" {
			d.socket = proc.SocketDesignation
		}
	}
	d.processNode = guessProcessNode(name)

	// cache_l1 is read from the Level = 3 entry. Known mislabel, left as is
	// until the UI decides what it wants here (see DESIGN.md).
	if size, ok := p.cacheSize(3); ok {
		d.cacheL1 = formatKB(size)
	}
	return d
}

func (p *Probe) cacheSize(level int) (uint32, bool) {
	if p.Inventory == nil {
		return 0, false
	}
	caches, err := p.Inventory.CacheMemory(level)
	if err != nil {
		p.logf("cpu: Win32_CacheMemory level %d: %v", level, err)
		return 0, false
	}
	for _, c := range caches {
		if c.MaxCacheSize != nil {
			return *c.MaxCacheSize, true
		}
	}
	return 0, false
}

func formatKB(kb uint32) string {
	return fmt.Sprintf("%d KB", kb)
}
