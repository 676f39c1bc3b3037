package collectors

import (
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
)

// settleDelay is the wait between the two utilization samples. The counters
// need it; it is not configurable.
const settleDelay = 200 * time.Millisecond

// HostSource reads live CPU and memory facts.
type HostSource interface {
	Times(perCPU bool) ([]cpu.TimesStat, error)
	Info() ([]cpu.InfoStat, error)
	Counts(logical bool) (int, error)
	Uptime() (uint64, error)
	TotalMemory() (uint64, error)
}

// SensorSource enumerates hardware temperature sensors.
type SensorSource interface {
	Temperatures() ([]host.TemperatureStat, error)
}

// Inventory runs management-interface queries (WMI on Windows). Every method
// is an independent query that acquires and releases its own connection.
type Inventory interface {
	Processors() ([]Processor, error)
	CacheMemory(level int) ([]CacheMemory, error)
	VideoControllers() ([]VideoController, error)
	DisplayDevices() ([]PnPEntity, error)
	// Thermal zone readings in tenths of Kelvin.
	ThermalZoneInformation() ([]uint64, error)
	ACPIThermalZones() ([]uint64, error)
}

// AdapterRegistry opens the display-adapter class key.
type AdapterRegistry interface {
	OpenAdapterClass() (AdapterClass, error)
}

// AdapterClass is an open display-adapter class key. Subkeys are named by
// four-digit index ("0000", "0001", ...).
type AdapterClass interface {
	OpenAdapter(index string) (AdapterKey, error)
	Close() error
}

// AdapterKey is one open adapter entry.
type AdapterKey interface {
	String(name string) (string, error)
	Uint32(name string) (uint32, error)
	Uint64(name string) (uint64, error)
	Close() error
}

// Probe runs the CPU and GPU queries against a set of data sources. It holds
// no mutable state, so one Probe may serve concurrent callers.
type Probe struct {
	Host      HostSource
	Sensors   SensorSource
	Inventory Inventory
	Registry  AdapterRegistry

	// Sleep is called once per CPU query with the settle delay.
	Sleep func(time.Duration)
	// Logf receives soft-failure diagnostics. Nil discards them.
	Logf func(format string, args ...any)
}

// NewProbe returns a Probe wired to the platform data sources.
func NewProbe() *Probe {
	return &Probe{
		Host:      gopsutilHost{},
		Sensors:   gopsutilSensors{},
		Inventory: newInventory(),
		Registry:  newAdapterRegistry(),
		Sleep:     time.Sleep,
	}
}

var defaultProbe = NewProbe()

// GetCPUInfo returns a CPU snapshot of this machine. It blocks for the settle
// delay and never fails.
func GetCPUInfo() CPUSnapshot {
	return defaultProbe.CPU()
}

// GetGPUInfo returns a GPU snapshot of this machine, or an error wrapping
// ErrRegistryUnavailable when the adapter registry cannot be opened.
func GetGPUInfo() (GPUSnapshot, error) {
	return defaultProbe.GPU()
}

func (p *Probe) logf(format string, args ...any) {
	if p.Logf != nil {
		p.Logf(format, args...)
	}
}

func (p *Probe) sleep(d time.Duration) {
	if p.Sleep != nil {
		p.Sleep(d)
		return
	}
	time.Sleep(d)
}

type gopsutilHost struct{}

func (gopsutilHost) Times(perCPU bool) ([]cpu.TimesStat, error) { return cpu.Times(perCPU) }
func (gopsutilHost) Info() ([]cpu.InfoStat, error)              { return cpu.Info() }
func (gopsutilHost) Counts(logical bool) (int, error)           { return cpu.Counts(logical) }
func (gopsutilHost) Uptime() (uint64, error)                    { return host.Uptime() }

type gopsutilSensors struct{}

// Temperatures may return partial readings together with a warnings error;
// callers should use whatever slice comes back.
func (gopsutilSensors) Temperatures() ([]host.TemperatureStat, error) {
	return host.SensorsTemperatures()
}
