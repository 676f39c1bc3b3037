package collectors

import (
	"errors"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
)

var errFake = errors.New("fake source unavailable")

type fakeHost struct {
	totals   [][]cpu.TimesStat // returned in order by Times(false)
	cores    [][]cpu.TimesStat // returned in order by Times(true)
	info     []cpu.InfoStat
	infoErr  error
	logical  int
	physical int
	uptime   uint64
	ram      uint64
	ramErr   error
}

func (h *fakeHost) Times(perCPU bool) ([]cpu.TimesStat, error) {
	q := &h.totals
	if perCPU {
		q = &h.cores
	}
	if len(*q) == 0 {
		return nil, errFake
	}
	next := (*q)[0]
	*q = (*q)[1:]
	return next, nil
}

func (h *fakeHost) Info() ([]cpu.InfoStat, error) { return h.info, h.infoErr }

func (h *fakeHost) Counts(logical bool) (int, error) {
	n := h.physical
	if logical {
		n = h.logical
	}
	if n == 0 {
		return 0, errFake
	}
	return n, nil
}

func (h *fakeHost) Uptime() (uint64, error) { return h.uptime, nil }

func (h *fakeHost) TotalMemory() (uint64, error) { return h.ram, h.ramErr }

type fakeSensors struct {
	stats []host.TemperatureStat
	err   error
}

func (s fakeSensors) Temperatures() ([]host.TemperatureStat, error) { return s.stats, s.err }

type fakeInventory struct {
	processors  []Processor
	caches      map[int][]CacheMemory
	controllers []VideoController
	devices     []PnPEntity
	zoneInfo    []uint64
	acpiZones   []uint64
	err         error
}

func (f fakeInventory) Processors() ([]Processor, error) { return f.processors, f.err }

func (f fakeInventory) CacheMemory(level int) ([]CacheMemory, error) {
	return f.caches[level], f.err
}

func (f fakeInventory) VideoControllers() ([]VideoController, error) { return f.controllers, f.err }
func (f fakeInventory) DisplayDevices() ([]PnPEntity, error)         { return f.devices, f.err }
func (f fakeInventory) ThermalZoneInformation() ([]uint64, error)    { return f.zoneInfo, f.err }
func (f fakeInventory) ACPIThermalZones() ([]uint64, error)          { return f.acpiZones, f.err }

// fakeValue is one registry value. Set exactly one of the typed fields.
type fakeValue struct {
	str *string
	u32 *uint32
	u64 *uint64
}

func str(s string) fakeValue   { return fakeValue{str: &s} }
func dword(v uint32) fakeValue { return fakeValue{u32: &v} }
func qword(v uint64) fakeValue { return fakeValue{u64: &v} }

type fakeRegistry struct {
	adapters map[string]map[string]fakeValue
	openErr  error

	opened []string
	closed int
}

func (r *fakeRegistry) OpenAdapterClass() (AdapterClass, error) {
	if r.openErr != nil {
		return nil, r.openErr
	}
	return fakeClass{r}, nil
}

type fakeClass struct{ r *fakeRegistry }

func (c fakeClass) OpenAdapter(index string) (AdapterKey, error) {
	c.r.opened = append(c.r.opened, index)
	values, ok := c.r.adapters[index]
	if !ok {
		return nil, errFake
	}
	return &fakeKey{r: c.r, values: values}, nil
}

func (c fakeClass) Close() error {
	c.r.closed++
	return nil
}

type fakeKey struct {
	r      *fakeRegistry
	values map[string]fakeValue
	reads  []string
}

func (k *fakeKey) String(name string) (string, error) {
	v, ok := k.values[name]
	if !ok || v.str == nil {
		return "", errFake
	}
	return *v.str, nil
}

func (k *fakeKey) Uint32(name string) (uint32, error) {
	k.reads = append(k.reads, "u32:"+name)
	v, ok := k.values[name]
	if !ok || v.u32 == nil {
		return 0, errFake
	}
	return *v.u32, nil
}

func (k *fakeKey) Uint64(name string) (uint64, error) {
	k.reads = append(k.reads, "u64:"+name)
	v, ok := k.values[name]
	if !ok || v.u64 == nil {
		return 0, errFake
	}
	return *v.u64, nil
}

func (k *fakeKey) Close() error {
	k.r.closed++
	return nil
}

// newTestProbe returns a probe with empty sources and no settle delay.
func newTestProbe() (*Probe, *time.Duration) {
	slept := new(time.Duration)
	return &Probe{
		Host:      &fakeHost{},
		Sensors:   fakeSensors{},
		Inventory: fakeInventory{err: errFake},
		Registry:  &fakeRegistry{},
		Sleep:     func(d time.Duration) { *slept += d },
	}, slept
}
