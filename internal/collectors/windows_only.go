//go:build windows
// +build windows

package collectors

import (
	"encoding/binary"
	"fmt"

	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows/registry"
)

// adapterClassPath is the display-adapter device class key.
const adapterClassPath = `SYSTEM\CurrentControlSet\Control\Class\{4d36e968-e325-11ce-bfc1-08002be10318}`

const acpiNamespace = `root\WMI`

// wmiInventory runs each query on its own COM/WMI connection; wmi.Client
// initializes and releases COM around every call. PtrNil leaves pointer
// fields nil for NULL columns.
type wmiInventory struct {
	client *wmi.Client
}

func newInventory() Inventory {
	return wmiInventory{client: &wmi.Client{AllowMissingFields: true, PtrNil: true}}
}

func (w wmiInventory) Processors() ([]Processor, error) {
	var dst []Processor
	err := w.client.Query("SELECT Name, MaxClockSpeed, L2CacheSize, L3CacheSize, SocketDesignation FROM Win32_Processor", &dst)
	return dst, err
}

func (w wmiInventory) CacheMemory(level int) ([]CacheMemory, error) {
	var dst []CacheMemory
	err := w.client.Query(fmt.Sprintf("SELECT MaxCacheSize FROM Win32_CacheMemory WHERE Level = %d", level), &dst)
	return dst, err
}

func (w wmiInventory) VideoControllers() ([]VideoController, error) {
	var dst []VideoController
	err := w.client.Query("SELECT Name, PNPDeviceID, VideoModeDescription FROM Win32_VideoController", &dst)
	return dst, err
}

func (w wmiInventory) DisplayDevices() ([]PnPEntity, error) {
	var dst []PnPEntity
	err := w.client.Query("SELECT * FROM Win32_PnPEntity WHERE Name LIKE '%Display%'", &dst)
	return dst, err
}

type thermalZoneInformation struct {
	HighPrecisionTemperature uint64
}

func (w wmiInventory) ThermalZoneInformation() ([]uint64, error) {
	var dst []thermalZoneInformation
	if err := w.client.Query("SELECT HighPrecisionTemperature FROM Win32_PerfRawData_Counters_ThermalZoneInformation", &dst); err != nil {
		return nil, err
	}
	out := make([]uint64, 0, len(dst))
	for _, z := range dst {
		out = append(out, z.HighPrecisionTemperature)
	}
	return out, nil
}

type acpiThermalZone struct {
	CurrentTemperature uint32
}

func (w wmiInventory) ACPIThermalZones() ([]uint64, error) {
	var dst []acpiThermalZone
	if err := w.client.Query("SELECT CurrentTemperature FROM MSAcpi_ThermalZoneTemperature", &dst, nil, acpiNamespace); err != nil {
		return nil, err
	}
	out := make([]uint64, 0, len(dst))
	for _, z := range dst {
		out = append(out, uint64(z.CurrentTemperature))
	}
	return out, nil
}

type registryAdapters struct{}

func newAdapterRegistry() AdapterRegistry { return registryAdapters{} }

func (registryAdapters) OpenAdapterClass() (AdapterClass, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, adapterClassPath, registry.ENUMERATE_SUB_KEYS|registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	return adapterClass{key: k}, nil
}

type adapterClass struct {
	key registry.Key
}

func (c adapterClass) OpenAdapter(index string) (AdapterKey, error) {
	k, err := registry.OpenKey(c.key, index, registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	return adapterKey{key: k}, nil
}

func (c adapterClass) Close() error { return c.key.Close() }

type adapterKey struct {
	key registry.Key
}

func (k adapterKey) String(name string) (string, error) {
	s, _, err := k.key.GetStringValue(name)
	return s, err
}

// Uint32 accepts REG_DWORD or a 4-byte REG_BINARY.
func (k adapterKey) Uint32(name string) (uint32, error) {
	v, typ, err := k.key.GetIntegerValue(name)
	switch {
	case err == nil && typ == registry.DWORD:
		return uint32(v), nil
	case err == nil:
		return 0, registry.ErrUnexpectedType
	case err != registry.ErrUnexpectedType:
		return 0, err
	}
	b, _, err := k.key.GetBinaryValue(name)
	if err != nil {
		return 0, err
	}
	if len(b) != 4 {
		return 0, registry.ErrUnexpectedType
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint64 accepts REG_QWORD or an 8-byte REG_BINARY.
func (k adapterKey) Uint64(name string) (uint64, error) {
	v, typ, err := k.key.GetIntegerValue(name)
	switch {
	case err == nil && typ == registry.QWORD:
		return v, nil
	case err == nil:
		return 0, registry.ErrUnexpectedType
	case err != registry.ErrUnexpectedType:
		return 0, err
	}
	b, _, err := k.key.GetBinaryValue(name)
	if err != nil {
		return 0, err
	}
	if len(b) != 8 {
		return 0, registry.ErrUnexpectedType
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (k adapterKey) Close() error { return k.key.Close() }
