package collectors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRegistryUnavailable is returned by GPU when the display-adapter class key
// cannot be opened. It is the only error either query reports.
var ErrRegistryUnavailable = errors.New("cannot access GPU hardware registry")

const (
	// adapterSlots is how many indexed adapter subkeys are examined.
	adapterSlots = 10

	placeholderAdapter = "Microsoft Basic"
	builtInDriver      = "Built-in"
)

// Registry value names under each adapter subkey.
const (
	valueDriverDesc    = "DriverDesc"
	valueDriverVersion = "DriverVersion"
	valueDeviceID      = "MatchingDeviceId"
	valueMemorySize    = "HardwareInformation.MemorySize"
)

type adapterInfo struct {
	name          string
	driverVersion string
	deviceID      string
	memory        uint64
}

// GPU reads the first real display adapter from the registry, falling back to
// an integrated-graphics guess, and fills in the static capability table,
// temperature and WMI enrichment.
func (p *Probe) GPU() (GPUSnapshot, error) {
	class, err := p.Registry.OpenAdapterClass()
	if err != nil {
		p.logf("gpu: open display adapter class: %v", err)
		return GPUSnapshot{}, ErrRegistryUnavailable
	}
	defer class.Close()

	adapter, ok := p.scanAdapters(class)
	if !ok {
		adapter = p.integratedAdapter()
	}

	caps := LookupCapabilities(adapter.name)
	temp, tempOK := p.scanTemperature(gpuSensorLabels, scanOptions{})
	used, free := estimateMemoryUsage(adapter.memory)

	snap := GPUSnapshot{
		Name:           adapter.name,
		DriverVersion:  adapter.driverVersion,
		MemoryTotal:    adapter.memory,
		MemoryUsed:     used,
		MemoryFree:     free,
		Temperature:    temp,
		TempAvailable:  tempOK,
		GPUType:        ClassifyGPUType(adapter.name),
		Vendor:         caps.Vendor,
		Architecture:   caps.Architecture,
		DeviceID:       adapter.deviceID,
		PCISlot:        Unknown,
		MemoryType:     caps.MemoryType,
		MemoryBusWidth: caps.MemoryBusWidth,
		DirectXVersion: caps.DirectXVersion,
		OpenGLVersion:  caps.OpenGLVersion,
		VulkanSupport:  caps.VulkanSupport,
	}
	p.enrichFromInventory(&snap)
	return snap, nil
}

// scanAdapters walks subkeys 0000..0009 and returns the first adapter whose
// description is set and is not the basic display placeholder.
func (p *Probe) scanAdapters(class AdapterClass) (adapterInfo, bool) {
	for i := 0; i < adapterSlots; i++ {
		info, ok := p.readAdapter(class, fmt.Sprintf("%04d", i))
		if ok {
			return info, true
		}
	}
	return adapterInfo{}, false
}

func (p *Probe) readAdapter(class AdapterClass, index string) (adapterInfo, bool) {
	key, err := class.OpenAdapter(index)
	if err != nil {
		return adapterInfo{}, false
	}
	defer key.Close()

	desc, err := key.String(valueDriverDesc)
	if err != nil || desc == "" || strings.Contains(desc, placeholderAdapter) {
		return adapterInfo{}, false
	}

	info := adapterInfo{
		name:          desc,
		driverVersion: Unknown,
		deviceID:      Unknown,
	}
	if v, err := key.String(valueDriverVersion); err == nil {
		info.driverVersion = v
	}
	if v, err := key.String(valueDeviceID); err == nil {
		info.deviceID = v
	}
	info.memory = adapterMemory(key)
	return info, true
}

// adapterMemory decodes the memory size, which drivers store as either a
// 32-bit or a 64-bit value. The 64-bit read only happens if the 32-bit one fails.
func adapterMemory(key AdapterKey) uint64 {
	if v, err := key.Uint32(valueMemorySize); err == nil {
		return uint64(v)
	}
	if v, err := key.Uint64(valueMemorySize); err == nil {
		return v
	}
	return 0
}

// integratedAdapter synthesizes an adapter from the CPU brand when the
// registry holds no usable entry.
func (p *Probe) integratedAdapter() adapterInfo {
	name := "Integrated Graphics"
	if infos, err := p.Host.Info(); err == nil && len(infos) > 0 {
		switch brand := infos[0].ModelName; {
		case strings.Contains(brand, "Intel"):
			name = "Intel Integrated Graphics"
		case strings.Contains(brand, "AMD"):
			name = "AMD Integrated Graphics"
		}
	} else if err != nil {
		p.logf("gpu: cpu info unavailable for integrated fallback: %v", err)
	}
	return adapterInfo{
		name:          name,
		driverVersion: builtInDriver,
		deviceID:      Unknown,
		memory:        p.integratedMemory(),
	}
}

// enrichFromInventory overwrites the device id and DirectX string from the
// matching video controller and fills the PCI slot from display PnP entries.
func (p *Probe) enrichFromInventory(snap *GPUSnapshot) {
	if p.Inventory == nil {
		return
	}

	if controllers, err := p.Inventory.VideoControllers(); err != nil {
		p.logf("gpu: Win32_VideoController: %v", err)
	} else if vc, ok := matchController(controllers, snap.Name); ok {
		if vc.PNPDeviceID != nil && *vc.PNPDeviceID != "" {
			snap.DeviceID = *vc.PNPDeviceID
		}
		if vc.VideoModeDescription != nil && *vc.VideoModeDescription != "" {
			snap.DirectXVersion = fmt.Sprintf("DirectX 12 (%s)", *vc.VideoModeDescription)
		}
	}

	if devices, err := p.Inventory.DisplayDevices(); err != nil {
		p.logf("gpu: Win32_PnPEntity: %v", err)
	} else if slot, ok := pciLocation(devices); ok {
		snap.PCISlot = slot
	}
}

// matchController finds the controller whose name contains the first two
// words of the detected adapter name, ignoring case.
func matchController(controllers []VideoController, name string) (VideoController, bool) {
	words := strings.Fields(strings.ToLower(name))
	if len(words) > 2 {
		words = words[:2]
	}
	prefix := strings.Join(words, " ")
	for _, vc := range controllers {
		if strings.Contains(strings.ToLower(vc.Name), prefix) {
			return vc, true
		}
	}
	return VideoController{}, false
}

func pciLocation(devices []PnPEntity) (string, bool) {
	for _, d := range devices {
		if d.LocationInformation != nil && strings.Contains(*d.LocationInformation, "PCI") {
			return *d.LocationInformation, true
		}
	}
	return "", false
}
