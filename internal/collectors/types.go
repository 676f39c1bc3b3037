package collectors

// Unknown is the placeholder used for text fields whose data source was unavailable.
const Unknown = "Unknown"

// CPUSnapshot holds one CPU query result. Field names in JSON are what the UI reads.
type CPUSnapshot struct {
	Brand         string    `json:"brand"`
	Frequency     uint64    `json:"frequency"` // MHz
	Cores         int       `json:"cores"`
	LogicalCores  int       `json:"logical_cores"`
	Usage         float64   `json:"usage"`
	PerCoreUsage  []float64 `json:"per_core_usage"`
	Temperature   float64   `json:"temperature"`
	TempAvailable bool      `json:"temp_available"`
	Vendor        string    `json:"vendor"`
	Architecture  string    `json:"architecture"`
	MaxFrequency  uint64    `json:"max_frequency"` // MHz
	CacheL1       string    `json:"cache_l1"`
	CacheL2       string    `json:"cache_l2"`
	CacheL3       string    `json:"cache_l3"`
	Socket        string    `json:"socket"`
	ProcessNode   string    `json:"process_node"`
	Uptime        string    `json:"uptime"`
}

// GPUSnapshot holds one GPU query result. Memory values are bytes; used and
// free are estimates derived from the total.
type GPUSnapshot struct {
	Name          string  `json:"name"`
	DriverVersion string  `json:"driver_version"`
	MemoryTotal   uint64  `json:"memory_total"`
	MemoryUsed    uint64  `json:"memory_used"`
	MemoryFree    uint64  `json:"memory_free"`
	Temperature   float64 `json:"temperature"`
	TempAvailable bool    `json:"temp_available"`

	// Not measured. UsageMetricsAvailable is always false so a zero here is
	// never mistaken for a real reading.
	PowerUsage            uint32 `json:"power_usage"`
	Utilization           uint32 `json:"utilization"`
	FanSpeed              uint32 `json:"fan_speed"`
	UsageMetricsAvailable bool   `json:"usage_metrics_available"`

	GPUType        string `json:"gpu_type"`
	Vendor         string `json:"vendor"`
	Architecture   string `json:"architecture"`
	DeviceID       string `json:"device_id"`
	PCISlot        string `json:"pci_slot"`
	MemoryType     string `json:"memory_type"`
	MemoryBusWidth uint32 `json:"memory_bus_width"`
	BaseClock      uint32 `json:"base_clock"`
	BoostClock     uint32 `json:"boost_clock"`
	MemoryClock    uint32 `json:"memory_clock"`
	ShaderUnits    uint32 `json:"shader_units"`
	TMUCount       uint32 `json:"tmu_count"`
	ROPCount       uint32 `json:"rop_count"`
	DirectXVersion string `json:"directx_version"`
	OpenGLVersion  string `json:"opengl_version"`
	VulkanSupport  bool   `json:"vulkan_support"`
}

// Processor is the subset of Win32_Processor the CPU query reads.
type Processor struct {
	Name              string
	MaxClockSpeed     *uint32
	L2CacheSize       *uint32
	L3CacheSize       *uint32
	SocketDesignation string
}

// CacheMemory is the subset of Win32_CacheMemory the CPU query reads.
type CacheMemory struct {
	MaxCacheSize *uint32
}

// VideoController is the subset of Win32_VideoController used for GPU enrichment.
type VideoController struct {
	Name                 string
	PNPDeviceID          *string
	VideoModeDescription *string
}

// PnPEntity is the subset of Win32_PnPEntity used to locate the PCI slot.
type PnPEntity struct {
	Name                string
	LocationInformation *string
}
