package collectors

import "strings"

// gpuTypeRules classify an adapter name. A rule matches when the name contains
// any of anyOf and, if alsoAnyOf is set, any of alsoAnyOf. First match wins.
var gpuTypeRules = []struct {
	anyOf     []string
	alsoAnyOf []string
	label     string
}{
	{anyOf: []string{"intel"}, label: "Integrated (Intel)"},
	{anyOf: []string{"amd", "radeon"}, alsoAnyOf: []string{"integrated", "apu"}, label: "Integrated (AMD)"},
	{anyOf: []string{"amd", "radeon"}, label: "Discrete (AMD)"},
	{anyOf: []string{"nvidia", "geforce"}, label: "Discrete (NVIDIA)"},
	{anyOf: []string{"integrated", "basic"}, label: "Integrated Graphics"},
}

// ClassifyGPUType returns the adapter category of a GPU name, or "Unknown Type".
func ClassifyGPUType(name string) string {
	n := strings.ToLower(name)
	for _, r := range gpuTypeRules {
		if !containsAny(n, r.anyOf) {
			continue
		}
		if len(r.alsoAnyOf) > 0 && !containsAny(n, r.alsoAnyOf) {
			continue
		}
		return r.label
	}
	return "Unknown Type"
}

// override picks value when the model name contains needle.
type override[T any] struct {
	needle string
	value  T
}

func pick[T any](name string, overrides []override[T], def T) T {
	for _, o := range overrides {
		if strings.Contains(name, o.needle) {
			return o.value
		}
	}
	return def
}

type generation struct {
	match        []string
	architecture string
	memoryType   string
	memoryTypes  []override[string]
	busWidth     uint32
	busWidths    []override[uint32]
}

type vendorProfile struct {
	vendor      string
	match       []string
	directX     string
	openGL      string
	vulkan      bool
	generations []generation
}

// gpuVendors is evaluated top to bottom for the vendor, then the matched
// vendor's generations top to bottom for the architecture.
var gpuVendors = []vendorProfile{
	{
		vendor:  "NVIDIA",
		match:   []string{"nvidia", "geforce", "quadro", "rtx", "gtx"},
		directX: "DirectX 12",
		openGL:  "OpenGL 4.6",
		vulkan:  true,
		generations: []generation{
			{
				match:        []string{"rtx 40", "409", "408", "407", "406"},
				architecture: "Ada Lovelace",
				memoryType:   "GDDR6X",
				busWidth:     192,
				busWidths:    []override[uint32]{{"4090", 384}, {"4080", 256}},
			},
			{
				match:        []string{"rtx 30", "309", "308", "307", "306"},
				architecture: "Ampere",
				memoryType:   "GDDR6",
				memoryTypes:  []override[string]{{"3090", "GDDR6X"}, {"3080", "GDDR6X"}},
				busWidth:     256,
				busWidths:    []override[uint32]{{"3090", 384}, {"3080", 320}},
			},
			{
				match:        []string{"rtx 20", "208", "207", "206"},
				architecture: "Turing",
				memoryType:   "GDDR6",
				busWidth:     192,
				busWidths:    []override[uint32]{{"2080 ti", 352}, {"2080", 256}},
			},
			{
				match:        []string{"gtx 16", "166", "165"},
				architecture: "Turing",
				memoryType:   "GDDR6",
				busWidth:     192,
			},
			{
				match:        []string{"gtx 10", "108", "107", "106"},
				architecture: "Pascal",
				memoryType:   "GDDR5X",
				busWidth:     192,
				busWidths:    []override[uint32]{{"1080 ti", 352}, {"1080", 256}},
			},
		},
	},
	{
		vendor:  "AMD",
		match:   []string{"amd", "radeon", "rx "},
		directX: "DirectX 12",
		openGL:  "OpenGL 4.6",
		vulkan:  true,
		generations: []generation{
			{
				match:        []string{"rx 7", "790", "780", "770", "760"},
				architecture: "RDNA 3",
				memoryType:   "GDDR6",
				busWidth:     128,
				busWidths:    []override[uint32]{{"7900", 384}, {"7800", 256}},
			},
			{
				match:        []string{"rx 6", "690", "680", "670", "660"},
				architecture: "RDNA 2",
				memoryType:   "GDDR6",
				busWidth:     128,
				busWidths:    []override[uint32]{{"6900", 256}, {"6800", 256}},
			},
			{
				match:        []string{"rx 5", "570", "560", "550"},
				architecture: "RDNA",
				memoryType:   "GDDR6",
				busWidth:     128,
				busWidths:    []override[uint32]{{"5700", 256}},
			},
			// TODO: unreachable, "rx 5" above matches every Polaris name.
			// Narrow the RDNA markers to four-digit models.
			{
				match:        []string{"rx 580", "rx 570", "rx 560"},
				architecture: "Polaris",
				memoryType:   "GDDR5",
				busWidth:     128,
				busWidths:    []override[uint32]{{"580", 256}},
			},
		},
	},
	{
		vendor:  "Intel",
		match:   []string{"intel"},
		directX: "DirectX 12",
		openGL:  "OpenGL 4.5",
		vulkan:  true,
		generations: []generation{
			{
				match:        []string{"arc"},
				architecture: "Xe-HPG (Alchemist)",
				memoryType:   "GDDR6",
				busWidth:     128,
				busWidths:    []override[uint32]{{"a770", 256}, {"a750", 256}},
			},
			{
				match:        []string{"iris xe", "xe graphics"},
				architecture: "Xe-LP",
				memoryType:   "System RAM",
				busWidth:     128,
			},
			{
				match:        []string{"uhd", "hd graphics"},
				architecture: "Gen 9.5/Gen 11",
				memoryType:   "System RAM",
				busWidth:     64,
			},
		},
	},
}

// Capabilities is the static vendor/architecture lookup result for a GPU name.
type Capabilities struct {
	Vendor         string
	Architecture   string
	MemoryType     string
	MemoryBusWidth uint32
	DirectXVersion string
	OpenGLVersion  string
	VulkanSupport  bool
}

// LookupCapabilities matches a GPU name against the vendor table. A known
// vendor with an unknown model keeps the vendor's API defaults and an Unknown
// architecture.
func LookupCapabilities(name string) Capabilities {
	c := Capabilities{
		Vendor:         Unknown,
		Architecture:   Unknown,
		MemoryType:     Unknown,
		DirectXVersion: Unknown,
		OpenGLVersion:  Unknown,
	}
	n := strings.ToLower(name)

	for _, v := range gpuVendors {
		if !containsAny(n, v.match) {
			continue
		}
		c.Vendor = v.vendor
		c.DirectXVersion = v.directX
		c.OpenGLVersion = v.openGL
		c.VulkanSupport = v.vulkan

		for _, g := range v.generations {
			if !containsAny(n, g.match) {
				continue
			}
			c.Architecture = g.architecture
			c.MemoryType = pick(n, g.memoryTypes, g.memoryType)
			c.MemoryBusWidth = pick(n, g.busWidths, g.busWidth)
			break
		}
		break
	}
	return c
}
