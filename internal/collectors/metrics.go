package collectors

import (
	"fmt"
	"strings"
)

// GenerateMetrics renders a CPU snapshot and, when available, a GPU snapshot
// in the Prometheus text exposition format. gpu is nil when the GPU query failed.
func GenerateMetrics(c CPUSnapshot, gpu *GPUSnapshot) string {
	var sb strings.Builder

	sb.WriteString("# HELP hwinfo_cpu_info Static CPU identity (labels only).\n")
	sb.WriteString("# TYPE hwinfo_cpu_info gauge\n")
	sb.WriteString(fmt.Sprintf("hwinfo_cpu_info{brand=\"%s\",vendor=\"%s\",architecture=\"%s\",socket=\"%s\",process_node=\"%s\"} 1\n\n",
		escapeLabel(c.Brand),
		escapeLabel(c.Vendor),
		escapeLabel(c.Architecture),
		escapeLabel(c.Socket),
		escapeLabel(c.ProcessNode),
	))

	sb.WriteString("# HELP hwinfo_cpu_usage_percent CPU usage in percent (system-wide).\n")
	sb.WriteString("# TYPE hwinfo_cpu_usage_percent gauge\n")
	sb.WriteString(fmt.Sprintf("hwinfo_cpu_usage_percent %.2f\n\n", c.Usage))

	sb.WriteString("# HELP hwinfo_cpu_core_usage_percent CPU usage per logical core.\n")
	sb.WriteString("# TYPE hwinfo_cpu_core_usage_percent gauge\n")
	for i, u := range c.PerCoreUsage {
		sb.WriteString(fmt.Sprintf("hwinfo_cpu_core_usage_percent{core=\"%d\"} %.2f\n", i, u))
	}
	sb.WriteString("\n")

	sb.WriteString("# HELP hwinfo_cpu_frequency_mhz CPU clock in MHz (current/max).\n")
	sb.WriteString("# TYPE hwinfo_cpu_frequency_mhz gauge\n")
	sb.WriteString(fmt.Sprintf("hwinfo_cpu_frequency_mhz{type=\"current\"} %d\n", c.Frequency))
	sb.WriteString(fmt.Sprintf("hwinfo_cpu_frequency_mhz{type=\"max\"} %d\n\n", c.MaxFrequency))

	sb.WriteString("# HELP hwinfo_cpu_cores Number of CPU cores (physical/logical).\n")
	sb.WriteString("# TYPE hwinfo_cpu_cores gauge\n")
	sb.WriteString(fmt.Sprintf("hwinfo_cpu_cores{type=\"physical\"} %d\n", c.Cores))
	sb.WriteString(fmt.Sprintf("hwinfo_cpu_cores{type=\"logical\"} %d\n\n", c.LogicalCores))

	if c.TempAvailable {
		sb.WriteString("# HELP hwinfo_cpu_temperature_celsius CPU temperature in Celsius.\n")
		sb.WriteString("# TYPE hwinfo_cpu_temperature_celsius gauge\n")
		sb.WriteString(fmt.Sprintf("hwinfo_cpu_temperature_celsius %.2f\n\n", c.Temperature))
	}

	sb.WriteString("# HELP hwinfo_gpu_up Whether the GPU query succeeded.\n")
	sb.WriteString("# TYPE hwinfo_gpu_up gauge\n")
	if gpu == nil {
		sb.WriteString("hwinfo_gpu_up 0\n\n")
		return sb.String()
	}
	sb.WriteString("hwinfo_gpu_up 1\n\n")

	sb.WriteString("# HELP hwinfo_gpu_info Static GPU identity (labels only).\n")
	sb.WriteString("# TYPE hwinfo_gpu_info gauge\n")
	sb.WriteString(fmt.Sprintf("hwinfo_gpu_info{name=\"%s\",vendor=\"%s\",type=\"%s\",architecture=\"%s\",driver=\"%s\"} 1\n\n",
		escapeLabel(gpu.Name),
		escapeLabel(gpu.Vendor),
		escapeLabel(gpu.GPUType),
		escapeLabel(gpu.Architecture),
		escapeLabel(gpu.DriverVersion),
	))

	sb.WriteString("# HELP hwinfo_gpu_memory_bytes GPU memory in bytes (total/used/free). Used and free are estimates.\n")
	sb.WriteString("# TYPE hwinfo_gpu_memory_bytes gauge\n")
	sb.WriteString(fmt.Sprintf("hwinfo_gpu_memory_bytes{type=\"total\"} %d\n", gpu.MemoryTotal))
	sb.WriteString(fmt.Sprintf("hwinfo_gpu_memory_bytes{type=\"used\"} %d\n", gpu.MemoryUsed))
	sb.WriteString(fmt.Sprintf("hwinfo_gpu_memory_bytes{type=\"free\"} %d\n\n", gpu.MemoryFree))

	if gpu.TempAvailable {
		sb.WriteString("# HELP hwinfo_gpu_temperature_celsius GPU temperature in Celsius.\n")
		sb.WriteString("# TYPE hwinfo_gpu_temperature_celsius gauge\n")
		sb.WriteString(fmt.Sprintf("hwinfo_gpu_temperature_celsius %.2f\n\n", gpu.Temperature))
	}

	return sb.String()
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, `"`, `\"`)

// escapeLabel escapes a label value for the text exposition format.
func escapeLabel(s string) string {
	return labelEscaper.Replace(s)
}
