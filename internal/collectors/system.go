package collectors

import (
	"fmt"
	"runtime"
	"strings"
)

// processNodes maps brand-string generation markers to a fabrication process.
// Order matters: the first entry with a matching marker wins.
var processNodes = []struct {
	markers []string
	node    string
}{
	{[]string{"13th gen", "-13"}, "Intel 7 (10nm)"},
	{[]string{"12th gen", "-12"}, "Intel 7 (10nm)"},
	{[]string{"11th gen", "-11"}, "10nm SuperFin"},
	{[]string{"10th gen", "-10"}, "14nm"},
	{[]string{"7000"}, "5nm (TSMC)"},
	{[]string{"5000"}, "7nm (TSMC)"},
	{[]string{"3000"}, "7nm (TSMC)"},
	{[]string{"2000"}, "12nm (TSMC)"},
	{[]string{"1000"}, "14nm (GloFo)"},
}

// guessProcessNode infers the process node from a CPU name, or Unknown.
func guessProcessNode(cpuName string) string {
	name := strings.ToLower(cpuName)
	for _, pn := range processNodes {
		if containsAny(name, pn.markers) {
			return pn.node
		}
	}
	return Unknown
}

// FormatUptime renders seconds as "1d 2h 3m", "2h 3m" or "3m".
func FormatUptime(secs uint64) string {
	days := secs / 86400
	hours := (secs % 86400) / 3600
	mins := (secs % 3600) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

// cpuVendor classifies a CPU brand string.
func cpuVendor(brand string) string {
	b := strings.ToLower(brand)
	switch {
	case strings.Contains(b, "intel"):
		return "Intel"
	case strings.Contains(b, "amd"):
		return "AMD"
	default:
		return "Other"
	}
}

// architectureTag maps a GOARCH value to the label shown in the UI.
func architectureTag(goarch string) string {
	switch goarch {
	case "amd64":
		return "x64"
	case "arm64":
		return "ARM64"
	default:
		return "Other"
	}
}

// buildArchitecture is the tag for the architecture this binary was built for.
var buildArchitecture = architectureTag(runtime.GOARCH)

func (p *Probe) uptime() string {
	secs, err := p.Host.Uptime()
	if err != nil {
		p.logf("cpu: uptime unavailable: %v", err)
		return FormatUptime(0)
	}
	return FormatUptime(secs)
}
