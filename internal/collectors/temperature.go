package collectors

import (
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

var (
	cpuSensorLabels = []string{"package", "cpu"}
	gpuSensorLabels = []string{"gpu", "graphics", "video"}
)

// tenths of Kelvin at 0°C
const kelvinOffsetTenths = 2732

// scanOptions selects which temperature passes run after the labeled match.
type scanOptions struct {
	anySensor    bool
	thermalZones bool
}

// scanTemperature returns the first plausible reading, trying a labeled
// sensor, then (if enabled) any sensor, then (if enabled) thermal zones.
func (p *Probe) scanTemperature(labels []string, opts scanOptions) (float64, bool) {
	sensors := p.readSensors()

	passes := []lookup[float64]{labeledSensor(sensors, labels)}
	if opts.anySensor {
		passes = append(passes, anySensor(sensors))
	}
	if opts.thermalZones && p.Inventory != nil {
		passes = append(passes,
			p.thermalZone("ThermalZoneInformation", p.Inventory.ThermalZoneInformation),
			p.thermalZone("MSAcpi_ThermalZoneTemperature", p.Inventory.ACPIThermalZones),
		)
	}
	return firstOf(passes...)
}

func (p *Probe) readSensors() []host.TemperatureStat {
	if p.Sensors == nil {
		return nil
	}
	sensors, err := p.Sensors.Temperatures()
	if err != nil {
		p.logf("sensors: %v (%d readings returned)", err, len(sensors))
	}
	return sensors
}

func labeledSensor(sensors []host.TemperatureStat, labels []string) lookup[float64] {
	return func() (float64, bool) {
		for _, s := range sensors {
			label := strings.ToLower(s.SensorKey)
			if containsAny(label, labels) && s.Temperature > 0 && s.Temperature < 150 {
				return s.Temperature, true
			}
		}
		return 0, false
	}
}

func anySensor(sensors []host.TemperatureStat) lookup[float64] {
	return func() (float64, bool) {
		for _, s := range sensors {
			if plausibleAmbient(s.Temperature) {
				return s.Temperature, true
			}
		}
		return 0, false
	}
}

func (p *Probe) thermalZone(name string, read func() ([]uint64, error)) lookup[float64] {
	return func() (float64, bool) {
		raw, err := read()
		if err != nil {
			p.logf("thermal zone %s: %v", name, err)
			return 0, false
		}
		for _, r := range raw {
			if c := tenthsKelvinToCelsius(r); plausibleAmbient(c) {
				return c, true
			}
		}
		return 0, false
	}
}

func tenthsKelvinToCelsius(raw uint64) float64 {
	return (float64(raw) - kelvinOffsetTenths) / 10
}

func plausibleAmbient(c float64) bool {
	return c > 20 && c < 100
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
