package recommend

import "math"

// Sizing assumptions shared with the original product.
const (
	PanelWattage     = 400 // W
	SystemEfficiency = 0.75
	DailyBackupHours = 4
	CostPerKW        = 180000 // PKR
)

// Sizing is the computed solar system layout for a daily consumption and
// peak-sun-hours pair.
type Sizing struct {
	SystemKW        float64
	Panels          int
	InverterKW      float64
	BatteryKWh      float64
	DailyGeneration float64
}

// CalculateSizing sizes the system. solarHours is the location's average
// daily peak sun hours.
func CalculateSizing(dailyKWh, solarHours float64) Sizing {
	systemKW := dailyKWh / (solarHours * SystemEfficiency)
	panels := int((systemKW * 1000) / PanelWattage)
	inverterKW := systemKW * 1.15
	batteryKWh := dailyKWh * DailyBackupHours

	return Sizing{
		SystemKW:        round2(systemKW),
		Panels:          panels,
		InverterKW:      round2(inverterKW),
		BatteryKWh:      round1(batteryKWh),
		DailyGeneration: round2(systemKW * solarHours * SystemEfficiency),
	}
}

// tariffSlabs is the residential slab table: units at each rate, cheapest
// first. The final slab is open-ended.
var tariffSlabs = []struct {
	units float64
	rate  float64
}{
	{50, 3.95},
	{50, 7.74},
	{100, 10.06},
	{100, 12.15},
	{400, 19.55},
	{math.Inf(1), 35.22},
}

// Tariff prices a monthly consumption across the slab table.
func Tariff(units float64) float64 {
	total := 0.0
	for _, slab := range tariffSlabs {
		if units <= 0 {
			break
		}
		consume := math.Min(units, slab.units)
		total += consume * slab.rate
		units -= consume
	}
	return total
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
