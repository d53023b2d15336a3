package recommend

import (
	"math"
	"testing"
)

func TestCalculateSizingKnownValues(t *testing.T) {
	// 10 kWh/day at 5 peak sun hours: 10/(5*0.75) = 2.67 kW.
	sizing := CalculateSizing(10, 5)

	if sizing.SystemKW != 2.67 {
		t.Fatalf("system size = %v, want 2.67", sizing.SystemKW)
	}
	if sizing.Panels != 6 {
		t.Fatalf("panels = %d, want 6", sizing.Panels)
	}
	if math.Abs(sizing.InverterKW-3.07) > 0.01 {
		t.Fatalf("inverter = %v, want ~3.07", sizing.InverterKW)
	}
	if sizing.BatteryKWh != 40 {
		t.Fatalf("battery = %v, want 40", sizing.BatteryKWh)
	}
	if sizing.DailyGeneration != 10 {
		t.Fatalf("daily generation = %v, want 10", sizing.DailyGeneration)
	}
}

func TestTariffSlabs(t *testing.T) {
	tests := []struct {
		units float64
		want  float64
	}{
		{0, 0},
		{50, 50 * 3.95},
		{100, 50*3.95 + 50*7.74},
		{150, 50*3.95 + 50*7.74 + 50*10.06},
		{700, 50*3.95 + 50*7.74 + 100*10.06 + 100*12.15 + 400*19.55},
		{750, 50*3.95 + 50*7.74 + 100*10.06 + 100*12.15 + 400*19.55 + 50*35.22},
	}

	for _, tt := range tests {
		got := Tariff(tt.units)
		if math.Abs(got-tt.want) > 0.001 {
			t.Fatalf("Tariff(%v) = %v, want %v", tt.units, got, tt.want)
		}
	}
}

func TestTariffIsMonotonic(t *testing.T) {
	prev := 0.0
	for units := 10.0; units <= 1200; units += 10 {
		total := Tariff(units)
		if total <= prev {
			t.Fatalf("tariff not increasing at %v units", units)
		}
		prev = total
	}
}

func TestCacheKeyDeterministic(t *testing.T) {
	monthly := 300
	a := Query{Location: "Lahore", ElectricityKWhPerMonth: &monthly}
	b := Query{Location: "Lahore", ElectricityKWhPerMonth: &monthly}
	if cacheKey(a) != cacheKey(b) {
		t.Fatal("identical queries must share a cache key")
	}

	c := Query{Location: "Karachi", ElectricityKWhPerMonth: &monthly}
	if cacheKey(a) == cacheKey(c) {
		t.Fatal("different locations must not share a cache key")
	}
}
