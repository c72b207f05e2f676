// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package isa

import (
	"testing"

	"github.com/bdrung/isa-calculator/internal/units"
)

func TestFormatMetric(t *testing.T) {
	result, err := Evaluate(standardInput(1000), DefaultConstants())
	if err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}
	got, err := Format(result, standardInput(1000), metricUnits)
	if err != nil {
		t.Fatalf("Format() unexpected error: %v", err)
	}
	want := "At 1000.00 Meters:\r\n" +
		"--------------------------\r\n" +
		"Temperature = 8.50 °C\r\n" +
		"Pressure = 898.74 hPa (88.70% of sea level)\r\n" +
		"Density = 1.111652 kg/m³ (90.75% of sea level)\r\n" +
		"Specific Humidity = 3.8589 g/kg\r\n" +
		"Vapor Pressure = 5.54 hPa"
	if got != want {
		t.Errorf("Format() =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatImperial(t *testing.T) {
	result := CalculationResult{
		TemperatureC:           10,
		PressureHpa:            338.639,
		DensityKgM3:            0.5,
		PercentPressure:        33.333333,
		PercentDensity:         40.816326,
		SpecificHumidityGPerKg: 1.23456,
		VaporPressureHpa:       2.346,
	}
	du := DisplayUnits{Altitude: units.Feet, Temperature: units.Fahrenheit, Pressure: units.InHg}
	got, err := Format(result, InputSet{AltitudeM: 304.8}, du)
	if err != nil {
		t.Fatalf("Format() unexpected error: %v", err)
	}
	want := "At 1000.00 Feet:\r\n" +
		"--------------------------\r\n" +
		"Temperature = 50.00 °F\r\n" +
		"Pressure = 10.00 inHg (33.33% of sea level)\r\n" +
		"Density = 0.500000 kg/m³ (40.82% of sea level)\r\n" +
		"Specific Humidity = 1.2346 g/kg\r\n" +
		"Vapor Pressure = 2.35 hPa"
	if got != want {
		t.Errorf("Format() =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatUnselectedUnit(t *testing.T) {
	du := metricUnits
	du.Pressure = units.PressureUnit(units.Unset)
	if _, err := Format(CalculationResult{}, InputSet{}, du); !IsKind(err, UnselectedUnit) {
		t.Errorf("Format() error = %v, want %s", err, UnselectedUnit)
	}
}
