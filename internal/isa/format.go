// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package isa

import (
	"fmt"
	"strings"

	"github.com/bdrung/isa-calculator/internal/units"
)

// lineBreak separates the lines of a report.
const lineBreak = "\r\n"

// DisplayUnits are the units a result is rendered in.
type DisplayUnits struct {
	Altitude    units.AltitudeUnit
	Temperature units.TemperatureUnit
	Pressure    units.PressureUnit
}

// Format renders result for the request input in the display units du.
func Format(result CalculationResult, in InputSet, du DisplayUnits) (string, error) {
	if !du.Altitude.Valid() || !du.Temperature.Valid() || !du.Pressure.Valid() {
		return "", newError(UnselectedUnit, "", "invalid unit selection")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "At %.2f %s:"+lineBreak, du.Altitude.FromMeters(in.AltitudeM), du.Altitude)
	b.WriteString("--------------------------" + lineBreak)
	fmt.Fprintf(&b, "Temperature = %.2f %s"+lineBreak, du.Temperature.FromCelsius(result.TemperatureC), du.Temperature)
	fmt.Fprintf(&b, "Pressure = %.2f %s (%.2f%% of sea level)"+lineBreak,
		du.Pressure.FromHectopascal(result.PressureHpa), du.Pressure, result.PercentPressure)
	fmt.Fprintf(&b, "Density = %.6f kg/m³ (%.2f%% of sea level)"+lineBreak,
		result.DensityKgM3, result.PercentDensity)
	fmt.Fprintf(&b, "Specific Humidity = %.4f g/kg"+lineBreak, result.SpecificHumidityGPerKg)
	fmt.Fprintf(&b, "Vapor Pressure = %.2f hPa", result.VaporPressureHpa)
	return b.String(), nil
}
