// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package isa

import "math"

const (
	assumedRelativeHumidity = 50.0  // relative humidity in percent used for all humidity estimates
	molarMassRatio          = 0.622 // ratio of the molar masses of water vapor and dry air
	vaporPressureCap        = 0.99  // vapor pressure is capped below this fraction of total pressure
)

// saturationVaporPressureWater calculates the saturation vapour pressure of water in hectopascal
// (hPa) with the Magnus formula using the coefficients of Alduchov and Eskridge.
// See https://en.wikipedia.org/wiki/Clausius%E2%80%93Clapeyron_relation#Meteorology_and_climatology
func saturationVaporPressureWater(temperatureCelsius float64) float64 {
	denominator := temperatureCelsius + 243.04
	if math.Abs(denominator) <= epsilon {
		return 0.0
	}
	return math.Max(0.0, 6.1094*math.Exp(17.625*temperatureCelsius/denominator))
}

// vaporPressure returns the partial vapour pressure in hPa for the assumed relative
// humidity. It never reaches the total pressure pressureHpa.
func vaporPressure(temperatureCelsius float64, pressureHpa float64) float64 {
	e := assumedRelativeHumidity / 100.0 * saturationVaporPressureWater(temperatureCelsius)
	if e >= pressureHpa {
		e = pressureHpa * vaporPressureCap
	}
	return math.Max(0.0, e)
}

// SpecificHumidity calculates the mixing ratio in gram water vapour per kilogram dry air
// for the partial vapour pressure and the total pressure (both in hPa).
//
// The mixing ratio follows from Dalton's law and the ideal gas law:
// mixingRatio = (M(H2O) / M(air)) * vaporPressure / (pressure - vaporPressure)
func SpecificHumidity(vaporPressureHpa float64, pressureHpa float64) float64 {
	diff := pressureHpa - vaporPressureHpa
	if diff <= epsilon {
		return 0.0
	}
	return 1000 * math.Max(0.0, molarMassRatio*vaporPressureHpa/diff)
}
