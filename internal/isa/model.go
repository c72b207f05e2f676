// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package isa

import "math"

// InputSet holds validated sea-level conditions and the altitude in SI units.
type InputSet struct {
	AltitudeM          float64
	SeaLevelTempC      float64
	SeaLevelPressurePa float64
}

// CalculationResult is the state of the atmosphere at the requested altitude.
type CalculationResult struct {
	TemperatureC           float64
	PressureHpa            float64
	DensityKgM3            float64
	PercentPressure        float64
	PercentDensity         float64
	SpecificHumidityGPerKg float64
	VaporPressureHpa       float64
}

// Evaluate computes the atmospheric state for in with the extended ISA model.
func Evaluate(in InputSet, c PhysicalConstants) (CalculationResult, error) {
	if err := c.Validate(); err != nil {
		return CalculationResult{}, err
	}
	g := c.Gravity
	r := c.GasConstantR
	seaLevelTempK := in.SeaLevelTempC + kelvinOffset
	seaLevelPressurePa := in.SeaLevelPressurePa

	i, err := findLayer(in.AltitudeM)
	if err != nil {
		return CalculationResult{}, err
	}
	layer := layers[i]
	if i == 0 {
		layer.BaseTempK = seaLevelTempK
		layer.BasePressurePa = seaLevelPressurePa
	}

	t0 := layer.BaseTempK
	dh := in.AltitudeM - layer.BaseHeightM
	tempK := math.Max(0.0, t0+layer.LapseRateKPerM*dh)

	var pressurePa float64
	if math.Abs(layer.LapseRateKPerM) < epsilon {
		if math.Abs(t0) < epsilon {
			return CalculationResult{}, newError(ComputationError, "",
				"base temperature zero in isothermal layer %d", i)
		}
		pressurePa = layer.BasePressurePa * math.Exp(-g*dh/(r*t0))
	} else {
		if math.Abs(t0) < epsilon {
			return CalculationResult{}, newError(ComputationError, "",
				"base temperature zero in non-isothermal layer %d", i)
		}
		ratio := tempK / t0
		if ratio > 0 {
			pressurePa = layer.BasePressurePa * math.Pow(ratio, -g/(layer.LapseRateKPerM*r))
		}
	}
	pressurePa = math.Max(0.0, pressurePa)

	density := 0.0
	if tempK > epsilon {
		density = math.Max(0.0, pressurePa/(r*tempK))
	}

	seaLevelDensity := 0.0
	if seaLevelTempK > epsilon {
		seaLevelDensity = seaLevelPressurePa / (r * seaLevelTempK)
	}
	percentPressure := 0.0
	if seaLevelPressurePa > epsilon {
		percentPressure = pressurePa / seaLevelPressurePa * 100.0
	}
	percentDensity := 0.0
	if seaLevelDensity > epsilon {
		percentDensity = density / seaLevelDensity * 100.0
	}

	tempC := tempK - kelvinOffset
	pressureHpa := pressurePa / 100.0
	e := vaporPressure(tempC, pressureHpa)

	return CalculationResult{
		TemperatureC:           tempC,
		PressureHpa:            pressureHpa,
		DensityKgM3:            density,
		PercentPressure:        percentPressure,
		PercentDensity:         percentDensity,
		SpecificHumidityGPerKg: SpecificHumidity(e, pressureHpa),
		VaporPressureHpa:       e,
	}, nil
}

