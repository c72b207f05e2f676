// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package isa

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/bdrung/isa-calculator/internal/units"
)

const (
	minAltitudeM = -5000.0
	maxAltitudeM = 85000.0

	minPlausibleTempC       = -100.0
	maxPlausibleTempC       = 100.0
	minPlausiblePressureHpa = 800.0
	maxPlausiblePressureHpa = 1100.0
	pascalPerHectopascal    = 100.0
)

// Request is a calculation request as entered by the user: raw text values
// with the units they were entered in.
type Request struct {
	Altitude        string
	Temperature     string
	Pressure        string
	AltitudeUnit    units.AltitudeUnit
	TemperatureUnit units.TemperatureUnit
	PressureUnit    units.PressureUnit
	Model           units.Model
}

// DisplayUnits returns the units the result of r is rendered in.
func (r Request) DisplayUnits() DisplayUnits {
	return DisplayUnits{Altitude: r.AltitudeUnit, Temperature: r.TemperatureUnit, Pressure: r.PressureUnit}
}

// groupedNumber matches numbers using ',' as thousands separator. Commas
// elsewhere, like a decimal comma in "15,5", are not accepted.
var groupedNumber = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d*)?([eE][+-]?\d+)?$`)

func parseNumber(field string, text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	if groupedNumber.MatchString(trimmed) {
		trimmed = strings.ReplaceAll(trimmed, ",", "")
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, newError(ParseError, field, "invalid numeric input '%s'", text)
	}
	return value, nil
}

// Validate converts r to SI units and checks it against the model range.
// Implausible sea-level conditions produce at most one warning, a temperature
// warning taking precedence over a pressure warning.
func Validate(r Request) (InputSet, *Warning, error) {
	if strings.TrimSpace(r.Altitude) == "" ||
		strings.TrimSpace(r.Temperature) == "" ||
		strings.TrimSpace(r.Pressure) == "" {
		return InputSet{}, nil, newError(MissingInput, "",
			"please enter values for altitude, temperature, and pressure")
	}

	if !r.AltitudeUnit.Valid() || !r.TemperatureUnit.Valid() ||
		!r.PressureUnit.Valid() || !r.Model.Valid() {
		return InputSet{}, nil, newError(UnselectedUnit, "",
			"please ensure unit and model selections are made")
	}

	altitude, err := parseNumber("altitude", r.Altitude)
	if err != nil {
		return InputSet{}, nil, err
	}
	temperature, err := parseNumber("temperature", r.Temperature)
	if err != nil {
		return InputSet{}, nil, err
	}
	pressure, err := parseNumber("pressure", r.Pressure)
	if err != nil {
		return InputSet{}, nil, err
	}

	altitudeM := r.AltitudeUnit.ToMeters(altitude)
	tempC := r.TemperatureUnit.ToCelsius(temperature)
	pressureHpa := r.PressureUnit.ToHectopascal(pressure)

	if altitudeM < minAltitudeM || altitudeM > maxAltitudeM {
		return InputSet{}, nil, newError(RangeError, "altitude",
			"altitude %.2f m is outside the model range (%.0f m to %.0f m)",
			altitudeM, minAltitudeM, maxAltitudeM)
	}

	var warning *Warning
	if tempC < minPlausibleTempC || tempC > maxPlausibleTempC {
		warning = &Warning{
			Field: "temperature",
			Msg:   "sea-level temperature is outside the typical range (-100°C to 100°C)",
		}
	} else if pressureHpa < minPlausiblePressureHpa || pressureHpa > maxPlausiblePressureHpa {
		warning = &Warning{
			Field: "pressure",
			Msg:   "sea-level pressure is outside the typical range (800 hPa to 1100 hPa)",
		}
	}

	return InputSet{
		AltitudeM:          altitudeM,
		SeaLevelTempC:      tempC,
		SeaLevelPressurePa: pressureHpa * pascalPerHectopascal,
	}, warning, nil
}
