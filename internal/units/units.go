// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

// Package units converts between the display units offered to the user and the
// SI units used by the atmosphere model.
package units

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	metersPerFoot       = 0.3048
	hectopascalPerInHg  = 33.8639
	fahrenheitZeroShift = 32.0
)

// Unset marks a selector that was never chosen.
const Unset = -1

func FeetToMeters(feet float64) float64 {
	return feet * metersPerFoot
}

func MetersToFeet(meters float64) float64 {
	return meters / metersPerFoot
}

func FahrenheitToCelsius(fahrenheit float64) float64 {
	return (fahrenheit - fahrenheitZeroShift) * 5.0 / 9.0
}

func CelsiusToFahrenheit(celsius float64) float64 {
	return celsius*9.0/5.0 + fahrenheitZeroShift
}

func InHgToHectopascal(inHg float64) float64 {
	return inHg * hectopascalPerInHg
}

func HectopascalToInHg(hectopascal float64) float64 {
	return hectopascal / hectopascalPerInHg
}

// AltitudeUnit selects how altitudes are entered and displayed.
// The values are the persisted selector indices.
type AltitudeUnit int

const (
	Feet   AltitudeUnit = 0
	Meters AltitudeUnit = 1
)

func (u AltitudeUnit) Valid() bool {
	return u == Feet || u == Meters
}

func (u AltitudeUnit) String() string {
	switch u {
	case Feet:
		return "Feet"
	case Meters:
		return "Meters"
	default:
		return "unset"
	}
}

// ToMeters converts an altitude given in u to meters.
func (u AltitudeUnit) ToMeters(value float64) float64 {
	if u == Feet {
		return FeetToMeters(value)
	}
	return value
}

// FromMeters converts an altitude in meters to u.
func (u AltitudeUnit) FromMeters(meters float64) float64 {
	if u == Feet {
		return MetersToFeet(meters)
	}
	return meters
}

// TemperatureUnit selects how temperatures are entered and displayed.
type TemperatureUnit int

const (
	Celsius    TemperatureUnit = 0
	Fahrenheit TemperatureUnit = 1
)

func (u TemperatureUnit) Valid() bool {
	return u == Celsius || u == Fahrenheit
}

func (u TemperatureUnit) String() string {
	switch u {
	case Celsius:
		return "°C"
	case Fahrenheit:
		return "°F"
	default:
		return "unset"
	}
}

func (u TemperatureUnit) ToCelsius(value float64) float64 {
	if u == Fahrenheit {
		return FahrenheitToCelsius(value)
	}
	return value
}

func (u TemperatureUnit) FromCelsius(celsius float64) float64 {
	if u == Fahrenheit {
		return CelsiusToFahrenheit(celsius)
	}
	return celsius
}

// PressureUnit selects how pressures are entered and displayed.
type PressureUnit int

const (
	Hectopascal PressureUnit = 0
	InHg        PressureUnit = 1
)

func (u PressureUnit) Valid() bool {
	return u == Hectopascal || u == InHg
}

func (u PressureUnit) String() string {
	switch u {
	case Hectopascal:
		return "hPa"
	case InHg:
		return "inHg"
	default:
		return "unset"
	}
}

func (u PressureUnit) ToHectopascal(value float64) float64 {
	if u == InHg {
		return InHgToHectopascal(value)
	}
	return value
}

func (u PressureUnit) FromHectopascal(hectopascal float64) float64 {
	if u == InHg {
		return HectopascalToInHg(hectopascal)
	}
	return hectopascal
}

// Model selects the atmosphere model. Both choices evaluate the extended
// ISA layers; plain ISA is kept as a selectable label only.
type Model int

const (
	ISA         Model = 0
	ExtendedISA Model = 1
)

func (m Model) Valid() bool {
	return m == ISA || m == ExtendedISA
}

func (m Model) String() string {
	switch m {
	case ISA:
		return "ISA"
	case ExtendedISA:
		return "Extended ISA"
	default:
		return "unset"
	}
}

// parseSelector accepts either the selector index or one of its labels
// (case-insensitive).
func parseSelector(kind string, value string, labels map[string]int) (int, error) {
	value = strings.TrimSpace(value)
	if index, err := strconv.Atoi(value); err == nil {
		for _, known := range labels {
			if known == index {
				return index, nil
			}
		}
		return Unset, fmt.Errorf("Unknown %s index %d", kind, index)
	}
	if index, ok := labels[strings.ToLower(value)]; ok {
		return index, nil
	}
	return Unset, fmt.Errorf("Unknown %s '%s'", kind, value)
}

func ParseAltitudeUnit(value string) (AltitudeUnit, error) {
	index, err := parseSelector("altitude unit", value, map[string]int{
		"feet": int(Feet), "ft": int(Feet),
		"meters": int(Meters), "m": int(Meters),
	})
	return AltitudeUnit(index), err
}

func ParseTemperatureUnit(value string) (TemperatureUnit, error) {
	index, err := parseSelector("temperature unit", value, map[string]int{
		"°c": int(Celsius), "c": int(Celsius), "celsius": int(Celsius),
		"°f": int(Fahrenheit), "f": int(Fahrenheit), "fahrenheit": int(Fahrenheit),
	})
	return TemperatureUnit(index), err
}

func ParsePressureUnit(value string) (PressureUnit, error) {
	index, err := parseSelector("pressure unit", value, map[string]int{
		"hpa": int(Hectopascal), "inhg": int(InHg),
	})
	return PressureUnit(index), err
}

func ParseModel(value string) (Model, error) {
	index, err := parseSelector("model", value, map[string]int{
		"isa": int(ISA), "extended isa": int(ExtendedISA), "extended": int(ExtendedISA),
	})
	return Model(index), err
}
