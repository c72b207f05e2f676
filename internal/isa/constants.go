// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package isa

import "math"

const (
	DefaultGravity      = 9.80665 // standard gravity g in m / s²
	DefaultGasConstantR = 287.05  // specific gas constant for dry air in J / (kg * K)

	kelvinOffset = 273.15
	epsilon      = 1e-9

	// constantsTolerance is the smallest change of g or R that counts as a change.
	constantsTolerance = 1e-9
)

// PhysicalConstants are the user adjustable constants of the model.
type PhysicalConstants struct {
	Gravity      float64
	GasConstantR float64
}

func DefaultConstants() PhysicalConstants {
	return PhysicalConstants{Gravity: DefaultGravity, GasConstantR: DefaultGasConstantR}
}

// Validate rejects constants that are not strictly positive and finite.
func (c PhysicalConstants) Validate() error {
	if !(c.Gravity > 0) || math.IsInf(c.Gravity, 0) {
		return newError(ConstantsError, "gravity", "gravity must be a positive number, got %g", c.Gravity)
	}
	if !(c.GasConstantR > 0) || math.IsInf(c.GasConstantR, 0) {
		return newError(ConstantsError, "gas constant",
			"gas constant must be a positive number, got %g", c.GasConstantR)
	}
	return nil
}

// differs reports whether g or R moved by more than the change tolerance.
func (c PhysicalConstants) differs(other PhysicalConstants) bool {
	return math.Abs(c.Gravity-other.Gravity) > constantsTolerance ||
		math.Abs(c.GasConstantR-other.GasConstantR) > constantsTolerance
}
