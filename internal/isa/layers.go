// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package isa

// Layer is one segment of the piecewise atmosphere. Heights are geopotential
// meters, lapse rates in K / m.
type Layer struct {
	BaseHeightM    float64
	BaseTempK      float64
	BasePressurePa float64
	LapseRateKPerM float64
}

// CeilingM is the top of the highest layer.
const CeilingM = 84852.0

// layers is the extended ISA table up to the mesopause. The temperature and
// pressure of the troposphere are placeholders, they are always replaced by
// the sea-level conditions of the request.
var layers = [...]Layer{
	{BaseHeightM: 0, BaseTempK: 288.15, BasePressurePa: 101325, LapseRateKPerM: -0.0065},
	{BaseHeightM: 11000, BaseTempK: 216.65, BasePressurePa: 22632.1, LapseRateKPerM: 0.0},
	{BaseHeightM: 20000, BaseTempK: 216.65, BasePressurePa: 5474.89, LapseRateKPerM: 0.001},
	{BaseHeightM: 32000, BaseTempK: 228.65, BasePressurePa: 868.019, LapseRateKPerM: 0.0028},
	{BaseHeightM: 47000, BaseTempK: 270.65, BasePressurePa: 110.906, LapseRateKPerM: 0.0},
	{BaseHeightM: 51000, BaseTempK: 270.65, BasePressurePa: 66.9389, LapseRateKPerM: -0.0028},
	{BaseHeightM: 71000, BaseTempK: 214.65, BasePressurePa: 3.95642, LapseRateKPerM: -0.002},
}

// Layers returns a copy of the layer table.
func Layers() []Layer {
	out := make([]Layer, len(layers))
	copy(out, layers[:])
	return out
}

// upperBoundary is the top of layer i: the base of the next layer or the ceiling.
func upperBoundary(i int) float64 {
	if i+1 < len(layers) {
		return layers[i+1].BaseHeightM
	}
	return CeilingM
}

// findLayer returns the index of the lowest layer whose upper boundary is not
// below altitudeM. Altitudes below sea level belong to the troposphere.
func findLayer(altitudeM float64) (int, error) {
	for i := range layers {
		if altitudeM <= upperBoundary(i) {
			return i, nil
		}
	}
	return -1, newError(ModelRangeError, "altitude",
		"altitude %.2f m exceeds the limits of this extended ISA model (max %.0f m)", altitudeM, CeilingM)
}
