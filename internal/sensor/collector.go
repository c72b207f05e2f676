// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package sensor

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/bdrung/isa-calculator/internal/isa"
)

// standardPressureHpa is used for derived values of sensors that do not
// measure pressure.
var standardPressureHpa = isa.Layers()[0].BasePressurePa / 100.0

// Collector exports the readings of one sensor as sea-level conditions and
// the atmospheric state they imply at a list of altitudes.
type Collector struct {
	Sensor          Sensor
	Flags           Flags
	AltitudesM      []float64
	Constants       func() isa.PhysicalConstants
	Up              *prometheus.Desc
	TemperatureC    *prometheus.Desc
	PressureHpa     *prometheus.Desc
	RawTemperatureC *prometheus.Desc
	RawPressureHpa  *prometheus.Desc
	AirTemperatureC *prometheus.Desc
	AirPressureHpa  *prometheus.Desc
	AirDensity      *prometheus.Desc
}

func NewCollector(
	s Sensor,
	flags Flags,
	altitudesM []float64,
	constants func() isa.PhysicalConstants,
) *Collector {
	labels := s.Labels()
	altitudeLabel := []string{"altitude_meters"}
	return &Collector{
		Sensor:     s,
		Flags:      flags,
		AltitudesM: altitudesM,
		Constants:  constants,
		Up: prometheus.NewDesc(
			"isa_sensor_up",
			"Value is 1 if reading sensor data was successful, 0 otherwise.",
			nil,
			labels,
		),
		TemperatureC: prometheus.NewDesc(
			"isa_sensor_temperature_celsius",
			"Sea-level temperature in Celsius",
			nil,
			labels,
		),
		PressureHpa: prometheus.NewDesc(
			"isa_sensor_pressure_hectopascals",
			"Sea-level pressure in hectopascal",
			nil,
			labels,
		),
		RawTemperatureC: prometheus.NewDesc(
			"isa_sensor_raw_temperature_celsius",
			"Uncorrected temperature in Celsius",
			nil,
			labels,
		),
		RawPressureHpa: prometheus.NewDesc(
			"isa_sensor_raw_pressure_hectopascals",
			"Uncorrected pressure in hectopascal",
			nil,
			labels,
		),
		AirTemperatureC: prometheus.NewDesc(
			"isa_air_temperature_celsius",
			"Model temperature at the given altitude in Celsius",
			altitudeLabel,
			labels,
		),
		AirPressureHpa: prometheus.NewDesc(
			"isa_air_pressure_hectopascals",
			"Model pressure at the given altitude in hectopascal",
			altitudeLabel,
			labels,
		),
		AirDensity: prometheus.NewDesc(
			"isa_air_density_kg_per_cubic_meter",
			"Model air density at the given altitude in kilogram / cubic meter",
			altitudeLabel,
			labels,
		),
	}
}

func (collector *Collector) Collect(ch chan<- prometheus.Metric) {
	raw, err := collector.Sensor.Poll()
	if err != nil {
		logrus.Print(err)
		ch <- prometheus.MustNewConstMetric(collector.Up, prometheus.GaugeValue, 0.0)
	} else {
		ch <- prometheus.MustNewConstMetric(collector.Up, prometheus.GaugeValue, 1)
	}
	if raw.Temperature == nil {
		return
	}
	temperature := *raw.Temperature + collector.Flags.TempOffset
	ch <- prometheus.MustNewConstMetric(collector.TemperatureC, prometheus.GaugeValue, temperature)
	ch <- prometheus.MustNewConstMetric(collector.RawTemperatureC, prometheus.GaugeValue, *raw.Temperature)

	pressure := standardPressureHpa
	if raw.Pressure != nil {
		pressure = *raw.Pressure + collector.Flags.PressureOffset
		ch <- prometheus.MustNewConstMetric(collector.PressureHpa, prometheus.GaugeValue, pressure)
		ch <- prometheus.MustNewConstMetric(collector.RawPressureHpa, prometheus.GaugeValue, *raw.Pressure)
	}

	constants := collector.Constants()
	for _, altitude := range collector.AltitudesM {
		in := isa.InputSet{
			AltitudeM:          altitude,
			SeaLevelTempC:      temperature,
			SeaLevelPressurePa: pressure * 100.0,
		}
		result, err := isa.Evaluate(in, constants)
		if err != nil {
			logrus.Warnf("Skipping altitude %g m: %v", altitude, err)
			continue
		}
		label := strconv.FormatFloat(altitude, 'f', -1, 64)
		ch <- prometheus.MustNewConstMetric(
			collector.AirTemperatureC, prometheus.GaugeValue, round64(result.TemperatureC, 2), label,
		)
		ch <- prometheus.MustNewConstMetric(
			collector.AirPressureHpa, prometheus.GaugeValue, round64(result.PressureHpa, 2), label,
		)
		ch <- prometheus.MustNewConstMetric(
			collector.AirDensity, prometheus.GaugeValue, round64(result.DensityKgM3, 6), label,
		)
	}
}

func (collector *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.Up
	ch <- collector.TemperatureC
	ch <- collector.PressureHpa
	ch <- collector.RawTemperatureC
	ch <- collector.RawPressureHpa
	ch <- collector.AirTemperatureC
	ch <- collector.AirPressureHpa
	ch <- collector.AirDensity
}
