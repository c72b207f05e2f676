// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

// Package sensor reads sea-level temperature and pressure from I2C sensors.
package sensor

import (
	"fmt"
	"math"
	"sync"

	bsbmp "github.com/d2r2/go-bsbmp"
	i2c "github.com/d2r2/go-i2c"
	sht3x "github.com/d2r2/go-sht3x"
	"github.com/prometheus/client_golang/prometheus"
)

// Readings holds the values a sensor could provide. Temperature is in
// Celsius, pressure in hectopascal.
type Readings struct {
	Temperature *float64
	Pressure    *float64
}

type Sensor interface {
	Poll() (Readings, error)
	Labels() prometheus.Labels
}

// device is an I2C chip shared by all sensor types. The bus is not safe for
// concurrent transfers, so every read holds mutex.
type device struct {
	model   string
	address uint8
	bus     int
	conn    *i2c.I2C
	mutex   sync.Mutex
}

func openDevice(model string, address uint8, bus int) (*device, error) {
	lg.Infof("Opening %s on I2C bus %d at 0x%x", model, bus, address)
	conn, err := i2c.NewI2C(address, bus)
	if err != nil {
		return nil, fmt.Errorf("%s on bus %d at 0x%x: %w", model, bus, address, err)
	}
	return &device{model: model, address: address, bus: bus, conn: conn}, nil
}

func (d *device) Labels() prometheus.Labels {
	return prometheus.Labels{
		"address": fmt.Sprintf("0x%x", d.address),
		"bus":     fmt.Sprintf("%d", d.bus),
		"model":   d.model,
	}
}

// bmpSensor covers the Bosch BMP180/BMP280/BMP388/BME280 family, which all
// report temperature and pressure.
type bmpSensor struct {
	*device
	bmp *bsbmp.BMP
}

func newBMPSensor(d *device, sensorType bsbmp.SensorType) (*bmpSensor, error) {
	bmp, err := bsbmp.NewBMP(sensorType, d.conn)
	if err != nil {
		return nil, err
	}
	return &bmpSensor{device: d, bmp: bmp}, nil
}

func (s *bmpSensor) Poll() (Readings, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	temperature, err := s.bmp.ReadTemperatureC(bsbmp.ACCURACY_STANDARD)
	if err != nil {
		return Readings{}, err
	}
	pressurePa, err := s.bmp.ReadPressurePa(bsbmp.ACCURACY_STANDARD)
	if err != nil {
		return Readings{}, err
	}
	celsius := round64(float64(temperature), 2)
	hectopascal := round64(float64(pressurePa)/100.0, 2)
	lg.Debugf("%s: %.2f °C, %.2f hPa", s.model, celsius, hectopascal)
	return Readings{Temperature: &celsius, Pressure: &hectopascal}, nil
}

// sht3xSensor only measures temperature. Its humidity reading is discarded
// because the model assumes a fixed relative humidity.
type sht3xSensor struct {
	*device
	sht           *sht3x.SHT3X
	repeatability sht3x.MeasureRepeatability
}

func (s *sht3xSensor) Poll() (Readings, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	temperature, _, err := s.sht.ReadTemperatureAndRelativeHumidity(s.conn, s.repeatability)
	if err != nil {
		return Readings{}, err
	}
	celsius := round64(float64(temperature), 2)
	lg.Debugf("%s: %.2f °C", s.model, celsius)
	return Readings{Temperature: &celsius}, nil
}

// SeaLevel polls s and applies the offsets of f.
func SeaLevel(s Sensor, f Flags) (Readings, error) {
	readings, err := s.Poll()
	if err != nil {
		return readings, err
	}
	return f.correct(readings), nil
}

func round64(value float64, precision int) float64 {
	return math.Round(value*math.Pow10(precision)) / math.Pow10(precision)
}
