// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package sensor

import (
	"fmt"
	"strconv"
	"strings"

	bsbmp "github.com/d2r2/go-bsbmp"
	sht3x "github.com/d2r2/go-sht3x"
)

// Flags describes a sensor given on the command line as
// "MODEL,key=value,...". Offsets are added to every reading to calibrate
// the sensor to sea-level conditions.
type Flags struct {
	Model          string
	Address        *uint8
	Bus            *int
	Repeatability  string
	TempOffset     float64
	PressureOffset float64
}

// chip describes how to open one supported sensor model.
type chip struct {
	defaultAddress uint8
	// validate rejects flags before the bus is opened. It may be nil.
	validate func(f Flags) error
	open     func(d *device, f Flags) (Sensor, error)
}

func bmpChip(sensorType bsbmp.SensorType) chip {
	return chip{
		defaultAddress: 0x76,
		open: func(d *device, _ Flags) (Sensor, error) {
			return newBMPSensor(d, sensorType)
		},
	}
}

var sht3xChip = chip{
	defaultAddress: 0x45,
	validate: func(f Flags) error {
		_, err := f.repeatability()
		return err
	},
	open: func(d *device, f Flags) (Sensor, error) {
		repeatability, err := f.repeatability()
		if err != nil {
			return nil, err
		}
		return &sht3xSensor{device: d, sht: sht3x.NewSHT3X(), repeatability: repeatability}, nil
	},
}

var chips = map[string]chip{
	"BME280": bmpChip(bsbmp.BME280),
	"BMP180": bmpChip(bsbmp.BMP180),
	"BMP280": bmpChip(bsbmp.BMP280),
	"BMP388": bmpChip(bsbmp.BMP388),
	"SHT30":  sht3xChip,
	"SHT31":  sht3xChip,
	"SHT35":  sht3xChip,
}

var repeatabilities = map[string]sht3x.MeasureRepeatability{
	"low":    sht3x.RepeatabilityLow,
	"medium": sht3x.RepeatabilityMedium,
	"high":   sht3x.RepeatabilityHigh,
}

// options maps each "key=value" sensor option to the Flags field it sets.
var options = map[string]func(f *Flags, value string) error{
	"address": func(f *Flags, value string) error {
		address, err := strconv.ParseUint(value, 0, 8)
		if err != nil {
			return fmt.Errorf("Specified address '%s' is not an unsigned integer: %s", value, err)
		}
		a := uint8(address)
		f.Address = &a
		return nil
	},
	"bus": func(f *Flags, value string) error {
		bus, err := strconv.ParseInt(value, 0, 32)
		if err != nil {
			return fmt.Errorf("Specified bus '%s' is not an integer: %s", value, err)
		}
		b := int(bus)
		f.Bus = &b
		return nil
	},
	"repeatability": func(f *Flags, value string) error {
		f.Repeatability = value
		return nil
	},
	"temp_offset": func(f *Flags, value string) (err error) {
		if f.TempOffset, err = strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("Failed to parse temperature offset '%s': %s", value, err)
		}
		return nil
	},
	"pressure_offset": func(f *Flags, value string) (err error) {
		if f.PressureOffset, err = strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("Failed to parse pressure offset '%s': %s", value, err)
		}
		return nil
	},
}

func ParseFlags(sensor string) (Flags, error) {
	model, rest, _ := strings.Cut(sensor, ",")
	flags := Flags{Model: model}
	if rest == "" {
		return flags, nil
	}
	for _, field := range strings.Split(rest, ",") {
		key, value, _ := strings.Cut(field, "=")
		set, ok := options[key]
		if !ok {
			return flags, fmt.Errorf("Unknown sensor option '%s'.", key)
		}
		if err := set(&flags, value); err != nil {
			return flags, err
		}
	}
	return flags, nil
}

// ParseAll parses one sensor description per argument.
func ParseAll(args []string) ([]Flags, error) {
	sensors := make([]Flags, 0, len(args))
	for i, arg := range args {
		sensor, err := ParseFlags(arg)
		if err != nil {
			return nil, fmt.Errorf("sensor %d '%s': %w", i+1, arg, err)
		}
		sensors = append(sensors, sensor)
	}
	return sensors, nil
}

func (f Flags) repeatability() (sht3x.MeasureRepeatability, error) {
	name := f.Repeatability
	if name == "" {
		name = "high"
	}
	repeatability, ok := repeatabilities[name]
	if !ok {
		return repeatability, fmt.Errorf("Unknown repeatability: %s", f.Repeatability)
	}
	return repeatability, nil
}

// NewSensor opens the sensor on its I2C bus. Bus 0 and the model's usual
// address are used unless given.
func (f Flags) NewSensor() (Sensor, error) {
	c, ok := chips[f.Model]
	if !ok {
		return nil, fmt.Errorf("Invalid/Unsupported sensor model '%s'!", f.Model)
	}
	if c.validate != nil {
		if err := c.validate(f); err != nil {
			return nil, err
		}
	}
	address := c.defaultAddress
	if f.Address != nil {
		address = *f.Address
	}
	bus := 0
	if f.Bus != nil {
		bus = *f.Bus
	}
	d, err := openDevice(f.Model, address, bus)
	if err != nil {
		return nil, err
	}
	return c.open(d, f)
}

// correct applies the offsets to the readings that are present.
func (f Flags) correct(readings Readings) Readings {
	if readings.Temperature != nil {
		temperature := *readings.Temperature + f.TempOffset
		readings.Temperature = &temperature
	}
	if readings.Pressure != nil {
		pressure := *readings.Pressure + f.PressureOffset
		readings.Pressure = &pressure
	}
	return readings
}

func (f Flags) String() string {
	var b strings.Builder
	b.WriteString(f.Model)
	if f.Address != nil {
		fmt.Fprintf(&b, ",address=0x%x", *f.Address)
	}
	if f.Bus != nil {
		fmt.Fprintf(&b, ",bus=%d", *f.Bus)
	}
	if f.Repeatability != "" {
		fmt.Fprintf(&b, ",repeatability=%s", f.Repeatability)
	}
	if f.TempOffset != 0 {
		fmt.Fprintf(&b, ",temp_offset=%g", f.TempOffset)
	}
	if f.PressureOffset != 0 {
		fmt.Fprintf(&b, ",pressure_offset=%g", f.PressureOffset)
	}
	return b.String()
}
