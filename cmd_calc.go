// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bdrung/isa-calculator/internal/export"
	"github.com/bdrung/isa-calculator/internal/isa"
	"github.com/bdrung/isa-calculator/internal/sensor"
	"github.com/bdrung/isa-calculator/internal/settings"
	"github.com/bdrung/isa-calculator/internal/units"
)

// requestFlags holds a calculation request as given on the command line.
// Empty unit selectors fall back to the stored settings.
type requestFlags struct {
	altitude        string
	temperature     string
	pressure        string
	altitudeUnit    string
	temperatureUnit string
	pressureUnit    string
	model           string
}

func (f *requestFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.altitude, "altitude", "", "Altitude")
	flags.StringVar(&f.temperature, "temperature", "", "Sea-level temperature")
	flags.StringVar(&f.pressure, "pressure", "", "Sea-level pressure")
	flags.StringVar(&f.altitudeUnit, "altitude-unit", "", "Altitude unit: Feet or Meters (default: stored setting)")
	flags.StringVar(&f.temperatureUnit, "temperature-unit", "", "Temperature unit: °C or °F (default: stored setting)")
	flags.StringVar(&f.pressureUnit, "pressure-unit", "", "Pressure unit: hPa or inHg (default: stored setting)")
	flags.StringVar(&f.model, "model", "", "Atmosphere model: ISA or Extended ISA (default: stored setting)")
}

func (f requestFlags) request(defaults settings.Settings) (isa.Request, error) {
	req := isa.Request{
		Altitude:        f.altitude,
		Temperature:     f.temperature,
		Pressure:        f.pressure,
		AltitudeUnit:    defaults.AltitudeUnit(),
		TemperatureUnit: defaults.TemperatureUnit(),
		PressureUnit:    defaults.PressureUnit(),
		Model:           defaults.Model(),
	}
	var err error
	if f.altitudeUnit != "" {
		if req.AltitudeUnit, err = units.ParseAltitudeUnit(f.altitudeUnit); err != nil {
			return req, err
		}
	}
	if f.temperatureUnit != "" {
		if req.TemperatureUnit, err = units.ParseTemperatureUnit(f.temperatureUnit); err != nil {
			return req, err
		}
	}
	if f.pressureUnit != "" {
		if req.PressureUnit, err = units.ParsePressureUnit(f.pressureUnit); err != nil {
			return req, err
		}
	}
	if f.model != "" {
		if req.Model, err = units.ParseModel(f.model); err != nil {
			return req, err
		}
	}
	return req, nil
}

// fillFromSensor uses the sensor readings for blank sea-level inputs.
func fillFromSensor(req *isa.Request, readings sensor.Readings) {
	if strings.TrimSpace(req.Temperature) == "" && readings.Temperature != nil {
		req.Temperature = strconv.FormatFloat(*readings.Temperature, 'f', -1, 64)
		req.TemperatureUnit = units.Celsius
	}
	if strings.TrimSpace(req.Pressure) == "" && readings.Pressure != nil {
		req.Pressure = strconv.FormatFloat(*readings.Pressure, 'f', -1, 64)
		req.PressureUnit = units.Hectopascal
	}
}

func readSensor(description string) (sensor.Readings, error) {
	flags, err := sensor.ParseFlags(description)
	if err != nil {
		return sensor.Readings{}, err
	}
	s, err := flags.NewSensor()
	if err != nil {
		return sensor.Readings{}, err
	}
	return sensor.SeaLevel(s, flags)
}

func newCalcCmd(opts *options) *cobra.Command {
	var (
		reqFlags   requestFlags
		sensorDesc string
		exportPath string
		repeat     int
	)
	calcCmd := &cobra.Command{
		Use:   "calc",
		Short: "calculate the atmospheric state at one altitude",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			req, err := reqFlags.request(a.settings)
			if err != nil {
				return err
			}
			if sensorDesc != "" {
				readings, err := readSensor(sensorDesc)
				if err != nil {
					return err
				}
				fillFromSensor(&req, readings)
			}
			return runCalc(cmd.OutOrStdout(), a, req, repeat, exportPath)
		},
	}
	flags := calcCmd.Flags()
	reqFlags.register(flags)
	flags.StringVar(&sensorDesc, "sensor", "",
		"Read blank sea-level values from a sensor, e.g. BME280,bus=1,address=0x76,pressure_offset=12.5")
	flags.StringVar(&exportPath, "export", "", "Export the report to a .txt or .csv file")
	flags.IntVar(&repeat, "repeat", 1, "Number of times to run the calculation")
	return calcCmd
}

func runCalc(w io.Writer, a *app, req isa.Request, repeat int, exportPath string) error {
	if repeat < 1 {
		repeat = 1
	}
	var resp isa.Response
	for i := 0; i < repeat; i++ {
		var err error
		resp, err = a.engine.Calculate(req)
		if err != nil {
			return err
		}
		if resp.Warning != nil {
			logrus.Warn(resp.Warning.String())
		}
		if resp.Cached {
			logrus.Info("calculation successful (from cache)")
		} else {
			logrus.Info("calculation successful")
		}
	}
	fmt.Fprint(w, resp.Text+"\n")

	if exportPath == "" {
		return nil
	}
	summary, err := export.Write(exportPath, a.engine.Last())
	if err != nil {
		a.audit.Printf("export failed: %v", err)
		return err
	}
	a.audit.Printf("%s", summary)
	logrus.Info(summary)
	return nil
}
