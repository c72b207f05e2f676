// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bdrung/isa-calculator/internal/settings"
	"github.com/bdrung/isa-calculator/internal/units"
)

// settingsFlags holds the values given to "settings set". Empty values keep
// the stored setting.
type settingsFlags struct {
	gravity         string
	gasConstant     string
	altitudeUnit    string
	temperatureUnit string
	pressureUnit    string
	model           string
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

func (f settingsFlags) apply(current settings.Settings) (settings.Settings, error) {
	updated := current
	if f.gravity != "" || f.gasConstant != "" {
		gravity, gasConstant := f.gravity, f.gasConstant
		if gravity == "" {
			gravity = formatFloat(current.Gravity)
		}
		if gasConstant == "" {
			gasConstant = formatFloat(current.GasConstantR)
		}
		constants, err := settings.ParseConstants(gravity, gasConstant)
		if err != nil {
			return current, err
		}
		updated.Gravity = constants.Gravity
		updated.GasConstantR = constants.GasConstantR
	}
	if f.altitudeUnit != "" {
		unit, err := units.ParseAltitudeUnit(f.altitudeUnit)
		if err != nil {
			return current, err
		}
		updated.AltitudeUnitIndex = int(unit)
	}
	if f.temperatureUnit != "" {
		unit, err := units.ParseTemperatureUnit(f.temperatureUnit)
		if err != nil {
			return current, err
		}
		updated.TemperatureUnitIndex = int(unit)
	}
	if f.pressureUnit != "" {
		unit, err := units.ParsePressureUnit(f.pressureUnit)
		if err != nil {
			return current, err
		}
		updated.PressureUnitIndex = int(unit)
	}
	if f.model != "" {
		model, err := units.ParseModel(f.model)
		if err != nil {
			return current, err
		}
		updated.ModelIndex = int(model)
	}
	return updated, nil
}

func printSettings(w io.Writer, path string, s settings.Settings) {
	fmt.Fprintf(w, "Settings file: %s\n", path)
	fmt.Fprintf(w, "Gravity: %s m/s²\n", formatFloat(s.Gravity))
	fmt.Fprintf(w, "Gas constant: %s J/(kg·K)\n", formatFloat(s.GasConstantR))
	fmt.Fprintf(w, "Altitude unit: %s\n", s.AltitudeUnit())
	fmt.Fprintf(w, "Temperature unit: %s\n", s.TemperatureUnit())
	fmt.Fprintf(w, "Pressure unit: %s\n", s.PressureUnit())
	fmt.Fprintf(w, "Model: %s\n", s.Model())
}

// saveSettings persists updated and then hands the new constants to the
// engine. If the file cannot be written, the engine keeps its constants.
func saveSettings(a *app, updated settings.Settings) error {
	if err := a.store.Save(updated); err != nil {
		a.audit.Printf("failed to save settings: %v", err)
		return err
	}
	if _, err := a.engine.SetConstants(updated.Constants()); err != nil {
		return err
	}
	a.settings = updated
	a.audit.Printf("settings saved to %s", a.store.Path)
	logrus.Infof("Settings saved to %s", a.store.Path)
	return nil
}

func newSettingsCmd(opts *options) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "show or change the physical constants and preferred units",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "show the stored settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()
			printSettings(cmd.OutOrStdout(), a.store.Path, a.settings)
			return nil
		},
	}

	var f settingsFlags
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "change and store settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			updated, err := f.apply(a.settings)
			if err != nil {
				return err
			}
			if err := saveSettings(a, updated); err != nil {
				return err
			}
			printSettings(cmd.OutOrStdout(), a.store.Path, a.settings)
			return nil
		},
	}
	flags := setCmd.Flags()
	flags.StringVar(&f.gravity, "gravity", "", "Gravitational acceleration in m/s²")
	flags.StringVar(&f.gasConstant, "gas-constant", "", "Specific gas constant of dry air in J/(kg·K)")
	flags.StringVar(&f.altitudeUnit, "altitude-unit", "", "Preferred altitude unit: Feet or Meters")
	flags.StringVar(&f.temperatureUnit, "temperature-unit", "", "Preferred temperature unit: °C or °F")
	flags.StringVar(&f.pressureUnit, "pressure-unit", "", "Preferred pressure unit: hPa or inHg")
	flags.StringVar(&f.model, "model", "", "Preferred model: ISA or Extended ISA")

	settingsCmd.AddCommand(showCmd, setCmd)
	return settingsCmd
}
