// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

// Package settings persists the physical constants and the preferred units.
package settings

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/bdrung/isa-calculator/internal/isa"
	"github.com/bdrung/isa-calculator/internal/units"
)

// FileName is the name of the settings file inside the configuration directory.
const FileName = "isa_settings.json"

// EnvPrefix prefixes environment variables overriding stored settings,
// e.g. ISA_GRAVITY or ISA_GASCONSTANTR.
const EnvPrefix = "ISA"

const (
	keyGravity         = "Gravity"
	keyGasConstantR    = "GasConstantR"
	keyAltitudeUnit    = "AltitudeUnitIndex"
	keyTemperatureUnit = "TemperatureUnitIndex"
	keyPressureUnit    = "PressureUnitIndex"
	keyModel           = "ModelIndex"
)

// Settings defines the persisted settings. Only Gravity and GasConstantR
// influence calculations, the indices select the preferred units. Keys are
// read case-insensitively and written in PascalCase.
type Settings struct {
	Gravity              float64 `mapstructure:"Gravity" json:"Gravity"`
	GasConstantR         float64 `mapstructure:"GasConstantR" json:"GasConstantR"`
	AltitudeUnitIndex    int     `mapstructure:"AltitudeUnitIndex" json:"AltitudeUnitIndex"`
	TemperatureUnitIndex int     `mapstructure:"TemperatureUnitIndex" json:"TemperatureUnitIndex"`
	PressureUnitIndex    int     `mapstructure:"PressureUnitIndex" json:"PressureUnitIndex"`
	ModelIndex           int     `mapstructure:"ModelIndex" json:"ModelIndex"`
}

func Default() Settings {
	return Settings{
		Gravity:              isa.DefaultGravity,
		GasConstantR:         isa.DefaultGasConstantR,
		AltitudeUnitIndex:    int(units.Meters),
		TemperatureUnitIndex: int(units.Celsius),
		PressureUnitIndex:    int(units.Hectopascal),
		ModelIndex:           int(units.ExtendedISA),
	}
}

func (s Settings) Constants() isa.PhysicalConstants {
	return isa.PhysicalConstants{Gravity: s.Gravity, GasConstantR: s.GasConstantR}
}

func (s Settings) AltitudeUnit() units.AltitudeUnit {
	return units.AltitudeUnit(s.AltitudeUnitIndex)
}

func (s Settings) TemperatureUnit() units.TemperatureUnit {
	return units.TemperatureUnit(s.TemperatureUnitIndex)
}

func (s Settings) PressureUnit() units.PressureUnit {
	return units.PressureUnit(s.PressureUnitIndex)
}

func (s Settings) Model() units.Model {
	return units.Model(s.ModelIndex)
}

func (s Settings) Validate() error {
	return s.Constants().Validate()
}

// Normalize replaces unknown unit and model indices with their defaults.
func (s Settings) Normalize() Settings {
	defaults := Default()
	if !s.AltitudeUnit().Valid() {
		s.AltitudeUnitIndex = defaults.AltitudeUnitIndex
	}
	if !s.TemperatureUnit().Valid() {
		s.TemperatureUnitIndex = defaults.TemperatureUnitIndex
	}
	if !s.PressureUnit().Valid() {
		s.PressureUnitIndex = defaults.PressureUnitIndex
	}
	if !s.Model().Valid() {
		s.ModelIndex = defaults.ModelIndex
	}
	return s
}

// ParseConstants parses gravity and gas constant as entered by the user.
// Both values are checked and all problems are reported together.
func ParseConstants(gravity string, gasConstant string) (isa.PhysicalConstants, error) {
	var problems []string
	g, err := strconv.ParseFloat(strings.TrimSpace(gravity), 64)
	if err != nil || (isa.PhysicalConstants{Gravity: g, GasConstantR: 1}).Validate() != nil {
		problems = append(problems, "Invalid value for Gravity. Must be a positive number.")
	}
	r, err := strconv.ParseFloat(strings.TrimSpace(gasConstant), 64)
	if err != nil || (isa.PhysicalConstants{Gravity: 1, GasConstantR: r}).Validate() != nil {
		problems = append(problems, "Invalid value for Gas Constant. Must be a positive number.")
	}
	if len(problems) > 0 {
		return isa.PhysicalConstants{}, errors.New(strings.Join(problems, "\n"))
	}
	return isa.PhysicalConstants{Gravity: g, GasConstantR: r}, nil
}

// DefaultPath returns the settings file in the user's configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate configuration directory")
	}
	return filepath.Join(dir, "isa-calculator", FileName), nil
}

// Store loads and saves Settings as JSON.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

func (s *Store) newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(s.Path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault(keyGravity, defaults.Gravity)
	v.SetDefault(keyGasConstantR, defaults.GasConstantR)
	v.SetDefault(keyAltitudeUnit, defaults.AltitudeUnitIndex)
	v.SetDefault(keyTemperatureUnit, defaults.TemperatureUnitIndex)
	v.SetDefault(keyPressureUnit, defaults.PressureUnitIndex)
	v.SetDefault(keyModel, defaults.ModelIndex)
	return v
}

// Load reads the settings file. A missing file yields the defaults. On any
// other error the defaults are returned together with the error, so the
// caller can log it and carry on.
func (s *Store) Load() (Settings, error) {
	v := s.newViper()
	if _, err := os.Stat(s.Path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Default(), errors.Wrapf(err, "failed to access settings file %s", s.Path)
		}
	} else if err := v.ReadInConfig(); err != nil {
		return Default(), errors.Wrapf(err, "failed to read settings file %s", s.Path)
	}

	var loaded Settings
	if err := v.Unmarshal(&loaded); err != nil {
		return Default(), errors.Wrapf(err, "failed to parse settings file %s", s.Path)
	}
	loaded = loaded.Normalize()
	if err := loaded.Validate(); err != nil {
		defaults := Default()
		loaded.Gravity = defaults.Gravity
		loaded.GasConstantR = defaults.GasConstantR
		return loaded, errors.Wrapf(err, "invalid constants in settings file %s", s.Path)
	}
	return loaded, nil
}

// Save writes settings to the settings file, replacing an existing one.
// viper lower-cases keys on write, so the file is encoded directly.
func (s *Store) Save(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return errors.Wrap(err, "refusing to save settings")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create settings directory")
	}

	content, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode settings")
	}
	if err := os.WriteFile(s.Path, append(content, '\n'), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write settings file %s", s.Path)
	}
	return nil
}
