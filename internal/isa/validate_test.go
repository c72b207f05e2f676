// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package isa

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdrung/isa-calculator/internal/units"
)

func metricRequest(altitude, temperature, pressure string) Request {
	return Request{
		Altitude:        altitude,
		Temperature:     temperature,
		Pressure:        pressure,
		AltitudeUnit:    units.Meters,
		TemperatureUnit: units.Celsius,
		PressureUnit:    units.Hectopascal,
		Model:           units.ExtendedISA,
	}
}

func TestValidate(t *testing.T) {
	in, warning, err := Validate(metricRequest("1000", "15", "1013.25"))
	if err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if warning != nil {
		t.Errorf("Validate() unexpected warning: %v", warning)
	}
	want := InputSet{AltitudeM: 1000, SeaLevelTempC: 15, SeaLevelPressurePa: 101325}
	if in != want {
		t.Errorf("Validate() = %+v, want %+v", in, want)
	}
}

func TestValidateImperial(t *testing.T) {
	req := Request{
		Altitude:        " 10000 ",
		Temperature:     "59",
		Pressure:        "29.92",
		AltitudeUnit:    units.Feet,
		TemperatureUnit: units.Fahrenheit,
		PressureUnit:    units.InHg,
		Model:           units.ISA,
	}
	in, warning, err := Validate(req)
	if err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if warning != nil {
		t.Errorf("Validate() unexpected warning: %v", warning)
	}
	if math.Abs(in.AltitudeM-3048.0) > 1e-9 {
		t.Errorf("Altitude was incorrect, got: %f, want: 3048.", in.AltitudeM)
	}
	if math.Abs(in.SeaLevelTempC-15.0) > 1e-9 {
		t.Errorf("Temperature was incorrect, got: %f, want: 15.", in.SeaLevelTempC)
	}
	if math.Abs(in.SeaLevelPressurePa-101320.7888) > 1e-6 {
		t.Errorf("Pressure was incorrect, got: %f, want: 101320.7888.", in.SeaLevelPressurePa)
	}
}

func TestValidateThousandsSeparator(t *testing.T) {
	in, warning, err := Validate(metricRequest("1,000", "-1,000e-3", "1,013.25"))
	require.NoError(t, err)
	assert.Nil(t, warning)
	assert.Equal(t, 1000.0, in.AltitudeM)
	assert.Equal(t, -1.0, in.SeaLevelTempC)
	assert.InDelta(t, 101325.0, in.SeaLevelPressurePa, 1e-9)

	in, _, err = Validate(metricRequest("+12,500.5", "15", "1013.25"))
	require.NoError(t, err)
	assert.Equal(t, 12500.5, in.AltitudeM)
}

func TestValidateFailure(t *testing.T) {
	unselected := metricRequest("0", "15", "1013.25")
	unselected.TemperatureUnit = units.TemperatureUnit(units.Unset)
	noModel := metricRequest("0", "15", "1013.25")
	noModel.Model = units.Model(units.Unset)
	tooHighInFeet := metricRequest("280000", "15", "1013.25")
	tooHighInFeet.AltitudeUnit = units.Feet

	tests := []struct {
		name  string
		req   Request
		kind  Kind
		field string
	}{
		{"blank altitude", metricRequest("", "15", "1013.25"), MissingInput, ""},
		{"whitespace pressure", metricRequest("0", "15", "  "), MissingInput, ""},
		{"blank before unselected", Request{}, MissingInput, ""},
		{"unselected unit", unselected, UnselectedUnit, ""},
		{"unselected model", noModel, UnselectedUnit, ""},
		{"altitude not a number", metricRequest("high", "15", "1013.25"), ParseError, "altitude"},
		{"decimal comma", metricRequest("0", "15,5", "1013.25"), ParseError, "temperature"},
		{"misplaced separator", metricRequest("10,00", "15", "1013.25"), ParseError, "altitude"},
		{"separator in fraction", metricRequest("0", "15", "1013.250,5"), ParseError, "pressure"},
		{"pressure NaN", metricRequest("0", "15", "NaN"), ParseError, "pressure"},
		{"altitude too high", metricRequest("90000", "15", "1013.25"), RangeError, "altitude"},
		{"altitude too low", metricRequest("-5000.01", "15", "1013.25"), RangeError, "altitude"},
		{"altitude too high in feet", tooHighInFeet, RangeError, "altitude"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := Validate(test.req)
			if !IsKind(err, test.kind) {
				t.Fatalf("Validate() error = %v, want %s", err, test.kind)
			}
			if field := err.(*Error).Field; field != test.field {
				t.Errorf("Validate() error field = %q, want %q", field, test.field)
			}
		})
	}
}

func TestValidateWarnings(t *testing.T) {
	tests := []struct {
		name        string
		temperature string
		pressure    string
		want        string
	}{
		{"plausible", "15", "1013.25", ""},
		{"boundaries", "-100", "800", ""},
		{"hot", "100.5", "1013.25", "temperature"},
		{"low pressure", "15", "799.9", "pressure"},
		{"high pressure", "15", "1100.1", "pressure"},
		{"temperature wins", "-120", "500", "temperature"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, warning, err := Validate(metricRequest("0", test.temperature, test.pressure))
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			got := ""
			if warning != nil {
				got = warning.Field
			}
			if got != test.want {
				t.Errorf("Validate() warning = %q, want %q", got, test.want)
			}
		})
	}
}
