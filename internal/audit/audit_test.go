// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package audit

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdrung/isa-calculator/internal/isa"
	"github.com/bdrung/isa-calculator/internal/units"
)

func TestEvent(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf)

	log.Event(isa.Event{Kind: isa.EventCacheHit, Key: "k", Msg: "used cached results for key: k"})
	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), "event=cache-hit")
	assert.Contains(t, buf.String(), "key=k")

	buf.Reset()
	err := &isa.Error{Kind: isa.RangeError, Field: "altitude", Msg: "too high"}
	log.Event(isa.Event{Kind: isa.EventRejected, Msg: "calculation error: " + err.Error(), Err: err})
	assert.Contains(t, buf.String(), "level=warning")
	assert.Contains(t, buf.String(), "kind=RangeError")
	assert.NotContains(t, buf.String(), "key=")
}

func TestEngineWritesAuditFile(t *testing.T) {
	dir := t.TempDir()
	log := Open(dir)

	engine, err := isa.NewEngine(isa.DefaultConstants(), isa.WithEventSink(log))
	require.NoError(t, err)
	req := isa.Request{
		Altitude:        "0",
		Temperature:     "15",
		Pressure:        "1013.25",
		AltitudeUnit:    units.Meters,
		TemperatureUnit: units.Celsius,
		PressureUnit:    units.Hectopascal,
		Model:           units.ExtendedISA,
	}
	_, err = engine.Calculate(req)
	require.NoError(t, err)
	engine.Reset()
	log.Printf("Results exported to %s", "results.txt")
	require.NoError(t, log.Close())

	content, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(content), "calculation successful for key: 0.00000_15.00000_101325.00000")
	assert.Contains(t, string(content), "inputs cleared")
	assert.Contains(t, string(content), "Results exported to results.txt")
}
