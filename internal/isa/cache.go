// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package isa

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of rendered results kept by an Engine.
const DefaultCacheSize = 4096

// keyDecimals is the number of decimal places kept of each key component.
const keyDecimals = 5

// CacheKey identifies a calculation by its inputs and constants, each
// rendered with five decimal places. The cached value is rendered text, so
// the display units are part of the key as well.
type CacheKey struct {
	AltitudeM          string
	SeaLevelTempC      string
	SeaLevelPressurePa string
	Gravity            string
	GasConstantR       string
	Units              DisplayUnits
}

// quantize renders value with keyDecimals decimals. The decimal form has no
// range limit, so distinct large inputs never share a key.
func quantize(value float64) string {
	text := strconv.FormatFloat(value, 'f', keyDecimals, 64)
	if text == "-0.00000" {
		return "0.00000"
	}
	return text
}

func NewCacheKey(in InputSet, c PhysicalConstants, du DisplayUnits) CacheKey {
	return CacheKey{
		AltitudeM:          quantize(in.AltitudeM),
		SeaLevelTempC:      quantize(in.SeaLevelTempC),
		SeaLevelPressurePa: quantize(in.SeaLevelPressurePa),
		Gravity:            quantize(c.Gravity),
		GasConstantR:       quantize(c.GasConstantR),
		Units:              du,
	}
}

// String renders the key as altitude_temperature_pressure_gravity_gasconstant
// followed by the display units, e.g. "1000.00000_15.00000_101325.00000_9.80665_287.05000@Meters/°C/hPa".
func (k CacheKey) String() string {
	return strings.Join([]string{k.AltitudeM, k.SeaLevelTempC, k.SeaLevelPressurePa, k.Gravity, k.GasConstantR}, "_") +
		"@" + k.Units.Altitude.String() + "/" + k.Units.Temperature.String() + "/" + k.Units.Pressure.String()
}

// ResultCache maps calculation keys to rendered results. It is not safe for
// concurrent use; the Engine serialises access to it.
type ResultCache struct {
	entries *lru.Cache[CacheKey, string]
}

// NewResultCache creates a cache bounded to size entries. A size of zero or
// less selects DefaultCacheSize.
func NewResultCache(size int) *ResultCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[CacheKey, string](size)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &ResultCache{entries: entries}
}

func (c *ResultCache) Get(key CacheKey) (string, bool) {
	return c.entries.Get(key)
}

// Put stores text for key, replacing an existing entry.
func (c *ResultCache) Put(key CacheKey, text string) {
	c.entries.Add(key, text)
}

func (c *ResultCache) InvalidateAll() {
	c.entries.Purge()
}

func (c *ResultCache) Len() int {
	return c.entries.Len()
}
