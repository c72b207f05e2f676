// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package isa

import (
	"math"
	"testing"

	"github.com/bdrung/isa-calculator/internal/units"
)

var metricUnits = DisplayUnits{Altitude: units.Meters, Temperature: units.Celsius, Pressure: units.Hectopascal}

func TestCacheKeyString(t *testing.T) {
	key := NewCacheKey(
		InputSet{AltitudeM: 1000, SeaLevelTempC: -0.5, SeaLevelPressurePa: 101325},
		DefaultConstants(),
		metricUnits,
	)
	want := "1000.00000_-0.50000_101325.00000_9.80665_287.05000@Meters/°C/hPa"
	if key.String() != want {
		t.Errorf("CacheKey.String() = %s, want %s", key, want)
	}
}

func TestCacheKeyQuantization(t *testing.T) {
	a := NewCacheKey(InputSet{AltitudeM: 1000.000001}, DefaultConstants(), metricUnits)
	b := NewCacheKey(InputSet{AltitudeM: 1000.000004}, DefaultConstants(), metricUnits)
	c := NewCacheKey(InputSet{AltitudeM: 1000.00001}, DefaultConstants(), metricUnits)
	if a != b {
		t.Errorf("Keys below the quantum differ: %s != %s", a, b)
	}
	if a == c {
		t.Errorf("Keys one quantum apart are equal: %s", a)
	}

	feet := metricUnits
	feet.Altitude = units.Feet
	if NewCacheKey(InputSet{}, DefaultConstants(), metricUnits) == NewCacheKey(InputSet{}, DefaultConstants(), feet) {
		t.Errorf("Keys for different display units are equal")
	}
}

func TestCacheKeyLargeValues(t *testing.T) {
	small := NewCacheKey(InputSet{SeaLevelTempC: 15, SeaLevelPressurePa: 1e14}, DefaultConstants(), metricUnits)
	large := NewCacheKey(InputSet{SeaLevelTempC: 15, SeaLevelPressurePa: 5e14}, DefaultConstants(), metricUnits)
	if small == large {
		t.Errorf("Keys for different pressures are equal: %s", small)
	}
	want := "0.00000_15.00000_500000000000000.00000_9.80665_287.05000@Meters/°C/hPa"
	if large.String() != want {
		t.Errorf("CacheKey.String() = %s, want %s", large, want)
	}

	negativeZero := NewCacheKey(InputSet{SeaLevelTempC: math.Copysign(0, -1)}, DefaultConstants(), metricUnits)
	if negativeZero != NewCacheKey(InputSet{}, DefaultConstants(), metricUnits) {
		t.Errorf("Key for -0 differs from key for 0: %s", negativeZero)
	}
}

func TestResultCache(t *testing.T) {
	cache := NewResultCache(0)
	key := NewCacheKey(standardInput(0), DefaultConstants(), metricUnits)

	if _, ok := cache.Get(key); ok {
		t.Fatalf("Empty cache returned an entry")
	}
	cache.Put(key, "first")
	cache.Put(key, "second")
	if got, ok := cache.Get(key); !ok || got != "second" {
		t.Errorf("Get() = %q, %v, want \"second\", true", got, ok)
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
	cache.InvalidateAll()
	if _, ok := cache.Get(key); ok || cache.Len() != 0 {
		t.Errorf("InvalidateAll() left %d entries", cache.Len())
	}
}

func TestResultCacheBounded(t *testing.T) {
	cache := NewResultCache(2)
	for i := 0; i < 3; i++ {
		cache.Put(NewCacheKey(standardInput(float64(i)), DefaultConstants(), metricUnits), "text")
	}
	if cache.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cache.Len())
	}
	if _, ok := cache.Get(NewCacheKey(standardInput(0), DefaultConstants(), metricUnits)); ok {
		t.Errorf("Oldest entry was not evicted")
	}
}
