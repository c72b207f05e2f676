// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package isa

import "github.com/prometheus/client_golang/prometheus"

// rejectionKinds are exported as label values even before the first rejection.
var rejectionKinds = []Kind{
	MissingInput, UnselectedUnit, ParseError, RangeError, ModelRangeError, ComputationError, ConstantsError,
}

// Collector exposes the engine counters as Prometheus metrics.
type Collector struct {
	Engine        *Engine
	CacheHits     *prometheus.Desc
	CacheMisses   *prometheus.Desc
	CacheEntries  *prometheus.Desc
	Invalidations *prometheus.Desc
	Evaluations   *prometheus.Desc
	Rejections    *prometheus.Desc
	Gravity       *prometheus.Desc
	GasConstant   *prometheus.Desc
}

func NewCollector(e *Engine) *Collector {
	return &Collector{
		Engine: e,
		CacheHits: prometheus.NewDesc(
			"isa_cache_hits_total",
			"Number of calculations served from the result cache",
			nil,
			nil,
		),
		CacheMisses: prometheus.NewDesc(
			"isa_cache_misses_total",
			"Number of calculations not found in the result cache",
			nil,
			nil,
		),
		CacheEntries: prometheus.NewDesc(
			"isa_cache_entries",
			"Number of rendered results currently cached",
			nil,
			nil,
		),
		Invalidations: prometheus.NewDesc(
			"isa_cache_invalidations_total",
			"Number of times the result cache was cleared",
			nil,
			nil,
		),
		Evaluations: prometheus.NewDesc(
			"isa_evaluations_total",
			"Number of successful model evaluations",
			nil,
			nil,
		),
		Rejections: prometheus.NewDesc(
			"isa_rejections_total",
			"Number of rejected calculations by error kind",
			[]string{"kind"},
			nil,
		),
		Gravity: prometheus.NewDesc(
			"isa_gravity_meters_per_second_squared",
			"Gravitational acceleration used by the model",
			nil,
			nil,
		),
		GasConstant: prometheus.NewDesc(
			"isa_gas_constant_joules_per_kilogram_kelvin",
			"Specific gas constant of dry air used by the model",
			nil,
			nil,
		),
	}
}

func (collector *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := collector.Engine.Stats()
	ch <- prometheus.MustNewConstMetric(collector.CacheHits, prometheus.CounterValue, float64(stats.Hits))
	ch <- prometheus.MustNewConstMetric(collector.CacheMisses, prometheus.CounterValue, float64(stats.Misses))
	ch <- prometheus.MustNewConstMetric(collector.CacheEntries, prometheus.GaugeValue, float64(stats.Entries))
	ch <- prometheus.MustNewConstMetric(
		collector.Invalidations,
		prometheus.CounterValue,
		float64(stats.Invalidations),
	)
	ch <- prometheus.MustNewConstMetric(collector.Evaluations, prometheus.CounterValue, float64(stats.Evaluations))
	for _, kind := range rejectionKinds {
		ch <- prometheus.MustNewConstMetric(
			collector.Rejections,
			prometheus.CounterValue,
			float64(stats.Rejections[kind]),
			kind.String(),
		)
	}
	ch <- prometheus.MustNewConstMetric(collector.Gravity, prometheus.GaugeValue, stats.Constants.Gravity)
	ch <- prometheus.MustNewConstMetric(
		collector.GasConstant,
		prometheus.GaugeValue,
		stats.Constants.GasConstantR,
	)
}

func (collector *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.CacheHits
	ch <- collector.CacheMisses
	ch <- collector.CacheEntries
	ch <- collector.Invalidations
	ch <- collector.Evaluations
	ch <- collector.Rejections
	ch <- collector.Gravity
	ch <- collector.GasConstant
}
