// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

// Package isa computes temperature, pressure, density and humidity at an
// altitude from sea-level conditions with an extended International Standard
// Atmosphere reaching up to 84852 m.
package isa

import (
	"fmt"
	"sync"
)

// Response is the outcome of a successful calculation.
type Response struct {
	Text    string
	Warning *Warning
	Cached  bool
	Key     CacheKey
	// Result is nil when the text was served from the cache.
	Result *CalculationResult
}

// Stats are counters of the engine since its creation.
type Stats struct {
	Hits          uint64
	Misses        uint64
	Evaluations   uint64
	Invalidations uint64
	Rejections    map[Kind]uint64
	Entries       int
	Constants     PhysicalConstants
}

// Engine validates requests, evaluates the model and caches rendered
// results. It is safe for concurrent use: each request runs as one critical
// section so a cache is never populated under stale constants. Events are
// delivered to the sink outside that section, in per-call order.
type Engine struct {
	mutex     sync.Mutex
	constants PhysicalConstants
	cache     *ResultCache
	sink      EventSink
	last      string
	pending   []Event

	hits          uint64
	misses        uint64
	evaluations   uint64
	invalidations uint64
	rejections    map[Kind]uint64
}

type Option func(*engineOptions)

type engineOptions struct {
	cacheSize int
	sink      EventSink
}

// WithCacheSize bounds the result cache. Zero or less selects DefaultCacheSize.
func WithCacheSize(size int) Option {
	return func(o *engineOptions) {
		o.cacheSize = size
	}
}

func WithEventSink(sink EventSink) Option {
	return func(o *engineOptions) {
		o.sink = sink
	}
}

func NewEngine(constants PhysicalConstants, opts ...Option) (*Engine, error) {
	if err := constants.Validate(); err != nil {
		return nil, err
	}
	options := engineOptions{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&options)
	}
	if options.sink == nil {
		options.sink = discardSink{}
	}
	return &Engine{
		constants:  constants,
		cache:      NewResultCache(options.cacheSize),
		sink:       options.sink,
		rejections: make(map[Kind]uint64),
	}, nil
}

// Calculate validates req, looks the result up in the cache and evaluates
// the model on a miss. Hard errors leave the cache untouched.
func (e *Engine) Calculate(req Request) (Response, error) {
	e.mutex.Lock()
	defer e.unlock()

	in, warning, err := Validate(req)
	if err != nil {
		return Response{}, e.reject("", err)
	}

	key := NewCacheKey(in, e.constants, req.DisplayUnits())
	if text, ok := e.cache.Get(key); ok {
		e.hits++
		e.last = text
		e.record(Event{Kind: EventCacheHit, Key: key.String(), Msg: "used cached results for key: " + key.String()})
		return Response{Text: text, Warning: warning, Cached: true, Key: key}, nil
	}
	e.misses++
	e.record(Event{Kind: EventCacheMiss, Key: key.String(), Msg: "no cached results for key: " + key.String()})

	result, err := Evaluate(in, e.constants)
	if err != nil {
		return Response{}, e.reject(key.String(), err)
	}
	text, err := Format(result, in, req.DisplayUnits())
	if err != nil {
		return Response{}, e.reject(key.String(), err)
	}

	e.cache.Put(key, text)
	e.evaluations++
	e.last = text
	e.record(Event{Kind: EventEvaluated, Key: key.String(), Msg: "calculation successful for key: " + key.String()})
	return Response{Text: text, Warning: warning, Key: key, Result: &result}, nil
}

// record queues an event. Queued events reach the sink in unlock, after
// the engine has been released, so a slow sink never blocks other requests.
func (e *Engine) record(event Event) {
	e.pending = append(e.pending, event)
}

// unlock releases the mutex and then delivers the queued events.
func (e *Engine) unlock() {
	events := e.pending
	e.pending = nil
	e.mutex.Unlock()
	for _, event := range events {
		e.sink.Event(event)
	}
}

func (e *Engine) reject(key string, err error) error {
	e.rejections[KindOf(err)]++
	e.record(Event{Kind: EventRejected, Key: key, Msg: "calculation error: " + err.Error(), Err: err})
	return err
}

func (e *Engine) Constants() PhysicalConstants {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.constants
}

// SetConstants replaces the physical constants. If gravity or the gas
// constant changed, the cache is cleared before the engine accepts the next
// request. It reports whether the constants changed.
func (e *Engine) SetConstants(c PhysicalConstants) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}

	e.mutex.Lock()
	defer e.unlock()

	changed := e.constants.differs(c)
	e.constants = c
	e.record(Event{
		Kind: EventConstants,
		Msg:  fmt.Sprintf("settings updated: g=%g, R=%g", c.Gravity, c.GasConstantR),
	})
	if changed {
		e.invalidate("calculation cache cleared due to settings change")
	}
	return changed, nil
}

// Reset clears all cached results and the last rendered text.
func (e *Engine) Reset() {
	e.mutex.Lock()
	defer e.unlock()
	e.last = ""
	e.invalidate("inputs cleared")
}

func (e *Engine) invalidate(reason string) {
	e.cache.InvalidateAll()
	e.invalidations++
	e.record(Event{Kind: EventInvalidated, Msg: reason})
}

// Last returns the most recently rendered text, or "" if there is none.
func (e *Engine) Last() string {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.last
}

func (e *Engine) Stats() Stats {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	rejections := make(map[Kind]uint64, len(e.rejections))
	for kind, n := range e.rejections {
		rejections[kind] = n
	}
	return Stats{
		Hits:          e.hits,
		Misses:        e.misses,
		Evaluations:   e.evaluations,
		Invalidations: e.invalidations,
		Rejections:    rejections,
		Entries:       e.cache.Len(),
		Constants:     e.constants,
	}
}
