// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package isa

// EventKind names a state transition of the Engine.
type EventKind string

const (
	EventRejected    EventKind = "rejected"
	EventEvaluated   EventKind = "evaluated"
	EventCacheHit    EventKind = "cache-hit"
	EventCacheMiss   EventKind = "cache-miss"
	EventInvalidated EventKind = "invalidated"
	EventConstants   EventKind = "constants"
)

// Event is handed to the EventSink for every state transition.
type Event struct {
	Kind EventKind
	Key  string
	Msg  string
	Err  error
}

// EventSink receives engine events, typically for an audit log. Event is
// called after the engine lock is released and may block; the engine does
// not care whether delivery succeeds.
type EventSink interface {
	Event(Event)
}

// EventSinkFunc adapts a function to an EventSink.
type EventSinkFunc func(Event)

func (f EventSinkFunc) Event(e Event) {
	f(e)
}

type discardSink struct{}

func (discardSink) Event(Event) {}
