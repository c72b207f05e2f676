// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package isa

import (
	"errors"
	"fmt"
)

// Kind classifies why a calculation was rejected.
type Kind int

const (
	MissingInput Kind = iota + 1
	UnselectedUnit
	ParseError
	RangeError
	ModelRangeError
	ComputationError
	ConstantsError
)

func (k Kind) String() string {
	switch k {
	case MissingInput:
		return "MissingInput"
	case UnselectedUnit:
		return "UnselectedUnit"
	case ParseError:
		return "ParseError"
	case RangeError:
		return "RangeError"
	case ModelRangeError:
		return "ModelRangeError"
	case ComputationError:
		return "ComputationError"
	case ConstantsError:
		return "ConstantsError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a rejection of a calculation request. Field names the offending
// input if there is one.
type Error struct {
	Kind  Kind
	Field string
	Msg   string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Field, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newError(kind Kind, field string, format string, args ...any) *Error {
	return &Error{Kind: kind, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Warning is a non-fatal remark about an implausible but accepted input.
type Warning struct {
	Field string
	Msg   string
}

func (w Warning) String() string {
	return w.Msg
}
