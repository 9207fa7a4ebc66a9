// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xerrors

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"time"
)

// ErrInvalidArgument is the root cause of every argument validation failure in this module.
// Use errors.Is to test for it.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError describes a single rejected argument.
type ArgumentError struct {
	// Name is the name of the argument, e.g. "wait" or "predicate"
	Name string

	// Value is the rejected value
	Value interface{}

	// Reason describes the constraint that was violated
	Reason string
}

func (ae *ArgumentError) Error() string {
	if ae.Value == nil {
		return fmt.Sprintf("%s: %s %s", ErrInvalidArgument, ae.Name, ae.Reason)
	}

	return fmt.Sprintf("%s: %s %s [%v]", ErrInvalidArgument, ae.Name, ae.Reason, ae.Value)
}

func (ae *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// NonNegative returns an *ArgumentError if d is negative.
func NonNegative(name string, d time.Duration) error {
	if d < 0 {
		return &ArgumentError{Name: name, Value: d, Reason: "must not be negative"}
	}

	return nil
}

// Finite returns an *ArgumentError if v is NaN or infinite.
func Finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ArgumentError{Name: name, Value: v, Reason: "must be a finite number"}
	}

	return nil
}

// NonNegativeFloat returns an *ArgumentError if v is negative, NaN, or infinite.
func NonNegativeFloat(name string, v float64) error {
	if err := Finite(name, v); err != nil {
		return err
	}

	if v < 0 {
		return &ArgumentError{Name: name, Value: v, Reason: "must not be negative"}
	}

	return nil
}

// NotNil returns an *ArgumentError if v is nil, including typed nils such as a nil
// function or a nil pointer stored in an interface.
func NotNil(name string, v interface{}) error {
	if isNil(v) {
		return &ArgumentError{Name: name, Reason: "is required"}
	}

	return nil
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

// First returns the first non-nil error, which lets validation read as a single expression.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}
