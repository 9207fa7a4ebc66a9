// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package poll

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTimeout is matched by the error passed to the failure callback when the predicate
	// did not succeed before the deadline.
	ErrTimeout = errors.New("poll timed out")

	// ErrCanceled is matched by the error passed to the failure callback when the poll's
	// context was canceled before the predicate succeeded.
	ErrCanceled = errors.New("poll canceled")

	// ErrPredicatePanic is matched by the error passed to the failure callback when the
	// predicate panicked.
	ErrPredicatePanic = errors.New("poll predicate panicked")
)

// TimeoutError is the failure reported when the predicate never held before the deadline.
type TimeoutError struct {
	// Timeout is the configured timeout
	Timeout time.Duration

	// Elapsed is the time between the start of the poll and the final check
	Elapsed time.Duration

	// Attempts is the number of times the predicate was evaluated
	Attempts int
}

func (te *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s (timeout %s, %d attempts)", te.Elapsed, te.Timeout, te.Attempts)
}

func (te *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// PanicError is the failure reported when the predicate panicked.
type PanicError struct {
	// Value is the value recovered from the panic
	Value interface{}

	// Attempts is the number of times the predicate was evaluated, including the one that panicked
	Attempts int
}

func (pe *PanicError) Error() string {
	return fmt.Sprintf("predicate panicked on attempt %d: %v", pe.Attempts, pe.Value)
}

func (pe *PanicError) Is(target error) bool {
	return target == ErrPredicatePanic
}

// Unwrap exposes the panic value when it was itself an error
func (pe *PanicError) Unwrap() error {
	if err, ok := pe.Value.(error); ok {
		return err
	}

	return nil
}

// canceledError joins ErrCanceled with the context's error, so that both errors.Is(err, ErrCanceled)
// and errors.Is(err, context.Canceled) hold.
type canceledError struct {
	cause error
}

func (ce canceledError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCanceled, ce.cause)
}

func (ce canceledError) Is(target error) bool {
	return target == ErrCanceled
}

func (ce canceledError) Unwrap() error {
	return ce.cause
}
