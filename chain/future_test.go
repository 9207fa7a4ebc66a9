// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package chain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFutureComplete(t *testing.T) {
	var (
		assert = assert.New(t)
		f      = NewFuture()
		cause  = errors.New("expected")
		order  []int
	)

	f.OnComplete(func(err error) {
		assert.Equal(cause, err)
		order = append(order, 1)
	})

	f.OnComplete(nil)
	f.OnComplete(func(err error) {
		assert.Equal(cause, err)
		order = append(order, 2)
	})

	assert.Empty(order)
	assert.NoError(f.Err())

	assert.True(f.Complete(cause))
	assert.False(f.Complete(nil))
	assert.Equal([]int{1, 2}, order)
	assert.Equal(cause, f.Err())

	// registration after completion runs immediately
	f.OnComplete(func(err error) {
		assert.Equal(cause, err)
		order = append(order, 3)
	})

	assert.Equal([]int{1, 2, 3}, order)

	select {
	case <-f.Done():
	default:
		assert.Fail("the future should be done")
	}
}

func testFutureCompleted(t *testing.T) {
	var (
		assert = assert.New(t)
		called bool
	)

	f := Completed(nil)
	f.OnComplete(func(err error) {
		assert.NoError(err)
		called = true
	})

	assert.True(called)
	assert.NoError(f.Wait(context.Background()))
}

func testFutureGo(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		cause   = errors.New("expected")
		release = make(chan struct{})
	)

	f := Go(func() error {
		<-release
		return cause
	})

	require.NotNil(f)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(f.Wait(ctx), context.DeadlineExceeded)

	close(release)
	assert.Equal(cause, f.Wait(context.Background()))
}

func testSignalFunc(t *testing.T) {
	var (
		assert = assert.New(t)
		result = errors.New("expected")
		got    error
	)

	sf := SignalFunc(func(fn func(error)) { fn(result) })
	sf.OnComplete(func(err error) { got = err })
	assert.Equal(result, got)
}

func TestFuture(t *testing.T) {
	t.Run("Complete", testFutureComplete)
	t.Run("Completed", testFutureCompleted)
	t.Run("Go", testFutureGo)
}

func TestSignalFunc(t *testing.T) {
	testSignalFunc(t)
}
