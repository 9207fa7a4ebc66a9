// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package scroll

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/pacer/clock/clocktest"
	"github.com/xmidt-org/pacer/frame"
	"github.com/xmidt-org/pacer/xerrors"
	"go.uber.org/zap/zaptest"
)

type element struct {
	offset float64
	writes []float64
}

func (e *element) ScrollOffset() float64 {
	return e.offset
}

func (e *element) SetScrollOffset(v float64) {
	e.offset = v
	e.writes = append(e.writes, v)
}

func startTest(t *testing.T, el Scroller, target float64, duration time.Duration, options ...Option) (*Animation, *clocktest.Manual) {
	m := clocktest.NewManual(time.Time{})
	a, err := ScrollTo(
		context.Background(),
		el,
		target,
		duration,
		append([]Option{WithClock(m), WithLogger(zaptest.NewLogger(t))}, options...)...,
	)

	require.NoError(t, err)
	require.NotNil(t, a)
	return a, m
}

func testScrollToInvalid(t *testing.T) {
	var (
		assert = assert.New(t)
		ctx    = context.Background()
		el     = new(element)
		nilEl  *element
	)

	for _, f := range []func() (*Animation, error){
		func() (*Animation, error) { return ScrollTo(ctx, nil, 100, time.Second) },
		func() (*Animation, error) { return ScrollTo(ctx, nilEl, 100, time.Second) },
		func() (*Animation, error) { return ScrollTo(ctx, el, math.NaN(), time.Second) },
		func() (*Animation, error) { return ScrollTo(ctx, el, math.Inf(1), time.Second) },
		func() (*Animation, error) { return ScrollTo(ctx, el, 100, -time.Second) },
		func() (*Animation, error) { return ScrollTo(ctx, el, 100, time.Second, WithGranularity(-time.Millisecond)) },
		func() (*Animation, error) { return ScrollTo(ctx, el, 100, time.Second, WithTolerance(-1)) },
	} {
		a, err := f()
		assert.Nil(a)
		assert.ErrorIs(err, xerrors.ErrInvalidArgument)
	}

	assert.Empty(el.writes)
}

func testScrollToBasic(t *testing.T) {
	var (
		assert = assert.New(t)
		el     = new(element)
		a, m   = startTest(t, el, 100, 50*time.Millisecond)
	)

	// nothing happens until the first tick
	assert.Empty(el.writes)
	m.Advance(9 * time.Millisecond)
	assert.Empty(el.writes)

	m.Advance(time.Second)
	assert.Equal([]float64{20, 40, 60, 80, 100}, el.writes)
	assert.Equal(100.0, el.offset)
	assert.Equal(5, a.Frames())
	assert.LessOrEqual(a.Frames(), 6)

	select {
	case <-a.Done():
		assert.NoError(a.Err())
	default:
		assert.Fail("the animation should have finished")
	}

	assert.Zero(m.Pending())
	assert.False(a.Stop())
}

func testScrollToConvergence(t *testing.T) {
	testData := []struct {
		start    float64
		target   float64
		duration time.Duration
	}{
		{0, 100, 50 * time.Millisecond},
		{0, 100, 0},
		{100, -40, 95 * time.Millisecond},
		{250, 0, time.Second},
		{0, 0.3, 200 * time.Millisecond},
		{17, 17, 100 * time.Millisecond},
		{-3.25, 1000.75, 333 * time.Millisecond},
	}

	for _, record := range testData {
		t.Run(fmt.Sprintf("%v->%v in %s", record.start, record.target, record.duration), func(t *testing.T) {
			var (
				assert = assert.New(t)
				el     = &element{offset: record.start}
				a, m   = startTest(t, el, record.target, record.duration)
				bound  = int(record.duration/DefaultGranularity) + 1
			)

			m.Advance(record.duration + time.Second)
			assert.Equal(record.target, el.offset)
			assert.NoError(a.Err())
			assert.LessOrEqual(a.Frames(), bound)
			assert.Zero(m.Pending())

			// every write moves toward the target
			previous := record.start
			for _, w := range el.writes {
				assert.LessOrEqual(math.Abs(record.target-w), math.Abs(record.target-previous))
				previous = w
			}
		})
	}
}

func testScrollToSystemClock(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		el      = new(element)
	)

	a, err := ScrollTo(context.Background(), el, 100, 30*time.Millisecond, WithLogger(zaptest.NewLogger(t)))
	require.NoError(err)
	require.NotNil(a)

	select {
	case <-a.Done():
	case <-time.After(5 * time.Second):
		require.Fail("the animation did not finish")
	}

	assert.NoError(a.Err())
	assert.Equal(100.0, el.offset)
	assert.Equal(3, a.Frames())
}

func testScrollToTolerance(t *testing.T) {
	var (
		assert = assert.New(t)
		el     = new(element)
		a, m   = startTest(t, el, 10, 100*time.Millisecond, WithTolerance(5))
	)

	m.Advance(time.Second)
	assert.Equal([]float64{1, 2, 3, 4, 10}, el.writes)
	assert.Equal(5, a.Frames())
	assert.NoError(a.Err())
}

func testScrollToGranularity(t *testing.T) {
	var (
		assert = assert.New(t)
		el     = new(element)
		a, m   = startTest(t, el, 100, 100*time.Millisecond, WithGranularity(50*time.Millisecond), WithTolerance(0))
	)

	m.Advance(50 * time.Millisecond)
	assert.Equal([]float64{50}, el.writes)

	m.Advance(50 * time.Millisecond)
	assert.Equal([]float64{50, 100}, el.writes)
	assert.Equal(2, a.Frames())
}

func testAnimationStop(t *testing.T) {
	var (
		assert = assert.New(t)
		el     = new(element)
		a, m   = startTest(t, el, 100, 50*time.Millisecond)
	)

	m.Advance(20 * time.Millisecond)
	assert.Equal([]float64{20, 40}, el.writes)

	assert.True(a.Stop())
	assert.False(a.Stop())
	assert.ErrorIs(a.Err(), frame.ErrStopped)
	assert.Zero(m.Pending())

	m.Advance(time.Second)
	assert.Equal([]float64{20, 40}, el.writes)
	assert.Equal(2, a.Frames())
}

func testAnimationCanceled(t *testing.T) {
	var (
		assert      = assert.New(t)
		require     = require.New(t)
		m           = clocktest.NewManual(time.Time{})
		el          = new(element)
		ctx, cancel = context.WithCancel(context.Background())
	)

	defer cancel()
	a, err := ScrollTo(ctx, el, 100, 50*time.Millisecond, WithClock(m), WithLogger(zaptest.NewLogger(t)))
	require.NoError(err)

	m.Advance(10 * time.Millisecond)
	cancel()

	select {
	case <-a.Done():
	case <-time.After(5 * time.Second):
		require.Fail("the animation was not canceled")
	}

	assert.ErrorIs(a.Err(), context.Canceled)
	m.Advance(time.Second)
	assert.Equal([]float64{20}, el.writes)
}

func testAnimationAlreadyCanceled(t *testing.T) {
	var (
		assert      = assert.New(t)
		require     = require.New(t)
		m           = clocktest.NewManual(time.Time{})
		el          = new(element)
		ctx, cancel = context.WithCancel(context.Background())
	)

	cancel()
	a, err := ScrollTo(ctx, el, 100, 50*time.Millisecond, WithClock(m))
	require.NoError(err)
	assert.ErrorIs(a.Err(), context.Canceled)
	assert.Zero(m.Pending())

	m.Advance(time.Second)
	assert.Empty(el.writes)
}

func testScrollerFuncs(t *testing.T) {
	var (
		assert = assert.New(t)
		offset = 5.0
		sf     = ScrollerFuncs{
			Get: func() float64 { return offset },
			Set: func(v float64) { offset = v },
		}
	)

	assert.Equal(5.0, sf.ScrollOffset())
	sf.SetScrollOffset(12.0)
	assert.Equal(12.0, offset)
}

func testConfigOptions(t *testing.T) {
	var (
		assert    = assert.New(t)
		tolerance = 2.5
		cfg       = config{tolerance: DefaultTolerance}
	)

	for _, o := range (Config{}).Options() {
		o(&cfg)
	}

	assert.Equal(DefaultGranularity, cfg.granularity)
	assert.Equal(DefaultTolerance, cfg.tolerance)

	for _, o := range (Config{Granularity: time.Millisecond, Tolerance: &tolerance}).Options() {
		o(&cfg)
	}

	assert.Equal(time.Millisecond, cfg.granularity)
	assert.Equal(2.5, cfg.tolerance)
}

func TestScrollTo(t *testing.T) {
	t.Run("Invalid", testScrollToInvalid)
	t.Run("Basic", testScrollToBasic)
	t.Run("Convergence", testScrollToConvergence)
	t.Run("Tolerance", testScrollToTolerance)
	t.Run("Granularity", testScrollToGranularity)
	t.Run("SystemClock", testScrollToSystemClock)
}

func TestAnimation(t *testing.T) {
	t.Run("Stop", testAnimationStop)
	t.Run("Canceled", testAnimationCanceled)
	t.Run("AlreadyCanceled", testAnimationAlreadyCanceled)
}

func TestScrollerFuncs(t *testing.T) {
	testScrollerFuncs(t)
}

func TestConfig(t *testing.T) {
	testConfigOptions(t)
}
