// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package throttle

import (
	"sync"
	"testing"
	"time"

	"github.com/go-kit/kit/metrics/generic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/pacer/clock/clocktest"
	"github.com/xmidt-org/pacer/xerrors"
	"go.uber.org/zap/zaptest"
)

// invocation records a single call to the wrapped function
type invocation struct {
	arg string
	at  time.Duration
}

type recorder struct {
	m           *clocktest.Manual
	invocations []invocation
}

func (r *recorder) fn(arg string) int {
	r.invocations = append(r.invocations, invocation{arg: arg, at: r.m.Now().Sub(clocktest.Epoch)})
	return len(r.invocations)
}

func newTestMeasures() *Measures {
	return &Measures{
		Leading:   generic.NewCounter(LeadingCounter),
		Trailing:  generic.NewCounter(TrailingCounter),
		Coalesced: generic.NewCounter(CoalescedCounter),
		Canceled:  generic.NewCounter(CanceledCounter),
	}
}

func newTestThrottled(t *testing.T, wait time.Duration) (*Throttled[string, int], *recorder, *Measures) {
	var (
		m        = clocktest.NewManual(time.Time{})
		r        = &recorder{m: m}
		measures = newTestMeasures()
	)

	th, err := New[string, int](
		r.fn,
		wait,
		WithClock(m),
		WithLogger(zaptest.NewLogger(t)),
		WithMeasures(measures),
	)

	require.NoError(t, err)
	require.NotNil(t, th)
	return th, r, measures
}

func testNewInvalid(t *testing.T) {
	assert := assert.New(t)

	th, err := New[string, int](nil, time.Second)
	assert.Nil(th)
	assert.ErrorIs(err, xerrors.ErrInvalidArgument)

	th, err = New[string, int](func(string) int { return 0 }, -time.Millisecond)
	assert.Nil(th)
	assert.ErrorIs(err, xerrors.ErrInvalidArgument)
}

func testNewDefaults(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	th, err := New[int, int](
		func(v int) int { return v * 2 },
		time.Hour,
		WithClock(nil),
		WithLogger(nil),
		WithMeasures(nil),
	)

	require.NoError(err)
	assert.Equal(time.Hour, th.Wait())
	assert.Equal(4, th.Call(2))
	assert.Equal(4, th.Call(3))
	assert.True(th.Pending())
	assert.True(th.Cancel())
}

func testCallLeadingEdge(t *testing.T) {
	var (
		assert      = assert.New(t)
		th, r, msrs = newTestThrottled(t, 100*time.Millisecond)
	)

	assert.Equal(1, th.Call("first"))
	assert.Equal([]invocation{{arg: "first"}}, r.invocations)
	assert.False(th.Pending())
	assert.Equal(1.0, msrs.Leading.(*generic.Counter).Value())
}

func testCallTrailingCoalescing(t *testing.T) {
	var (
		assert      = assert.New(t)
		th, r, msrs = newTestThrottled(t, 100*time.Millisecond)
	)

	// calls at t=0, 30, 60: f runs at t=0 with call 0's args and at t=100 with call 60's args
	assert.Equal(1, th.Call("call-0"))
	r.m.Advance(30 * time.Millisecond)
	assert.Equal(1, th.Call("call-30"))
	r.m.Advance(30 * time.Millisecond)
	assert.Equal(1, th.Call("call-60"))
	assert.True(th.Pending())
	assert.Len(r.invocations, 1)

	r.m.Advance(39 * time.Millisecond)
	assert.Len(r.invocations, 1)

	r.m.Advance(time.Millisecond)
	assert.Equal(
		[]invocation{
			{arg: "call-0", at: 0},
			{arg: "call-60", at: 100 * time.Millisecond},
		},
		r.invocations,
	)

	assert.False(th.Pending())
	assert.Equal(1.0, msrs.Leading.(*generic.Counter).Value())
	assert.Equal(1.0, msrs.Trailing.(*generic.Counter).Value())
	assert.Equal(1.0, msrs.Coalesced.(*generic.Counter).Value())

	// the trailing result is only observable through a later call
	r.m.Advance(10 * time.Millisecond)
	assert.Equal(2, th.Call("call-110"))
	r.m.Advance(time.Second)
	assert.Len(r.invocations, 3)
	assert.Equal(invocation{arg: "call-110", at: 200 * time.Millisecond}, r.invocations[2])
}

func testCallManyWithinWindow(t *testing.T) {
	var (
		assert   = assert.New(t)
		th, r, _ = newTestThrottled(t, 50*time.Millisecond)
	)

	for i := 0; i < 40; i++ {
		th.Call(string(rune('a' + i%26)))
		r.m.Advance(time.Millisecond)
	}

	// 40 calls spanning 40ms of a 50ms window: one leading, one trailing
	r.m.Advance(time.Second)
	assert.Len(r.invocations, 2)
	assert.Equal(string(rune('a'+39%26)), r.invocations[1].arg)
	assert.Equal(50*time.Millisecond, r.invocations[1].at)
}

func testCallRearm(t *testing.T) {
	var (
		assert   = assert.New(t)
		th, r, _ = newTestThrottled(t, 100*time.Millisecond)
	)

	th.Call("first")
	r.m.Advance(100 * time.Millisecond)
	assert.Equal(2, th.Call("second"))
	assert.False(th.Pending())

	r.m.Advance(250 * time.Millisecond)
	assert.Equal(3, th.Call("third"))
	assert.Equal(
		[]invocation{
			{arg: "first", at: 0},
			{arg: "second", at: 100 * time.Millisecond},
			{arg: "third", at: 350 * time.Millisecond},
		},
		r.invocations,
	)
}

func testCallZeroWait(t *testing.T) {
	var (
		assert   = assert.New(t)
		th, r, _ = newTestThrottled(t, 0)
	)

	th.Call("a")
	th.Call("b")
	th.Call("c")
	assert.Len(r.invocations, 3)
	assert.False(th.Pending())
}

func testCallClockBackwards(t *testing.T) {
	var (
		assert   = assert.New(t)
		th, r, _ = newTestThrottled(t, 100*time.Millisecond)
	)

	r.m.Advance(time.Second)
	th.Call("a")
	r.m.Set(clocktest.Epoch)
	th.Call("b")
	assert.Len(r.invocations, 2)
	assert.False(th.Pending())
}

func testCancel(t *testing.T) {
	var (
		assert      = assert.New(t)
		th, r, msrs = newTestThrottled(t, 100*time.Millisecond)
	)

	assert.False(th.Cancel())

	th.Call("a")
	th.Call("b")
	assert.True(th.Cancel())
	assert.False(th.Pending())

	r.m.Advance(time.Second)
	assert.Len(r.invocations, 1)
	assert.Equal(1.0, msrs.Canceled.(*generic.Counter).Value())

	// the window was not reset by the cancel, but it has elapsed now
	assert.Equal(2, th.Call("c"))
}

func testCancelStopsTimer(t *testing.T) {
	var (
		assert = assert.New(t)
		c      = new(clocktest.Mock)
		timer  = new(clocktest.MockTimer)
		calls  []int
	)

	c.OnNow(clocktest.Epoch)
	c.OnAfterFunc(100*time.Millisecond, timer).Once()
	timer.OnStop(true).Once()

	th, err := New[int, int](
		func(v int) int {
			calls = append(calls, v)
			return v
		},
		100*time.Millisecond,
		WithClock(c),
	)

	assert.NoError(err)
	assert.Equal(1, th.Call(1))
	assert.Equal(1, th.Call(2))
	assert.Equal(1, th.Call(3))
	assert.True(th.Cancel())
	assert.Equal([]int{1}, calls)

	c.AssertExpectations(t)
	timer.AssertExpectations(t)
}

func testFlush(t *testing.T) {
	var (
		assert   = assert.New(t)
		th, r, _ = newTestThrottled(t, 100*time.Millisecond)
	)

	result, flushed := th.Flush()
	assert.False(flushed)
	assert.Zero(result)

	th.Call("a")
	r.m.Advance(10 * time.Millisecond)
	th.Call("b")
	th.Call("c")

	result, flushed = th.Flush()
	assert.True(flushed)
	assert.Equal(2, result)
	assert.Equal(invocation{arg: "c", at: 10 * time.Millisecond}, r.invocations[1])

	// the flush started a new window and the stale timer does nothing
	r.m.Advance(100 * time.Millisecond)
	assert.Len(r.invocations, 2)

	result, flushed = th.Flush()
	assert.False(flushed)
	assert.Equal(2, result)
}

func testConcurrentCalls(t *testing.T) {
	var (
		assert  = assert.New(t)
		lock    sync.Mutex
		running int
		overlap bool
		wg      sync.WaitGroup
	)

	th, err := New[int, int](func(v int) int {
		lock.Lock()
		running++
		if running > 1 {
			overlap = true
		}
		lock.Unlock()

		time.Sleep(time.Millisecond)

		lock.Lock()
		running--
		lock.Unlock()
		return v
	}, 0)

	assert.NoError(err)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			th.Call(v)
		}(i)
	}

	wg.Wait()
	assert.False(overlap)
}

func TestNew(t *testing.T) {
	t.Run("Invalid", testNewInvalid)
	t.Run("Defaults", testNewDefaults)
}

func TestCall(t *testing.T) {
	t.Run("LeadingEdge", testCallLeadingEdge)
	t.Run("TrailingCoalescing", testCallTrailingCoalescing)
	t.Run("ManyWithinWindow", testCallManyWithinWindow)
	t.Run("Rearm", testCallRearm)
	t.Run("ZeroWait", testCallZeroWait)
	t.Run("ClockBackwards", testCallClockBackwards)
	t.Run("Concurrent", testConcurrentCalls)
}

func TestCancel(t *testing.T) {
	t.Run("Basic", testCancel)
	t.Run("StopsTimer", testCancelStopsTimer)
}

func TestFlush(t *testing.T) {
	testFlush(t)
}

func TestMetrics(t *testing.T) {
	assert := assert.New(t)
	assert.Len(Metrics(), 4)
}
