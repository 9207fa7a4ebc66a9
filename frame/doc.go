// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package frame provides frame schedulers used to pace animations.  A Scheduler runs a callback just
before the next frame.  When no frame source is available, Resolve supplies a fallback that runs
callbacks on a fixed short timer.

NewPaced is a Scheduler for components that animate together: every callback requested for the same
frame runs in one batch with one timestamp, and frames are aligned to multiples of the interval, so
several animations sharing a Paced stay in step.  Pass it to fade.WithFrameScheduler or to
LoopConfig.Scheduler.

A Loop drives a per-frame step until it completes, with cancellation through a context or Stop.
*/
package frame
