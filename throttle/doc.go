// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package throttle limits how often a function runs.  A throttled function executes at the leading edge
of a window and, if it was called again during that window, once more at the trailing edge with the
arguments of the last such call.  Earlier arguments within a window are discarded.
*/
package throttle
