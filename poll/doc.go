// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package poll repeatedly evaluates a condition until it holds or a deadline passes.

A poll has exactly one terminal outcome: success, timeout, cancellation through its context,
or a panic from the predicate.  Checks are scheduled on a clock.Interface, so tests can drive
polls deterministically with clocktest.Manual.
*/
package poll
