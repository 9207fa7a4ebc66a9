// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package scroll animates a scroll offset toward a target in fixed-granularity ticks.
package scroll
