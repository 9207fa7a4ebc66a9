// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package fade ramps an element's opacity from transparent to opaque, one tick per frame.
package fade
