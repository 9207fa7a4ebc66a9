// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xmetrics exposes a Prometheus registry as a go-kit metrics provider.  Packages in this
module describe their metrics with a Module function and realize them through any go-kit
provider.Provider, which is normally a Registry.
*/
package xmetrics
