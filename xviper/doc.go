// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xviper provides customizations on use of viper for configuration loading.  It binds the
configuration file to command line flags, and decodes configuration with duration and list hooks.
*/
package xviper
