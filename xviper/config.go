// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"fmt"

	"github.com/spf13/pflag"
)

const (
	// DefaultFileFlag is the flag holding the fully-qualified path of the configuration file
	DefaultFileFlag = "file"

	// DefaultNameFlag is the flag holding the name, without extension, of the configuration file to search for
	DefaultNameFlag = "name"
)

// Configer is the subset of Viper behavior dealing with configuration paths and locations
type Configer interface {
	AddConfigPath(string)
	SetConfigName(string)
	SetConfigFile(string)
}

// FlagLookup is the behavior expected of a pflag.FlagSet to lookup individual flags by longhand name.
type FlagLookup interface {
	Lookup(string) *pflag.Flag
}

// StandardConfigPaths returns the *nix-style configuration paths for an application, in search order.
func StandardConfigPaths(applicationName string) []string {
	return []string{
		fmt.Sprintf("/etc/%s", applicationName),
		fmt.Sprintf("$HOME/.%s", applicationName),
		".",
	}
}

// AddStandardConfigPaths adds the StandardConfigPaths to a Configer
func AddStandardConfigPaths(c Configer, applicationName string) {
	for _, p := range StandardConfigPaths(applicationName) {
		c.AddConfigPath(p)
	}
}

// flagValue returns the nonempty value of a flag, or false if the flag is missing or empty
func flagValue(fl FlagLookup, flag string) (string, bool) {
	if len(flag) == 0 {
		return "", false
	}

	f := fl.Lookup(flag)
	if f == nil {
		return "", false
	}

	value := f.Value.String()
	return value, len(value) > 0
}

// BindConfig points a Configer at the configuration named on the command line.  The file flag, which holds
// a fully-qualified path, takes precedence over the name flag, which holds a name to search the configuration
// paths for.  This function returns the flag that was bound, or the empty string if neither flag was set.
func BindConfig(c Configer, fl FlagLookup, fileFlag, nameFlag string) string {
	if file, ok := flagValue(fl, fileFlag); ok {
		c.SetConfigFile(file)
		return fileFlag
	}

	if name, ok := flagValue(fl, nameFlag); ok {
		c.SetConfigName(name)
		return nameFlag
	}

	return ""
}
