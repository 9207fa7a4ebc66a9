// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Option configures a Viper instance
type Option func(*viper.Viper) error

// AddConfigPaths adds paths to search for the configuration file
func AddConfigPaths(paths ...string) Option {
	return func(v *viper.Viper) error {
		for _, p := range paths {
			v.AddConfigPath(p)
		}

		return nil
	}
}

// SetConfigName sets the name of the configuration file to search for
func SetConfigName(name string) Option {
	return func(v *viper.Viper) error {
		v.SetConfigName(name)
		return nil
	}
}

// AutomaticEnv binds every key to an environment variable with the given prefix.  Dashes in keys
// become underscores, so the key "log-window" is read from PREFIX_LOG_WINDOW.
func AutomaticEnv(prefix string) Option {
	return func(v *viper.Viper) error {
		v.SetEnvPrefix(prefix)
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
		v.AutomaticEnv()
		return nil
	}
}

// BindPFlags uses each flag in fs as the source for the key of the same name
func BindPFlags(fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		return v.BindPFlags(fs)
	}
}

// BindConfigFlags applies BindConfig to a Viper instance
func BindConfigFlags(fs FlagLookup, fileFlag, nameFlag string) Option {
	return func(v *viper.Viper) error {
		BindConfig(v, fs, fileFlag, nameFlag)
		return nil
	}
}

// StdOptions is the standard configuration for an application: the standard configuration paths,
// a configuration file named for the application unless the DefaultFileFlag or DefaultNameFlag flags
// say otherwise, environment variables prefixed with the application name, and every flag in fs.
func StdOptions(applicationName string, fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		return Configure(
			v,
			AddConfigPaths(StandardConfigPaths(applicationName)...),
			SetConfigName(applicationName),
			BindConfigFlags(fs, DefaultFileFlag, DefaultNameFlag),
			AutomaticEnv(applicationName),
			BindPFlags(fs),
		)
	}
}

// New creates a Viper instance with the given options
func New(options ...Option) (*viper.Viper, error) {
	v := viper.New()
	if err := Configure(v, options...); err != nil {
		return nil, err
	}

	return v, nil
}

// Configure applies options to a Viper instance, stopping at the first error
func Configure(v *viper.Viper, options ...Option) error {
	for _, o := range options {
		if err := o(v); err != nil {
			return err
		}
	}

	return nil
}

// ReadInConfig reads the configuration file, if any.  When allowMissing is set, not finding a configuration
// file in the search paths is not an error.  An explicitly named file that cannot be read always is.
func ReadInConfig(v *viper.Viper, allowMissing bool) error {
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if allowMissing && errors.As(err, &notFound) {
		return nil
	}

	return err
}
