// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// DecodeHook is applied to every decode done by this package.  Durations are accepted as strings
// such as "250ms", and lists as comma-separated strings.
var DecodeHook = mapstructure.ComposeDecodeHookFunc(
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToSliceHookFunc(","),
)

// Unmarshaler is the behavior of a Viper instance that decodes all of its configuration
type Unmarshaler interface {
	Unmarshal(interface{}, ...viper.DecoderConfigOption) error
}

// KeyUnmarshaler is the behavior of a Viper instance that decodes a single key
type KeyUnmarshaler interface {
	UnmarshalKey(string, interface{}, ...viper.DecoderConfigOption) error
}

// Unmarshal decodes the whole configuration into each of the given targets in turn,
// stopping at the first error.
func Unmarshal(u Unmarshaler, targets ...interface{}) error {
	for _, t := range targets {
		if err := u.Unmarshal(t, viper.DecodeHook(DecodeHook)); err != nil {
			return err
		}
	}

	return nil
}

// UnmarshalKey decodes the configuration under key into target.
func UnmarshalKey(u KeyUnmarshaler, key string, target interface{}) error {
	return u.UnmarshalKey(key, target, viper.DecodeHook(DecodeHook))
}

type defaulter interface {
	SetDefault(string, interface{})
}

// Defaults maps configuration keys onto their default values
type Defaults map[string]interface{}

// ApplyDefaults sets each of the given defaults
func ApplyDefaults(d defaulter, v Defaults) {
	for key, value := range v {
		d.SetDefault(key, value)
	}
}

// StringSlice normalizes a configuration value into a list of strings.  The value may be a list of
// any scalar type or a single string, and every element is further split on commas.  Blank elements
// are dropped.
func StringSlice(value interface{}) ([]string, error) {
	if value == nil {
		return nil, nil
	}

	raw, err := cast.ToStringSliceE(value)
	if err != nil {
		return nil, err
	}

	var result []string
	for _, r := range raw {
		for _, s := range strings.Split(r, ",") {
			if s = strings.TrimSpace(s); len(s) > 0 {
				result = append(result, s)
			}
		}
	}

	return result, nil
}
