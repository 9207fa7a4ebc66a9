// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
{
	"poll": {
		"timeout": "1500ms",
		"interval": "50ms"
	},
	"urls": "http://a, http://b",
	"name": "test"
}
`

type pollConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	Interval time.Duration `mapstructure:"interval"`
}

type topConfig struct {
	Poll pollConfig `mapstructure:"poll"`
	URLs []string   `mapstructure:"urls"`
	Name string     `mapstructure:"name"`
}

func newTestViper(t *testing.T) *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	require.NoError(t, v.ReadConfig(strings.NewReader(testConfig)))
	return v
}

func testUnmarshalHooks(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		v       = newTestViper(t)
		top     topConfig
		name    struct {
			Name string `mapstructure:"name"`
		}
	)

	require.NoError(Unmarshal(v, &top, &name))
	assert.Equal(1500*time.Millisecond, top.Poll.Timeout)
	assert.Equal(50*time.Millisecond, top.Poll.Interval)
	assert.Equal([]string{"http://a", " http://b"}, top.URLs)
	assert.Equal("test", name.Name)
}

func testUnmarshalKey(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		v       = newTestViper(t)
		pc      pollConfig
	)

	require.NoError(UnmarshalKey(v, "poll", &pc))
	assert.Equal(pollConfig{Timeout: 1500 * time.Millisecond, Interval: 50 * time.Millisecond}, pc)
}

func testUnmarshalError(t *testing.T) {
	var (
		assert        = assert.New(t)
		expectedError = errors.New("expected")
		values        = []interface{}{"one", "two", "three"}
	)

	for i := 0; i < len(values); i++ {
		unmarshaler := new(mockUnmarshaler)
		for j := 0; j < i; j++ {
			unmarshaler.On("Unmarshal", values[j]).Return(error(nil)).Once()
		}

		unmarshaler.On("Unmarshal", values[i]).Return(expectedError).Once()
		assert.Equal(expectedError, Unmarshal(unmarshaler, values...))
		unmarshaler.AssertExpectations(t)
	}
}

func TestUnmarshal(t *testing.T) {
	t.Run("Hooks", testUnmarshalHooks)
	t.Run("Key", testUnmarshalKey)
	t.Run("Error", testUnmarshalError)
}

func TestApplyDefaults(t *testing.T) {
	var (
		assert = assert.New(t)
		v      = viper.New()
	)

	ApplyDefaults(v, Defaults{"timeout": "2s", "urls": []string{"http://localhost"}})
	assert.Equal(2*time.Second, v.GetDuration("timeout"))
	assert.Equal([]string{"http://localhost"}, v.GetStringSlice("urls"))
}

func TestStringSlice(t *testing.T) {
	testData := []struct {
		value    interface{}
		expected []string
	}{
		{nil, nil},
		{"", nil},
		{"http://a", []string{"http://a"}},
		{"http://a,http://b", []string{"http://a", "http://b"}},
		{"http://a http://b", []string{"http://a", "http://b"}},
		{[]string{"http://a, http://b", " ", "http://c"}, []string{"http://a", "http://b", "http://c"}},
		{[]interface{}{"a", 1}, []string{"a", "1"}},
	}

	for _, record := range testData {
		actual, err := StringSlice(record.value)
		assert.NoError(t, err)
		assert.Equal(t, record.expected, actual, "value: %#v", record.value)
	}

	_, err := StringSlice(struct{}{})
	assert.Error(t, err)
}
