// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/pflag"
	"github.com/xmidt-org/pacer/poll"
	"github.com/xmidt-org/pacer/xmetrics"
	"github.com/xmidt-org/pacer/xviper"
)

const applicationName = "pacer"

var errNoURLs = errors.New("at least one URL is required")

// Config is the complete configuration for pacer.  Every key may come from a flag, from an environment
// variable prefixed with PACER_, or from the configuration file.
type Config struct {
	// URLs are the endpoints to wait for, in order
	URLs []string `mapstructure:"url"`

	// Timeout bounds the wait for each URL
	Timeout time.Duration `mapstructure:"timeout"`

	// Interval is the time between probes of a URL
	Interval time.Duration `mapstructure:"interval"`

	// RequestTimeout bounds each individual probe
	RequestTimeout time.Duration `mapstructure:"request-timeout"`

	// LogWindow is the minimum time between progress logs
	LogWindow time.Duration `mapstructure:"log-window"`

	// MetricsAddress is the address on which to serve /metrics.  If unset, metrics are not served.
	MetricsAddress string `mapstructure:"metrics"`

	// Level is the zap log level
	Level string `mapstructure:"level"`

	// Prometheus configures the metrics registry.  It can only be set in the configuration file.
	Prometheus xmetrics.Options `mapstructure:"prometheus"`
}

// PollOptions returns the poll options for each URL
func (c Config) PollOptions() []poll.Option {
	return poll.Config{Timeout: c.Timeout, Interval: c.Interval}.Options()
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	fs.StringP(xviper.DefaultFileFlag, "f", "", "the fully-qualified path of the configuration file")
	fs.StringP(xviper.DefaultNameFlag, "n", "", "the name of the configuration file to search for")
	fs.StringSliceP("url", "u", nil, "a URL to wait for, which may be repeated")
	fs.Duration("timeout", poll.DefaultTimeout, "the maximum time to wait for each URL")
	fs.Duration("interval", poll.DefaultInterval, "the time between probes of a URL")
	fs.Duration("request-timeout", time.Second, "the maximum time for a single probe")
	fs.Duration("log-window", time.Second, "the minimum time between progress logs")
	fs.String("metrics", "", "the address to serve prometheus metrics on, e.g. :9090")
	fs.String("level", "info", "the log level")
	return fs
}

// loadConfig parses the command line, then reads the configuration file and environment.  Positional
// arguments are appended to the configured URLs.
func loadConfig(arguments []string) (Config, error) {
	var cfg Config
	fs := newFlagSet()
	if err := fs.Parse(arguments); err != nil {
		return cfg, err
	}

	v, err := xviper.New(xviper.StdOptions(applicationName, fs))
	if err != nil {
		return cfg, err
	}

	if err := xviper.ReadInConfig(v, true); err != nil {
		return cfg, fmt.Errorf("unable to read configuration: %w", err)
	}

	if err := xviper.Unmarshal(v, &cfg); err != nil {
		return cfg, fmt.Errorf("unable to decode configuration: %w", err)
	}

	urls, err := xviper.StringSlice(v.Get("url"))
	if err != nil {
		return cfg, fmt.Errorf("unable to decode URLs: %w", err)
	}

	cfg.URLs = append(urls, fs.Args()...)
	if len(cfg.URLs) == 0 {
		return cfg, errNoURLs
	}

	for _, u := range cfg.URLs {
		if _, err := url.ParseRequestURI(u); err != nil {
			return cfg, fmt.Errorf("invalid URL %q: %w", u, err)
		}
	}

	return cfg, nil
}
