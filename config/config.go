/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"dirpx.dev/fixture/apis"
)

const (
	// DefaultMaxDepth represents the default for MaxDepth.
	DefaultMaxDepth = 64
	// DefaultRepeatCount represents the default for RepeatCount.
	DefaultRepeatCount = 3
	// DefaultRecursion represents the default for Recursion.
	DefaultRecursion = apis.RecursionThrow
	// DefaultAutoProperties represents the default for AutoProperties.
	// When true, fields and properties of constructed structs are populated.
	DefaultAutoProperties = true
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return sanitize(cfg)
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MaxDepth:       DefaultMaxDepth,
		RepeatCount:    DefaultRepeatCount,
		Recursion:      DefaultRecursion,
		AutoProperties: DefaultAutoProperties,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMaxDepth sets the MaxDepth option.
// A non-positive value resets to the default.
func WithMaxDepth(depth int) Option {
	return func(c *apis.Config) {
		if depth <= 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = depth
	}
}

// WithRepeatCount sets the RepeatCount option.
// A negative value resets to the default; zero yields empty collections.
func WithRepeatCount(n int) Option {
	return func(c *apis.Config) {
		if n < 0 {
			c.RepeatCount = DefaultRepeatCount
			return
		}
		c.RepeatCount = n
	}
}

// WithRecursion sets the Recursion option.
func WithRecursion(p apis.RecursionPolicy) Option {
	return func(c *apis.Config) {
		c.Recursion = p
	}
}

// WithAutoProperties sets the AutoProperties option.
func WithAutoProperties(enabled bool) Option {
	return func(c *apis.Config) {
		c.AutoProperties = enabled
	}
}

// WithSuppress appends rules whose matching requests skip member population.
func WithSuppress(rules ...apis.Rule) Option {
	return func(c *apis.Config) {
		c.Suppress = append(append([]apis.Rule(nil), c.Suppress...), rules...)
	}
}

// sanitize restores defaults for values outside their valid range.
func sanitize(cfg apis.Config) apis.Config {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.RepeatCount < 0 {
		cfg.RepeatCount = DefaultRepeatCount
	}
	switch cfg.Recursion {
	case apis.RecursionThrow, apis.RecursionOmit, apis.RecursionZero:
	default:
		cfg.Recursion = DefaultRecursion
	}
	return cfg
}
