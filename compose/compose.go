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

// Package compose assembles the default registry and kernel from a Config.
package compose

import (
	"log/slog"

	"dirpx.dev/fixture/apis"
	"dirpx.dev/fixture/autoprop"
	"dirpx.dev/fixture/kernel"
	"dirpx.dev/fixture/registry"
	"dirpx.dev/fixture/specification/rule"
	"dirpx.dev/fixture/strategy"
)

// Option configures the default composer.
type Option func(*composer)

// WithLogger sets the logger handed to kernels and rule specifications.
func WithLogger(l *slog.Logger) Option {
	return func(c *composer) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates and returns the default apis.Composer.
func New(opts ...Option) apis.Composer {
	c := &composer{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// composer assembles the default chain.
type composer struct {
	logger *slog.Logger
}

// BuildRegistry builds and returns a new apis.Registry. If a previous registry
// is provided, its entries are copied into the new registry.
func (c *composer) BuildRegistry(_ apis.Config, prev apis.Registry) apis.Registry {
	nreg := registry.New()
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = nreg.Register(e.Type, e.Factory.Func.Interface())
		}
	}
	return nreg
}

// BuildKernel builds the default chain over reg, in priority order:
//
//  1. registered factories (population applies)
//  2. self-providing types
//  3. leaf values: time, UUID, string, bool, numbers
//  4. relays: member -> value request, seeded -> type request
//  5. containers: pointer, slice/array, map
//  6. zero-value structs (population applies)
//
// Config.Suppress rules are applied next, then customs in order, so the last
// customization is consulted first.
func (c *composer) BuildKernel(cfg apis.Config, reg apis.Registry, customs []apis.Customization) apis.Kernel {
	construct := func(b apis.Builder) apis.Builder {
		if cfg.AutoProperties {
			return autoprop.NewPopulator(b, nil)
		}
		return b
	}

	var root apis.Builder = kernel.NewChain(
		construct(strategy.NewRegistryStrategy(reg)),
		strategy.NewProviderStrategy(),
		strategy.NewTimeStrategy(),
		strategy.NewUUIDStrategy(),
		strategy.NewStringStrategy(),
		strategy.NewBoolStrategy(),
		strategy.NewNumberStrategy(),
		strategy.NewMemberRelay(),
		strategy.NewSeedRelay(),
		strategy.NewPointerStrategy(),
		strategy.NewSliceStrategy(),
		strategy.NewMapStrategy(),
		construct(strategy.NewReflectStrategy(reg)),
	)

	for _, r := range cfg.Suppress {
		spec, err := rule.FromRule(r, rule.WithLogger(c.logger))
		if err != nil {
			c.logger.Error("skipping invalid suppress rule",
				slog.String("engine", r.Engine),
				slog.String("expr", r.Expr),
				slog.Any("error", err),
			)
			continue
		}
		root = autoprop.Suppress(spec).Customize(root)
	}
	for _, cu := range customs {
		if cu != nil {
			root = cu.Customize(root)
		}
	}

	return kernel.New(cfg, root,
		kernel.WithLogger(c.logger),
		kernel.WithRecursionHandler(strategy.RecursionHandler(cfg.Recursion)),
	)
}
