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

package fixture

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/fixture/apis"
	"dirpx.dev/fixture/compose"
	"dirpx.dev/fixture/config"
	"dirpx.dev/fixture/customization"
	"dirpx.dev/fixture/specification/rule"
)

var (
	// ErrNilRegistry is returned when a composer returns a nil registry.
	ErrNilRegistry = errors.New("fixture: composer returned nil registry")
	// ErrNilKernel is returned when a composer returns a nil kernel.
	ErrNilKernel = errors.New("fixture: composer returned nil kernel")
)

// Option configures a Fixture under construction.
type Option func(*options)

type options struct {
	cfg     apis.Config
	cmp     apis.Composer
	logger  *slog.Logger
	customs []apis.Customization
}

// WithConfig sets the initial configuration.
func WithConfig(cfg apis.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithComposer replaces the default composer.
func WithComposer(c apis.Composer) Option {
	return func(o *options) {
		if c != nil {
			o.cmp = c
		}
	}
}

// WithLogger sets the logger handed to the default composer.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCustomizations applies cs, in order, on top of the default chain.
func WithCustomizations(cs ...apis.Customization) Option {
	return func(o *options) { o.customs = append(o.customs, cs...) }
}

// Fixture is the entry point for creating specimens. Reads go through an
// immutable snapshot and never block; reconfiguration builds a new snapshot
// and publishes it atomically.
type Fixture struct {
	// buildMu serializes writers so partially built snapshots are never published.
	buildMu sync.Mutex
	st      atomic.Pointer[state]
}

// state is a published snapshot. Never mutate the fields of a stored state.
type state struct {
	cfg     apis.Config
	reg     apis.Registry
	kernel  apis.Kernel
	cmp     apis.Composer
	customs []apis.Customization
}

// New creates a Fixture. Suppress rules in the configuration are compiled up
// front, so a rule that does not compile is reported here.
func New(opts ...Option) (*Fixture, error) {
	o := &options{cfg: config.DefaultConfig()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.cmp == nil {
		var copts []compose.Option
		if o.logger != nil {
			copts = append(copts, compose.WithLogger(o.logger))
		}
		o.cmp = compose.New(copts...)
	}
	if err := validate(o.cfg); err != nil {
		return nil, err
	}

	reg := o.cmp.BuildRegistry(o.cfg, nil)
	if reg == nil {
		return nil, ErrNilRegistry
	}
	f := &Fixture{}
	if err := f.publish(o.cfg, reg, o.cmp, o.customs); err != nil {
		return nil, err
	}
	return f, nil
}

// publish builds a kernel and stores a new snapshot. Callers hold buildMu,
// except New which owns f exclusively.
func (f *Fixture) publish(cfg apis.Config, reg apis.Registry, cmp apis.Composer, customs []apis.Customization) error {
	k := cmp.BuildKernel(cfg, reg, customs)
	if k == nil {
		return ErrNilKernel
	}
	f.st.Store(&state{cfg: cfg, reg: reg, kernel: k, cmp: cmp, customs: customs})
	return nil
}

// validate compiles every suppress rule of cfg.
func validate(cfg apis.Config) error {
	for i, r := range cfg.Suppress {
		if _, err := rule.FromRule(r); err != nil {
			return fmt.Errorf("fixture: suppress rule %d: %w", i, err)
		}
	}
	return nil
}

// Config returns the current configuration.
func (f *Fixture) Config() apis.Config {
	return f.st.Load().cfg
}

// Registry returns the current factory registry.
func (f *Fixture) Registry() apis.Registry {
	return f.st.Load().reg
}

// Kernel returns the current kernel.
func (f *Fixture) Kernel() apis.Kernel {
	return f.st.Load().kernel
}

// Resolve resolves r through the current kernel.
func (f *Fixture) Resolve(r apis.Request) (any, error) {
	return f.st.Load().kernel.Resolve(r)
}

// Create creates a specimen of t.
func (f *Fixture) Create(t reflect.Type) (any, error) {
	if t == nil {
		return nil, apis.InvalidArgument("type")
	}
	return f.Resolve(apis.TypeRequest{Type: t})
}

// Register adds a factory for t to the current registry. Registered factories
// are visible to the current kernel immediately.
func (f *Fixture) Register(t reflect.Type, factory any) error {
	return f.st.Load().reg.Register(t, factory)
}

// SetConfig replaces the configuration and rebuilds the registry and kernel.
// Registered factories and customizations are carried over.
func (f *Fixture) SetConfig(cfg apis.Config) error {
	if err := validate(cfg); err != nil {
		return err
	}

	f.buildMu.Lock()
	defer f.buildMu.Unlock()

	old := f.st.Load()
	reg := old.cmp.BuildRegistry(cfg, old.reg)
	if reg == nil {
		return ErrNilRegistry
	}
	return f.publish(cfg, reg, old.cmp, old.customs)
}

// Customize applies cs, in order, on top of the current chain. Nil
// customizations are ignored.
func (f *Fixture) Customize(cs ...apis.Customization) error {
	f.buildMu.Lock()
	defer f.buildMu.Unlock()
	return f.customize(cs)
}

// customize publishes cs on top of the current customizations. buildMu must be held.
func (f *Fixture) customize(cs []apis.Customization) error {
	old := f.st.Load()
	customs := make([]apis.Customization, 0, len(old.customs)+len(cs))
	customs = append(customs, old.customs...)
	for _, c := range cs {
		if c != nil {
			customs = append(customs, c)
		}
	}
	return f.publish(old.cfg, old.reg, old.cmp, customs)
}

// Apply asks each customizer for the customization matching r and applies
// what they return.
func (f *Fixture) Apply(r apis.Request, cs ...apis.Customizer) error {
	if r == nil {
		return apis.InvalidArgument("request")
	}
	var found []apis.Customization
	for _, c := range cs {
		if c == nil {
			continue
		}
		cu, err := c.GetCustomization(r)
		if err != nil {
			return err
		}
		if cu != nil {
			found = append(found, cu)
		}
	}
	if len(found) == 0 {
		return nil
	}
	return f.Customize(found...)
}

// Freeze creates one specimen of t and makes every later request for t
// return it. The specimen is built from the snapshot the freeze is published
// on top of.
func (f *Fixture) Freeze(t reflect.Type) (any, error) {
	f.buildMu.Lock()
	defer f.buildMu.Unlock()

	c, v, err := customization.Freeze(f.st.Load().kernel, t)
	if err != nil {
		return nil, err
	}
	if err := f.customize([]apis.Customization{c}); err != nil {
		return nil, err
	}
	return v, nil
}

// Create creates a specimen of T with f.
func Create[T any](f *Fixture) (T, error) {
	var zero T
	v, err := f.Create(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	return v.(T), nil
}

// MustCreate is like Create but panics on error.
func MustCreate[T any](f *Fixture) T {
	v, err := Create[T](f)
	if err != nil {
		panic(err)
	}
	return v
}

// CreateMany creates n specimens of T with f.
func CreateMany[T any](f *Fixture, n int) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative count %d", apis.ErrInvalidArgument, n)
	}
	out := make([]T, 0, n)
	for range n {
		v, err := Create[T](f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// std is the process-wide default fixture.
var std atomic.Pointer[Fixture]

func init() {
	f, err := New()
	if err != nil {
		panic(err)
	}
	std.Store(f)
}

// Default returns the process-wide default fixture.
func Default() *Fixture {
	return std.Load()
}

// SetDefault replaces the process-wide default fixture. A nil f is ignored.
func SetDefault(f *Fixture) {
	if f != nil {
		std.Store(f)
	}
}

// Generate creates a specimen of T with the default fixture.
func Generate[T any]() (T, error) {
	return Create[T](Default())
}
