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

// Package kernel resolves requests through an ordered chain of builders.
//
// Every top-level request gets its own resolution context. The context keeps
// the path of in-flight requests: a request that reappears on its own path is
// a cycle, and a path longer than Config.MaxDepth aborts the resolution.
package kernel

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"dirpx.dev/fixture/apis"
)

// ErrTypeMismatch is returned when a builder produces a value that is not
// assignable to the requested type. It is fatal.
var ErrTypeMismatch = errors.New("fixture(kernel): specimen does not match the requested type")

// Option configures a Kernel.
type Option func(*Kernel)

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(k *Kernel) {
		if l != nil {
			k.logger = l
		}
	}
}

// WithRecursionHandler sets the builder consulted when a request reappears on
// its own resolution path. When it is nil, or when it declines, the cycle is
// reported as an *apis.CircularReferenceError.
func WithRecursionHandler(b apis.Builder) Option {
	return func(k *Kernel) {
		k.onRecursion = b
	}
}

// New constructs a Kernel resolving requests through root.
func New(cfg apis.Config, root apis.Builder, opts ...Option) *Kernel {
	k := &Kernel{
		root:   root,
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
	}
	if k.root == nil {
		k.root = NewChain()
	}
	for _, opt := range opts {
		if opt != nil {
			opt(k)
		}
	}
	return k
}

// Kernel owns an immutable chain and creates a fresh resolution context for
// every top-level request. It holds no per-resolution state and is safe for
// concurrent use.
type Kernel struct {
	root        apis.Builder
	cfg         apis.Config
	onRecursion apis.Builder
	logger      *slog.Logger
}

// Ensure Kernel implements apis.Kernel.
var _ apis.Kernel = (*Kernel)(nil)

// Resolve resolves r from scratch. A nil request, or one without a target
// type, is rejected with apis.ErrInvalidArgument; any other failure is an
// *apis.ObjectCreationError.
func (k *Kernel) Resolve(r apis.Request) (any, error) {
	if err := checkRequest(r); err != nil {
		return nil, err
	}
	res := &resolution{kernel: k, path: make([]apis.Request, 0, 8)}
	v, err := res.Resolve(r)
	if err == nil && apis.IsOmit(v) {
		err = NoSpecimen(r)
	}
	if err != nil {
		k.logger.Debug("resolution failed",
			slog.String("request", r.String()),
			slog.Any("error", err),
		)
		return nil, &apis.ObjectCreationError{Request: r, Err: err}
	}
	return v, nil
}

// Builder implements apis.Kernel.
func (k *Kernel) Builder() apis.Builder { return k.root }

// Config implements apis.Kernel.
func (k *Kernel) Config() apis.Config { return k.cfg }

// resolution is the apis.Context of one top-level request. It tracks the
// active path for cycle detection and the depth ceiling.
type resolution struct {
	kernel *Kernel
	path   []apis.Request
}

// Ensure resolution implements apis.Context.
var _ apis.Context = (*resolution)(nil)

// Resolve implements apis.Context.
func (res *resolution) Resolve(r apis.Request) (any, error) {
	if err := checkRequest(r); err != nil {
		return nil, err
	}
	k := res.kernel
	if limit := k.cfg.MaxDepth; limit > 0 && len(res.path) >= limit {
		k.logger.Warn("recursion depth exceeded",
			slog.String("request", r.String()),
			slog.Int("max_depth", limit),
		)
		return nil, fmt.Errorf("%w: %d levels resolving %s", apis.ErrDepthExceeded, limit, r)
	}
	for _, p := range res.path {
		if p.Equal(r) {
			return res.recursion(r)
		}
	}

	res.path = append(res.path, r)
	defer func() { res.path = res.path[:len(res.path)-1] }()

	v, err := k.root.Create(r, res)
	if err != nil {
		return nil, err
	}
	if err := checkType(r, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Depth implements apis.Context.
func (res *resolution) Depth() int {
	if len(res.path) == 0 {
		return 0
	}
	return len(res.path) - 1
}

// Config implements apis.Context.
func (res *resolution) Config() apis.Config { return res.kernel.cfg }

// recursion handles a request found on its own path.
func (res *resolution) recursion(r apis.Request) (any, error) {
	k := res.kernel
	path := append([]apis.Request(nil), res.path...)
	k.logger.Debug("circular reference detected",
		slog.String("request", r.String()),
		slog.Int("depth", len(path)),
	)
	if k.onRecursion != nil {
		v, err := k.onRecursion.Create(r, res)
		if err == nil {
			return v, nil
		}
		if !apis.IsUnresolved(err) {
			return nil, err
		}
	}
	return nil, &apis.CircularReferenceError{Request: r, Path: path}
}

func checkRequest(r apis.Request) error {
	if r == nil {
		return apis.InvalidArgument("request")
	}
	if r.TargetType() == nil {
		return apis.InvalidArgument("request type")
	}
	return nil
}

// checkType rejects specimens that cannot be assigned to the requested type.
func checkType(r apis.Request, v any) error {
	t := r.TargetType()
	if t == nil || apis.IsOmit(v) {
		return nil
	}
	if v == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return nil
		}
		return fmt.Errorf("%w: nil for %s", ErrTypeMismatch, r)
	}
	if vt := reflect.TypeOf(v); !vt.AssignableTo(t) {
		return fmt.Errorf("%w: %v for %s", ErrTypeMismatch, vt, r)
	}
	return nil
}
