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

package kernel

import (
	"errors"
	"fmt"

	"dirpx.dev/fixture/apis"
)

// NewChain constructs a builder that consults builders in order until one
// produces a specimen. Nil builders are ignored. The returned chain is
// immutable and safe for concurrent use provided the builders are.
func NewChain(builders ...apis.Builder) *Chain {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Builder, 0, len(builders))
	for _, b := range builders {
		if b != nil {
			out = append(out, b)
		}
	}
	return &Chain{builders: out}
}

// Chain is an immutable, order-preserving composite builder.
type Chain struct {
	builders []apis.Builder
}

// Ensure Chain implements apis.Node.
var _ apis.Node = (*Chain)(nil)

// Create runs builders in order until one produces a specimen. A fatal error
// from any builder stops the chain. When every builder declines, the most
// informative decline is returned: a circular reference if one was seen,
// otherwise the first decline that carries a cause.
func (c *Chain) Create(r apis.Request, ctx apis.Context) (any, error) {
	var cause error
	for _, b := range c.builders {
		v, err := b.Create(r, ctx)
		if err == nil {
			return v, nil
		}
		if !apis.IsUnresolved(err) {
			return nil, err
		}
		if errors.Is(err, apis.ErrCircularReference) {
			if cause == nil || !errors.Is(cause, apis.ErrCircularReference) {
				cause = err
			}
			continue
		}
		if cause == nil && err != apis.ErrNoSpecimen {
			cause = err
		}
	}
	if cause != nil {
		return nil, cause
	}
	return nil, NoSpecimen(r)
}

// Children implements apis.Node.
func (c *Chain) Children() []apis.Builder {
	return append([]apis.Builder(nil), c.builders...)
}

// WithChildren implements apis.Node.
func (c *Chain) WithChildren(children []apis.Builder) apis.Builder {
	return NewChain(children...)
}

// Len returns the number of builders in the chain.
func (c *Chain) Len() int { return len(c.builders) }

// NoSpecimen returns the decline signal for r.
func NoSpecimen(r apis.Request) error {
	return fmt.Errorf("%w for %s", apis.ErrNoSpecimen, r)
}
