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

package autoprop

import (
	"fmt"
	"reflect"

	"dirpx.dev/fixture/apis"
	"dirpx.dev/fixture/specification"
	uref "dirpx.dev/fixture/utils/reflect"
)

// Suppress returns a customization under which requests matching spec are
// returned exactly as constructed. Every Populator reachable through apis.Node
// is rewritten, and the result is fronted by a builder that carries spec on the
// resolution context, so populators hidden behind opaque builders honor it too.
// Everything else in the chain is kept, so the customization composes with
// others instead of replacing the chain.
func Suppress(spec apis.Specification) apis.Customization {
	return &Suppression{spec: spec}
}

// Suppression is the auto-property suppression customization.
type Suppression struct {
	// Target is the suppressed type, when built by NewNoAutoPropertiesCustomization.
	Target reflect.Type

	spec apis.Specification
}

// Ensure Suppression implements apis.Customization.
var _ apis.Customization = (*Suppression)(nil)

// NewNoAutoPropertiesCustomization suppresses population of t. For a pointer
// type the pointed-to struct is suppressed as well, since that is where
// population happens.
func NewNoAutoPropertiesCustomization(t reflect.Type) (*Suppression, error) {
	if t == nil {
		return nil, apis.InvalidArgument("type")
	}
	exact, _ := specification.NewExactTypeSpecification(t)
	spec := apis.Specification(exact)
	if base := uref.Indirect(t, uref.MaxEmbedDepth); base != t {
		inner, _ := specification.NewExactTypeSpecification(base)
		spec = specification.Or(exact, inner)
	}
	return &Suppression{Target: t, spec: spec}, nil
}

// Customize implements apis.Customization.
func (s *Suppression) Customize(b apis.Builder) apis.Builder {
	if s.spec == nil {
		return b
	}
	return &suppressing{next: rewrite(b, s.spec), spec: s.spec}
}

// suppressing hands every request to next with spec attached to the context.
type suppressing struct {
	next apis.Builder
	spec apis.Specification
}

// Ensure suppressing implements apis.Node.
var _ apis.Node = (*suppressing)(nil)

// Create implements apis.Builder.
func (s *suppressing) Create(r apis.Request, ctx apis.Context) (any, error) {
	return s.next.Create(r, &suppressedContext{Context: ctx, spec: s.spec})
}

// Children implements apis.Node.
func (s *suppressing) Children() []apis.Builder { return []apis.Builder{s.next} }

// WithChildren implements apis.Node.
func (s *suppressing) WithChildren(children []apis.Builder) apis.Builder {
	if len(children) != 1 {
		panic(fmt.Sprintf("fixture(autoprop): suppression wraps exactly one builder, got %d", len(children)))
	}
	return &suppressing{next: children[0], spec: s.spec}
}

// suppressedContext is the resolution context seen below a suppressing
// builder. Nested requests go back through the kernel and pick up a fresh one.
type suppressedContext struct {
	apis.Context
	spec apis.Specification
}

// suppressed reports whether any suppression carried by ctx matches r.
func suppressed(ctx apis.Context, r apis.Request) bool {
	for {
		s, ok := ctx.(*suppressedContext)
		if !ok {
			return false
		}
		if s.spec.IsSatisfiedBy(r) {
			return true
		}
		ctx = s.Context
	}
}

func rewrite(b apis.Builder, spec apis.Specification) apis.Builder {
	switch n := b.(type) {
	case *Populator:
		base := rewrite(n.base, spec)
		return (&Populator{base: base, spec: n.spec}).Without(spec)
	case apis.Node:
		children := n.Children()
		for i, c := range children {
			children[i] = rewrite(c, spec)
		}
		return n.WithChildren(children)
	default:
		return b
	}
}

// NoAutoProperties is the declarative suppression marker. Placed on a
// parameter, property, field or type, it yields a customization that
// suppresses population for the target type of that request.
type NoAutoProperties struct{}

// Ensure NoAutoProperties implements apis.Customizer.
var _ apis.Customizer = NoAutoProperties{}

// GetCustomization implements apis.Customizer.
func (NoAutoProperties) GetCustomization(r apis.Request) (apis.Customization, error) {
	if r == nil {
		return nil, apis.InvalidArgument("request")
	}
	return NewNoAutoPropertiesCustomization(r.TargetType())
}
