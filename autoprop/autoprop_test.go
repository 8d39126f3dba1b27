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

package autoprop_test

import (
	"errors"
	"net"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/fixture/apis"
	"dirpx.dev/fixture/autoprop"
	"dirpx.dev/fixture/config"
	"dirpx.dev/fixture/kernel"
	"dirpx.dev/fixture/registry"
	"dirpx.dev/fixture/request"
	"dirpx.dev/fixture/specification"
	"dirpx.dev/fixture/strategy"
)

type Address struct {
	Street string
	Number int
}

type Customer struct {
	Name    string
	Age     int
	Home    Address
	Work    *Address
	Tags    []string
	secret  string
	nick    string
	balance int
}

func (c *Customer) SetNick(v string) { c.nick = v }

func (c *Customer) SetBalance(v int) error {
	if v < 0 {
		return errors.New("negative balance")
	}
	c.balance = v
	return nil
}

func (c *Customer) Nick() string { return c.nick }

type Rejecting struct{ code int }

func (r *Rejecting) SetCode(int) error { return errors.New("rejected") }

type Named struct{ Label string }

type Record struct {
	Named
	ID int
}

type ConnWrapper struct {
	net.Conn
	Label string
}

type clock struct{ at int }

func (c *clock) SetAt(v int) { c.at = v }

type Scheduled struct {
	*clock
	Name string
}

type Cyclic struct {
	Value int
	Self  *Cyclic
}

// chain is the default leaf set with population wrapped around the struct builder.
func chain(reg apis.Registry) apis.Builder {
	return kernel.NewChain(
		autoprop.NewPopulator(strategy.NewRegistryStrategy(reg), nil),
		strategy.NewStringStrategy(),
		strategy.NewNumberStrategy(),
		strategy.NewMemberRelay(),
		strategy.NewSeedRelay(),
		strategy.NewPointerStrategy(),
		strategy.NewSliceStrategy(),
		autoprop.NewPopulator(strategy.NewReflectStrategy(reg), nil),
	)
}

func newKernel(b apis.Builder, opts ...config.Option) *kernel.Kernel {
	cfg := config.NewConfig(opts...)
	return kernel.New(cfg, b, kernel.WithRecursionHandler(strategy.RecursionHandler(cfg.Recursion)))
}

func resolve[T any](t *testing.T, k apis.Kernel) T {
	t.Helper()
	v, err := k.Resolve(apis.TypeRequest{Type: reflect.TypeFor[T]()})
	require.NoError(t, err)
	return v.(T)
}

func TestPopulator_FillsFieldsAndProperties(t *testing.T) {
	k := newKernel(chain(registry.New()))
	c := resolve[Customer](t, k)

	assert.True(t, strings.HasPrefix(c.Name, "Name"))
	assert.Positive(t, c.Age)
	assert.True(t, strings.HasPrefix(c.Home.Street, "Street"))
	assert.Positive(t, c.Home.Number)
	require.NotNil(t, c.Work)
	assert.NotEmpty(t, c.Work.Street)
	assert.Len(t, c.Tags, config.DefaultRepeatCount)
	assert.True(t, strings.HasPrefix(c.nick, "Nick"))
	assert.Positive(t, c.balance)
	assert.Empty(t, c.secret, "unexported fields are never touched")
}

func TestPopulator_Pointer(t *testing.T) {
	k := newKernel(chain(registry.New()))
	c := resolve[*Customer](t, k)
	require.NotNil(t, c)
	assert.NotEmpty(t, c.Name)
	assert.NotEmpty(t, c.nick)
}

func TestPopulator_PromotedFields(t *testing.T) {
	k := newKernel(chain(registry.New()))
	r := resolve[Record](t, k)
	assert.True(t, strings.HasPrefix(r.Label, "Label"))
	assert.Positive(t, r.ID)
}

func TestPopulator_PromotedSetters(t *testing.T) {
	k := newKernel(chain(registry.New()))

	var w ConnWrapper
	require.NotPanics(t, func() { w = resolve[ConnWrapper](t, k) })
	assert.Nil(t, w.Conn)
	assert.True(t, strings.HasPrefix(w.Label, "Label"))

	reg := registry.New()
	require.NoError(t, reg.Register(reflect.TypeFor[Scheduled](), func() Scheduled {
		return Scheduled{clock: &clock{}}
	}))
	s := resolve[Scheduled](t, newKernel(chain(reg)))
	require.NotNil(t, s.clock)
	assert.Positive(t, s.clock.at, "setter promoted through a non-nil pointer is called")

	// The embedded pointer is unexported, so without a factory it stays nil.
	var bare Scheduled
	require.NotPanics(t, func() { bare = resolve[Scheduled](t, k) })
	assert.Nil(t, bare.clock)
	assert.NotEmpty(t, bare.Name)
}

func TestPopulator_FactoryResult(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(reflect.TypeFor[*Address](), func() *Address {
		return &Address{Number: -1}
	}))
	k := newKernel(chain(reg))
	a := resolve[*Address](t, k)
	assert.NotEmpty(t, a.Street)
	assert.Positive(t, a.Number, "population runs after the factory")
}

func TestPopulator_SetterError(t *testing.T) {
	k := newKernel(chain(registry.New()))
	_, err := k.Resolve(apis.TypeRequest{Type: reflect.TypeFor[Rejecting]()})
	assert.ErrorIs(t, err, autoprop.ErrSetterFailed)
}

func TestPopulator_Specification(t *testing.T) {
	only, err := specification.NewExactTypeSpecification(reflect.TypeFor[Address]())
	require.NoError(t, err)
	reg := registry.New()
	k := newKernel(kernel.NewChain(
		strategy.NewStringStrategy(),
		strategy.NewNumberStrategy(),
		strategy.NewMemberRelay(),
		strategy.NewSeedRelay(),
		autoprop.NewPopulator(strategy.NewReflectStrategy(reg), only),
	))
	assert.Equal(t, Named{}, resolve[Named](t, k))
	assert.NotEmpty(t, resolve[Address](t, k).Street)
}

func TestPopulator_Cycles(t *testing.T) {
	t.Run("throw leaves the member unset", func(t *testing.T) {
		k := newKernel(chain(registry.New()))
		c := resolve[Cyclic](t, k)
		assert.Positive(t, c.Value)
		assert.Nil(t, c.Self)
	})
	t.Run("omit leaves the member unset", func(t *testing.T) {
		k := newKernel(chain(registry.New()), config.WithRecursion(apis.RecursionOmit))
		c := resolve[Cyclic](t, k)
		assert.Nil(t, c.Self)
	})
	t.Run("zero assigns an empty value", func(t *testing.T) {
		k := newKernel(chain(registry.New()), config.WithRecursion(apis.RecursionZero))
		c := resolve[Cyclic](t, k)
		require.NotNil(t, c.Self)
		assert.Equal(t, Cyclic{}, *c.Self)
	})
}

func TestSuppression_LeavesMembersAtZero(t *testing.T) {
	base := chain(registry.New())
	c, err := autoprop.NewNoAutoPropertiesCustomization(reflect.TypeFor[Customer]())
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[Customer](), c.Target)

	suppressed := newKernel(c.Customize(base))
	assert.Equal(t, Customer{}, resolve[Customer](t, suppressed))

	// The unwrapped builder still populates.
	populated := resolve[Customer](t, newKernel(base))
	assert.NotEmpty(t, populated.Name)
	assert.NotEmpty(t, populated.nick)

	// Only the target type is affected.
	assert.NotEmpty(t, resolve[Address](t, suppressed).Street)
}

func TestSuppression_Idempotent(t *testing.T) {
	base := chain(registry.New())
	c, err := autoprop.NewNoAutoPropertiesCustomization(reflect.TypeFor[Customer]())
	require.NoError(t, err)

	twice := newKernel(c.Customize(c.Customize(base)))
	assert.Equal(t, Customer{}, resolve[Customer](t, twice))
}

func TestSuppression_PointerType(t *testing.T) {
	c, err := autoprop.NewNoAutoPropertiesCustomization(reflect.TypeFor[*Customer]())
	require.NoError(t, err)
	k := newKernel(c.Customize(chain(registry.New())))

	p := resolve[*Customer](t, k)
	require.NotNil(t, p)
	assert.Equal(t, Customer{}, *p)
}

func TestSuppression_ComposesWithOtherBuilders(t *testing.T) {
	base := chain(registry.New())
	// A custom builder in front of the chain survives the rewrite.
	front := kernel.NewChain(apis.BuilderFunc(func(r apis.Request, _ apis.Context) (any, error) {
		if r.TargetType() == reflect.TypeFor[int]() {
			return 7, nil
		}
		return nil, apis.ErrNoSpecimen
	}), base)

	sup, err := specification.NewExactTypeSpecification(reflect.TypeFor[Named]())
	require.NoError(t, err)
	k := newKernel(autoprop.Suppress(sup).Customize(front))

	assert.Equal(t, Named{}, resolve[Named](t, k))
	a := resolve[Address](t, k)
	assert.Equal(t, 7, a.Number)
	assert.NotEmpty(t, a.Street)
}

func TestSuppression_BehindOpaqueBuilder(t *testing.T) {
	base := chain(registry.New())
	var calls int
	opaque := apis.BuilderFunc(func(r apis.Request, ctx apis.Context) (any, error) {
		calls++
		return base.Create(r, ctx)
	})

	c, err := autoprop.NewNoAutoPropertiesCustomization(reflect.TypeFor[Customer]())
	require.NoError(t, err)

	// Suppression applied outside the opaque builder.
	k := newKernel(c.Customize(opaque))
	assert.Equal(t, Customer{}, resolve[Customer](t, k))
	assert.Positive(t, calls)
	assert.NotEmpty(t, resolve[Address](t, k).Street)

	// An opaque builder applied after the suppression keeps it in force.
	wrapped := c.Customize(base)
	k = newKernel(apis.BuilderFunc(func(r apis.Request, ctx apis.Context) (any, error) {
		return wrapped.Create(r, ctx)
	}))
	assert.Equal(t, Customer{}, resolve[Customer](t, k))

	// Only members of the suppressed type stay at zero.
	sup, err := specification.NewExactTypeSpecification(reflect.TypeFor[Address]())
	require.NoError(t, err)
	k = newKernel(autoprop.Suppress(sup).Customize(opaque))
	h := resolve[Customer](t, k)
	assert.NotEmpty(t, h.Name)
	assert.Equal(t, Address{}, h.Home)
}

func TestSuppression_NilSpecIsNoop(t *testing.T) {
	base := chain(registry.New())
	assert.Same(t, base, autoprop.Suppress(nil).Customize(base))
}

func TestNoAutoProperties_GetCustomization(t *testing.T) {
	var marker autoprop.NoAutoProperties

	_, err := marker.GetCustomization(nil)
	assert.ErrorIs(t, err, apis.ErrInvalidArgument)

	_, err = autoprop.NewNoAutoPropertiesCustomization(nil)
	assert.ErrorIs(t, err, apis.ErrInvalidArgument)

	// Declared on a factory parameter: the parameter type is suppressed.
	param, err := request.Parameter(reflect.TypeOf(func(Customer) int { return 0 }), 0)
	require.NoError(t, err)
	cu, err := marker.GetCustomization(param)
	require.NoError(t, err)
	require.NotNil(t, cu)

	k := newKernel(cu.Customize(chain(registry.New())))
	assert.Equal(t, Customer{}, resolve[Customer](t, k))

	// Declared on a field.
	field, err := request.Field(reflect.TypeFor[Customer](), "Home")
	require.NoError(t, err)
	cu, err = marker.GetCustomization(field)
	require.NoError(t, err)
	k = newKernel(cu.Customize(chain(registry.New())))
	c := resolve[Customer](t, k)
	assert.NotEmpty(t, c.Name)
	assert.Equal(t, Address{}, c.Home)
}

func TestPopulator_Node(t *testing.T) {
	p := autoprop.NewPopulator(strategy.NewStringStrategy(), nil)
	require.Len(t, p.Children(), 1)
	assert.Panics(t, func() { p.WithChildren(nil) })
	assert.Same(t, p, p.Without(nil))
}
