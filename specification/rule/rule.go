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

// Package rule provides specifications written as expressions and evaluated by
// an embedded engine: expr (github.com/expr-lang/expr), CEL
// (github.com/google/cel-go) or JavaScript (github.com/dop251/goja).
//
// Every engine sees the same environment describing the request:
//
//	kind           "type", "seeded", "property", "field" or "parameter"
//	name           member name ("" for type requests)
//	targetType     type of the value to produce, e.g. "main.Order"
//	declaringType  owning struct or func type ("" for type requests)
//	memberType     member type ("" for type requests)
//	position       parameter index (0 otherwise)
//	seed           seed of a seeded request (nil otherwise)
//
// Expressions must yield a boolean. Compilation errors are reported by New;
// evaluation errors and non-boolean results make IsSatisfiedBy return false.
package rule

import (
	"errors"
	"fmt"
	"log/slog"

	"dirpx.dev/fixture/apis"
)

const (
	// EngineExpr selects github.com/expr-lang/expr.
	EngineExpr = "expr"
	// EngineCEL selects github.com/google/cel-go.
	EngineCEL = "cel"
	// EngineJS selects github.com/dop251/goja.
	EngineJS = "js"
)

var (
	// ErrUnknownEngine is returned for an engine name other than expr, cel or js.
	ErrUnknownEngine = errors.New("fixture(rule): unknown engine")
	// ErrEmptyExpression is returned for an empty expression.
	ErrEmptyExpression = errors.New("fixture(rule): expression must not be empty")
	// ErrNotBoolean is reported when an expression yields a non-boolean value.
	ErrNotBoolean = errors.New("fixture(rule): expression did not yield a boolean")
)

// program is a compiled expression.
type program interface {
	eval(env map[string]any) (any, error)
}

// Option configures a rule Specification.
type Option func(*Specification)

// WithLogger sets the logger that receives evaluation failures at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(s *Specification) {
		if l != nil {
			s.logger = l
		}
	}
}

// Specification is an apis.Specification backed by a compiled expression.
// It is immutable and safe for concurrent use.
type Specification struct {
	engine string
	expr   string
	prog   program
	logger *slog.Logger
}

// Ensure Specification implements apis.Specification.
var _ apis.Specification = (*Specification)(nil)

// New compiles expression for engine.
func New(engine, expression string, opts ...Option) (*Specification, error) {
	if expression == "" {
		return nil, wrapEvaluationError(engine, expression, ErrEmptyExpression)
	}
	var (
		prog program
		err  error
	)
	switch engine {
	case EngineExpr:
		prog, err = compileExpr(expression)
	case EngineCEL:
		prog, err = compileCEL(expression)
	case EngineJS:
		prog, err = compileJS(expression)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
	if err != nil {
		return nil, wrapEvaluationError(engine, expression, err)
	}
	s := &Specification{
		engine: engine,
		expr:   expression,
		prog:   prog,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// FromRule compiles an apis.Rule.
func FromRule(r apis.Rule, opts ...Option) (*Specification, error) {
	return New(r.Engine, r.Expr, opts...)
}

// Engine returns the engine name.
func (s *Specification) Engine() string { return s.engine }

// Expression returns the source expression.
func (s *Specification) Expression() string { return s.expr }

// IsSatisfiedBy implements apis.Specification.
func (s *Specification) IsSatisfiedBy(r apis.Request) bool {
	if r == nil {
		panic(apis.InvalidArgument("request"))
	}
	ok, err := s.Evaluate(r)
	if err != nil {
		s.logger.Debug("rule evaluation failed",
			slog.String("engine", s.engine),
			slog.String("expr", s.expr),
			slog.String("request", r.String()),
			slog.Any("error", err),
		)
		return false
	}
	return ok
}

// Evaluate runs the expression against r and reports evaluation errors.
func (s *Specification) Evaluate(r apis.Request) (bool, error) {
	if r == nil {
		return false, apis.InvalidArgument("request")
	}
	out, err := s.prog.eval(Environment(r))
	if err != nil {
		return false, wrapEvaluationError(s.engine, s.expr, err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, wrapEvaluationError(s.engine, s.expr, fmt.Errorf("%w: got %T", ErrNotBoolean, out))
	}
	return b, nil
}

// Environment returns the variables an expression sees for r.
func Environment(r apis.Request) map[string]any {
	env := map[string]any{
		"kind":          "",
		"name":          "",
		"targetType":    typeName(r.TargetType()),
		"declaringType": "",
		"memberType":    "",
		"position":      0,
		"seed":          nil,
	}
	switch r := r.(type) {
	case apis.TypeRequest:
		env["kind"] = "type"
	case apis.SeededRequest:
		env["kind"] = "seeded"
		env["seed"] = r.Seed
	case apis.MemberRequest:
		env["kind"] = r.Kind.String()
		env["name"] = r.Name
		env["declaringType"] = typeName(r.DeclaringType)
		env["memberType"] = typeName(r.MemberType)
		env["position"] = r.Position
	}
	return env
}

func typeName(t interface{ String() string }) string {
	if t == nil {
		return ""
	}
	return t.String()
}
