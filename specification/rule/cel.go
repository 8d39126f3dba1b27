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

package rule

import (
	celgo "github.com/google/cel-go/cel"
)

// celProgram executes rule expressions using github.com/google/cel-go.
type celProgram struct {
	program celgo.Program
}

func celEnv() (*celgo.Env, error) {
	return celgo.NewEnv(
		celgo.Variable("kind", celgo.StringType),
		celgo.Variable("name", celgo.StringType),
		celgo.Variable("targetType", celgo.StringType),
		celgo.Variable("declaringType", celgo.StringType),
		celgo.Variable("memberType", celgo.StringType),
		celgo.Variable("position", celgo.IntType),
		celgo.Variable("seed", celgo.DynType),
	)
}

func compileCEL(expression string) (program, error) {
	env, err := celEnv()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, err
	}
	return celProgram{program: prg}, nil
}

func (p celProgram) eval(env map[string]any) (any, error) {
	activation := make(map[string]any, len(env))
	for k, v := range env {
		activation[k] = v
	}
	// CEL integers are 64-bit.
	if pos, ok := env["position"].(int); ok {
		activation["position"] = int64(pos)
	}
	out, _, err := p.program.Eval(activation)
	if err != nil {
		return nil, err
	}
	return out.Value(), nil
}
