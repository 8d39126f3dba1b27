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
	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// exprProgram executes rule expressions using github.com/expr-lang/expr.
type exprProgram struct {
	program *exprvm.Program
}

func compileExpr(expression string) (program, error) {
	p, err := exprlang.Compile(expression,
		exprlang.Env(map[string]any{
			"kind":          "",
			"name":          "",
			"targetType":    "",
			"declaringType": "",
			"memberType":    "",
			"position":      0,
		}),
		exprlang.AllowUndefinedVariables(),
		exprlang.AsBool(),
	)
	if err != nil {
		return nil, err
	}
	return exprProgram{program: p}, nil
}

func (p exprProgram) eval(env map[string]any) (any, error) {
	return exprlang.Run(p.program, env)
}
