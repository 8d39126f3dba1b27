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
	"fmt"

	"github.com/dop251/goja"
)

// jsProgram executes rule expressions using github.com/dop251/goja.
// The compiled program is shared; each evaluation gets its own runtime since a
// goja.Runtime is not safe for concurrent use.
type jsProgram struct {
	program *goja.Program
}

func compileJS(expression string) (program, error) {
	p, err := goja.Compile("", wrapExpression(expression), false)
	if err != nil {
		return nil, err
	}
	return jsProgram{program: p}, nil
}

func (p jsProgram) eval(env map[string]any) (any, error) {
	vm := goja.New()
	for k, v := range env {
		if err := vm.Set(k, v); err != nil {
			return nil, err
		}
	}
	value, err := vm.RunProgram(p.program)
	if err != nil {
		return nil, err
	}
	return value.Export(), nil
}

func wrapExpression(expression string) string {
	return fmt.Sprintf("(function(){ return (%s); })()", expression)
}
