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

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dirpx.dev/fixture/apis"
)

var (
	// ErrUnknownRecursion is returned when a file names an unsupported recursion policy.
	ErrUnknownRecursion = errors.New("fixture(config): unknown recursion policy")
	// ErrInvalidRule is returned when a suppress rule has no engine or expression.
	ErrInvalidRule = errors.New("fixture(config): rule requires engine and expr")
)

// file mirrors apis.Config in YAML form. Pointers distinguish "absent" from zero.
type file struct {
	MaxDepth       *int        `yaml:"max_depth"`
	RepeatCount    *int        `yaml:"repeat_count"`
	Recursion      string      `yaml:"recursion"`
	AutoProperties *bool       `yaml:"auto_properties"`
	Suppress       []apis.Rule `yaml:"suppress"`
}

// Load reads a YAML configuration file. Keys that are absent keep their defaults.
//
//	max_depth: 32
//	repeat_count: 2
//	recursion: omit
//	auto_properties: true
//	suppress:
//	  - engine: expr
//	    expr: 'kind == "type" && targetType == "main.Order"'
func Load(path string) (apis.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return apis.Config{}, fmt.Errorf("fixture(config): read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML configuration document on top of DefaultConfig.
func Parse(data []byte) (apis.Config, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return apis.Config{}, fmt.Errorf("fixture(config): decode: %w", err)
	}

	opts := make([]Option, 0, 5)
	if f.MaxDepth != nil {
		opts = append(opts, WithMaxDepth(*f.MaxDepth))
	}
	if f.RepeatCount != nil {
		opts = append(opts, WithRepeatCount(*f.RepeatCount))
	}
	if f.Recursion != "" {
		p := apis.RecursionPolicy(f.Recursion)
		switch p {
		case apis.RecursionThrow, apis.RecursionOmit, apis.RecursionZero:
		default:
			return apis.Config{}, fmt.Errorf("%w: %q", ErrUnknownRecursion, f.Recursion)
		}
		opts = append(opts, WithRecursion(p))
	}
	if f.AutoProperties != nil {
		opts = append(opts, WithAutoProperties(*f.AutoProperties))
	}
	for i, r := range f.Suppress {
		if r.Engine == "" || r.Expr == "" {
			return apis.Config{}, fmt.Errorf("%w (suppress[%d])", ErrInvalidRule, i)
		}
	}
	if len(f.Suppress) > 0 {
		opts = append(opts, WithSuppress(f.Suppress...))
	}
	return NewConfig(opts...), nil
}
