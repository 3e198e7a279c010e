// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package dfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_01(t *testing.T) {
	graph, catalogue, err := Parse(`
		# a three statement chain
		op add 1 0.2 4
		input x y

		t0 = add x y
		t1 = add t0 x
		t2 = add t1 t1
	`)
	require.NoError(t, err)
	require.Len(t, graph.Stmts, 3)
	//
	add := catalogue.Lookup("add")
	require.NotNil(t, add)
	assert.Equal(t, 1, add.Latency)
	assert.Equal(t, 0.2, add.Delay)
	assert.Equal(t, 4, add.Limit)
	// External inputs leave no operands behind.
	assert.Empty(t, graph.Stmts[0].Operands)
	//
	deps, _ := graph.Adjacency()
	assert.Equal(t, [][]int{nil, {0}, {1, 1}}, deps)
}

// Forward references are resolved, so descriptions need not be written in
// topological order.
func Test_Parse_02(t *testing.T) {
	graph, _, err := Parse(`
		op not 0 0.1 -1
		input x
		t0 = not t1
		t1 = not x
	`)
	require.NoError(t, err)
	//
	deps, uses := graph.Adjacency()
	assert.Equal(t, [][]int{{1}, nil}, deps)
	assert.Equal(t, [][]int{nil, {0}}, uses)
}

func Test_Parse_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
	}{
		{"malformed op", "op add 1 0.2", 1},
		{"negative latency", "op add -1 0.2 4", 1},
		{"negative delay", "op add 1 -0.2 4", 1},
		{"bad limit", "op add 1 0.2 lots", 1},
		{"duplicate op", "op add 1 0.2 4\nop add 1 0.2 4", 2},
		{"empty input", "input", 1},
		{"duplicate input", "input x x", 1},
		{"unknown operation", "input x\nt0 = mystery x", 2},
		{"duplicate value", "op add 1 0.2 4\ninput x\nt0 = add x\nt0 = add x", 4},
		{"undefined operand", "op add 1 0.2 4\nt0 = add nowhere", 2},
		{"malformed line", "first second", 1},
		{"short statement", "t0 =", 1},
	}
	//
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.text)
			require.Error(t, err)
			//
			serr, ok := err.(*SyntaxError)
			require.True(t, ok, "expected a syntax error, got %v", err)
			assert.Equal(t, tt.line, serr.Line())
		})
	}
}
