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
)

func Test_Adjacency_01(t *testing.T) {
	op := &Op{Name: "alu", Latency: 1, Delay: 0, Limit: -1}
	//
	var graph Dfg
	a := graph.Add("a", op)
	b := graph.Add("b", op, a)
	graph.Add("c", op, a, b)
	//
	deps, uses := graph.Adjacency()
	//
	assert.Equal(t, [][]int{nil, {0}, {0, 1}}, deps)
	assert.Equal(t, [][]int{{1, 2}, {2}, nil}, uses)
}

func Test_Adjacency_02(t *testing.T) {
	op := &Op{Name: "alu", Latency: 1, Delay: 0, Limit: -1}
	//
	var graph Dfg
	a := graph.Add("a", op)
	// A statement consuming the same producer twice records two entries.
	graph.Add("b", op, a, a)
	//
	deps, uses := graph.Adjacency()
	//
	assert.Equal(t, [][]int{nil, {0, 0}}, deps)
	assert.Equal(t, [][]int{{1, 1}, nil}, uses)
}

func Test_Catalogue_01(t *testing.T) {
	var catalogue Catalogue
	//
	add := &Op{Name: "add", Latency: 1, Delay: 0.2, Limit: 4}
	assert.NoError(t, catalogue.Insert(add))
	assert.Equal(t, add, catalogue.Lookup("add"))
	assert.Nil(t, catalogue.Lookup("mul"))
	// Duplicate names are rejected.
	assert.Error(t, catalogue.Insert(&Op{Name: "add", Latency: 2, Delay: 0.4, Limit: 1}))
}

func Test_Catalogue_02(t *testing.T) {
	comb := &Op{Name: "xor", Latency: 0, Delay: 0.1, Limit: -1}
	phys := &Op{Name: "mul", Latency: 2, Delay: 0.4, Limit: 2}
	//
	assert.True(t, comb.Combinational())
	assert.False(t, phys.Combinational())
}
