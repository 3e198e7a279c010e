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
package sched

import (
	"github.com/consensys/go-dfsched/pkg/dfg"
)

// canonicalize reorders the statements of the graph so that indices
// themselves form a topological order, meaning every producer has a smaller
// index than its consumers.  Statement objects retain their identity; only
// their index and their position in the sequence change.  The adjacency
// indices are rewritten to the new numbering.  Fails with CycleDetected if
// the graph admits no topological order.
func (p *scheduler) canonicalize() *Error {
	if p.ordered() {
		// Fast path: indices already topological.
		return nil
	}
	//
	stmts := p.graph.Stmts
	n := len(stmts)
	// Count incoming edges per statement.
	indeg := make([]int, n)
	for i := range stmts {
		indeg[i] = len(p.deps[i])
	}
	// Seed worklist with all statements having no producers.  A FIFO keeps
	// the resulting order stable across runs.
	var worklist []int
	//
	for i := 0; i < n; i++ {
		if indeg[i] == 0 {
			worklist = append(worklist, i)
		}
	}
	//
	var order []int
	//
	for len(worklist) > 0 {
		v := worklist[0]
		worklist = worklist[1:]
		order = append(order, v)
		//
		for _, w := range p.uses[v] {
			indeg[w]--
			if indeg[w] == 0 {
				worklist = append(worklist, w)
			}
		}
	}
	//
	if len(order) < n {
		return newError(CycleDetected, "graph admits no topological order")
	}
	// Reposition statements and assign new indices.
	reordered := make([]*dfg.Stmt, n)
	//
	for i, old := range order {
		reordered[i] = stmts[old]
		reordered[i].Idx = i
	}
	//
	p.graph.Stmts = reordered
	// Translate both adjacency indices through the permutation.
	ndeps := make([][]int, n)
	nuses := make([][]int, n)
	//
	for i, old := range order {
		for _, dep := range p.deps[old] {
			ndeps[i] = append(ndeps[i], stmts[dep].Idx)
		}
		//
		for _, use := range p.uses[old] {
			nuses[i] = append(nuses[i], stmts[use].Idx)
		}
	}
	//
	p.deps = ndeps
	p.uses = nuses
	//
	return nil
}

// ordered checks whether statement indices already respect topology, that
// is, every producer index is smaller than its consumer's.
func (p *scheduler) ordered() bool {
	for _, stmt := range p.graph.Stmts {
		for _, dep := range p.deps[stmt.Idx] {
			if dep >= stmt.Idx {
				return false
			}
		}
	}
	//
	return true
}
