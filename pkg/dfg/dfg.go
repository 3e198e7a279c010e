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

// Package dfg provides the data model consumed by the scheduling core: an
// operation catalogue, statements, and the data-flow graph connecting them.
// Graphs are constructed either programmatically or from their textual
// description (see Parse), and are subsequently annotated in place by the
// scheduler with a start cycle for every statement.
package dfg

import (
	"fmt"
)

// Stmt is a single node of a data-flow graph: one instance of an operation,
// awaiting assignment to a clock cycle.
type Stmt struct {
	// Idx gives the position of this statement within its enclosing graph.
	// After canonicalization, Idx is also the statement's topological rank.
	Idx int
	// Name of the value this statement defines.
	Name string
	// Op identifies the operation kind being performed.
	Op *Op
	// Operands are the producer statements whose results this statement
	// consumes.  External inputs (values not defined by any statement) are
	// not represented here.
	Operands []*Stmt
	// StartCycle is the 1-based cycle this statement has been scheduled at,
	// or zero whilst unscheduled.
	StartCycle int
}

func (p *Stmt) String() string {
	return fmt.Sprintf("%s@%d", p.Name, p.StartCycle)
}

// Dfg is an ordered sequence of statements whose edges are implied by each
// statement's operands.  The scheduler is the sole writer of statement
// indices and start cycles; the edge structure itself is never mutated.
type Dfg struct {
	// Stmts holds the statements of this graph, ordered by index.
	Stmts []*Stmt
}

// Add appends a new statement to this graph, assigning its index, and
// returns it so callers can wire it as an operand of later statements.
func (p *Dfg) Add(name string, op *Op, operands ...*Stmt) *Stmt {
	stmt := &Stmt{
		Idx:      len(p.Stmts),
		Name:     name,
		Op:       op,
		Operands: operands,
	}
	p.Stmts = append(p.Stmts, stmt)
	//
	return stmt
}

// Len returns the number of statements in this graph.
func (p *Dfg) Len() int {
	return len(p.Stmts)
}

// Adjacency derives the two parallel neighbour structures used throughout
// the scheduling core: deps[i] lists the producers consumed by statement i,
// whilst uses[i] lists the consumers reading statement i.  Both respect
// multiplicity, so a statement consuming the same producer twice records two
// entries.  This is a pure query of the graph.
func (p *Dfg) Adjacency() (deps [][]int, uses [][]int) {
	n := len(p.Stmts)
	deps = make([][]int, n)
	uses = make([][]int, n)
	//
	for i, stmt := range p.Stmts {
		for _, operand := range stmt.Operands {
			deps[i] = append(deps[i], operand.Idx)
			uses[operand.Idx] = append(uses[operand.Idx], i)
		}
	}
	//
	return deps, uses
}
