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
	"fmt"

	"github.com/consensys/go-dfsched/pkg/dfg"
)

// Validate checks a scheduled graph against the guarantees the scheduler is
// supposed to provide, reporting every violation found: statements must be
// topologically numbered and carry a positive start cycle; no consumer may
// start before its producers allow; no operation kind may exceed its
// resource limit in any cycle; and the delay accumulated ahead of any
// combinational statement within its own cycle may not exceed the clock
// period (the statement's own delay is not counted).  An empty result means
// the schedule is well formed.
func Validate(graph *dfg.Dfg, period float64) []error {
	var errs []error
	//
	deps, _ := graph.Adjacency()
	//
	errs = append(errs, validateNumbering(graph, deps)...)
	errs = append(errs, validatePrecedence(graph, deps)...)
	errs = append(errs, validateResources(graph)...)
	errs = append(errs, validateChains(graph, deps, period)...)
	//
	return errs
}

// validateNumbering checks that indices match positions and form a
// topological order, and that every statement has been scheduled.
func validateNumbering(graph *dfg.Dfg, deps [][]int) []error {
	var errs []error
	//
	for i, stmt := range graph.Stmts {
		if stmt.Idx != i {
			errs = append(errs, fmt.Errorf("statement \"%s\" has index %d at position %d",
				stmt.Name, stmt.Idx, i))
		}
		//
		if stmt.StartCycle < 1 {
			errs = append(errs, fmt.Errorf("statement \"%s\" is unscheduled", stmt.Name))
		}
		//
		for _, j := range deps[i] {
			if j >= i {
				errs = append(errs, fmt.Errorf("statement \"%s\" precedes its producer %d",
					stmt.Name, j))
			}
		}
	}
	//
	return errs
}

// validatePrecedence checks that every consumer starts late enough for each
// of its producers to have delivered a result.  A producer with latency
// l >= 1 delivers after its busy interval; a combinational producer may
// share its consumer's cycle.
func validatePrecedence(graph *dfg.Dfg, deps [][]int) []error {
	var errs []error
	//
	for i, stmt := range graph.Stmts {
		for _, j := range deps[i] {
			pred := graph.Stmts[j]
			earliest := pred.StartCycle + pred.Op.Latency
			//
			if pred.Op.Latency == 0 {
				earliest = pred.StartCycle
			}
			//
			if stmt.StartCycle < earliest {
				errs = append(errs, fmt.Errorf(
					"statement \"%s\" starts at cycle %d before its producer \"%s\" delivers (cycle %d)",
					stmt.Name, stmt.StartCycle, pred.Name, earliest))
			}
		}
	}
	//
	return errs
}

// validateResources checks that, in every cycle, the number of busy units of
// any limited operation kind stays within its limit.
func validateResources(graph *dfg.Dfg) []error {
	var (
		errs []error
		// Busy unit count per operation kind and cycle.
		busy = make(map[string]map[int]int)
		ops  = make(map[string]*dfg.Op)
	)
	//
	for _, stmt := range graph.Stmts {
		if stmt.Op.Combinational() {
			continue
		}
		//
		if busy[stmt.Op.Name] == nil {
			busy[stmt.Op.Name] = make(map[int]int)
			ops[stmt.Op.Name] = stmt.Op
		}
		//
		for c := stmt.StartCycle; c < stmt.StartCycle+stmt.Op.Latency; c++ {
			busy[stmt.Op.Name][c]++
		}
	}
	//
	for name, cycles := range busy {
		op := ops[name]
		worst, at := 0, 0
		//
		for c, count := range cycles {
			if count > worst || (count == worst && c < at) {
				worst, at = count, c
			}
		}
		//
		if worst > op.Limit {
			errs = append(errs, fmt.Errorf("operation \"%s\" exceeds limit %d at cycle %d (%d active)",
				name, op.Limit, at, worst))
		}
	}
	//
	return errs
}

// validateChains checks the per-cycle delay budget: the combinational delay
// accumulated ahead of any statement within its own cycle must fit the clock
// period.  Producers contribute when they chain into the statement's cycle,
// either combinationally within the same cycle, or as a unit whose output
// settles there.
func validateChains(graph *dfg.Dfg, deps [][]int, period float64) []error {
	var (
		errs []error
		// Delay accumulated ahead of each statement in its cycle.
		entering = make([]float64, len(graph.Stmts))
	)
	// Statements are visited in topological order, so chains accumulate in
	// producer-to-consumer direction.
	for i, stmt := range graph.Stmts {
		for _, j := range deps[i] {
			pred := graph.Stmts[j]
			//
			if pred.Op.Combinational() && pred.StartCycle == stmt.StartCycle {
				entering[i] = max(entering[i], entering[j]+pred.Op.Delay)
			} else if !pred.Op.Combinational() &&
				pred.StartCycle+pred.Op.Latency-1 == stmt.StartCycle {
				entering[i] = max(entering[i], pred.Op.Delay)
			}
		}
		//
		if stmt.Op.Combinational() && entering[i] > period {
			errs = append(errs, fmt.Errorf(
				"statement \"%s\" sits on a chain of delay %g exceeding clock period %g",
				stmt.Name, entering[i], period))
		}
	}
	//
	return errs
}
