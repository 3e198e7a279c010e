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

// Package sched implements resource- and delay-constrained scheduling of a
// data-flow graph onto discrete clock cycles, as found in high-level
// synthesis.  Scheduling proceeds in passes: the graph is first reordered
// into topological form; an As-Soon-As-Possible pass determines a lower
// bound on the overall latency; an As-Late-As-Possible pass against that
// bound yields a priority for every statement; and, finally, a cycle-driven
// list scheduler assigns each statement its start cycle whilst respecting
// per-operation resource limits and the per-cycle combinational delay
// budget.
package sched

import (
	"github.com/consensys/go-dfsched/pkg/dfg"
	log "github.com/sirupsen/logrus"
)

// Schedule assigns a start cycle to every statement of the given graph, and
// returns the overall schedule latency in cycles.  Statements are renumbered
// so that their indices form a topological order of the graph.  The clock
// period bounds the combinational delay which may accumulate within any one
// cycle.  On failure the graph may have been partially mutated, and should
// be discarded by the caller.
func Schedule(graph *dfg.Dfg, catalogue dfg.Catalogue, period float64) (int, error) {
	if err := checkConfig(graph, catalogue, period); err != nil {
		return 0, err
	}
	// Construct adjacency indices
	deps, uses := graph.Adjacency()
	s := &scheduler{graph, period, deps, uses}
	// Establish topological numbering
	if err := s.canonicalize(); err != nil {
		return 0, err
	}
	// Determine lower bound on latency
	latency := s.asap()
	log.Debugf("asap pass gave latency %d", latency)
	// Determine scheduling priorities
	latency = s.alap(latency)
	log.Debugf("alap pass gave latency %d", latency)
	// Assign final start cycles
	latency, err := s.list()
	if err != nil {
		return 0, err
	}
	//
	log.Debugf("list pass gave latency %d", latency)
	//
	return latency, nil
}

// scheduler packages the per-run state shared between the scheduling passes:
// the graph being scheduled, the clock period, and the adjacency indices.
// The adjacency indices are rewritten when the graph is renumbered, and are
// discarded when the run completes.
type scheduler struct {
	graph  *dfg.Dfg
	period float64
	// deps[i] holds the producers consumed by statement i.
	deps [][]int
	// uses[i] holds the consumers reading statement i.
	uses [][]int
}

// checkConfig rejects configurations under which no valid schedule can
// exist, before any pass begins.
func checkConfig(graph *dfg.Dfg, catalogue dfg.Catalogue, period float64) *Error {
	if period <= 0 {
		return newError(InvalidConfig, "clock period must be positive (got %g)", period)
	}
	//
	for _, stmt := range graph.Stmts {
		if stmt.Op == nil || catalogue.Lookup(stmt.Op.Name) == nil {
			return newError(UnknownOp, "statement \"%s\" has no catalogue entry", stmt.Name)
		} else if stmt.Op.Delay > period {
			return newError(InvalidConfig, "operation %s cannot fit in clock period %g",
				stmt.Op, period)
		}
	}
	//
	return nil
}
