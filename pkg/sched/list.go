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
	"github.com/consensys/go-dfsched/pkg/util/collection/bit"
	"github.com/consensys/go-dfsched/pkg/util/collection/heap"
)

// list overwrites every start cycle with the final schedule and returns its
// latency.  This is a cycle-driven greedy pass: a priority queue of ready
// statements is drained against the resource limits of physical operations
// and the per-cycle delay budget of combinational ones, the cycle counter
// advances, and statements whose producers have completed are promoted into
// the queue.  Within one cycle the drain runs to a fixpoint, so a chain of
// combinational statements whose accumulated delay fits the clock period is
// packed into a single cycle.
//
// Ready statements are ordered by their ALAP start (smaller first), then by
// larger operation delay (heavier combinational operations are placed before
// the chain budget tightens), and finally by smaller index, which makes the
// order total and the schedule deterministic.
func (p *scheduler) list() (int, *Error) {
	var (
		stmts = p.graph.Stmts
		n     = len(stmts)
		// Priority keys, snapshotted from the ALAP starts.
		priority = make([]int, n)
		// Statements already assigned a cycle.
		completed bit.Set
		// Statements with producers still pending.
		notReady bit.Set
		// Accumulated combinational delay per cycle and statement.
		ledger = make(map[int]map[int]float64)
		// Statements popped this cycle but unable to start in it.
		shelved []int
	)
	//
	before := func(a, b int) bool {
		if priority[a] != priority[b] {
			return priority[a] < priority[b]
		} else if stmts[a].Op.Delay != stmts[b].Op.Delay {
			return stmts[a].Op.Delay > stmts[b].Op.Delay
		}
		//
		return a < b
	}
	ready := heap.New(before)
	//
	for i, stmt := range stmts {
		priority[i] = stmt.StartCycle
		stmt.StartCycle = 0
		//
		if len(p.deps[i]) == 0 {
			ready.Push(i)
		} else {
			notReady.Insert(uint(i))
		}
	}
	//
	scheduled := 0
	idle := 0
	//
	for cycle := 1; scheduled < n; cycle++ {
		count := p.fillCycle(cycle, ready, &completed, &notReady, ledger, &shelved)
		scheduled += count
		// Progress guard.  A cycle which schedules nothing whilst no unit
		// remains busy changes nothing, so a repeat means non-termination.
		if count == 0 && !p.anyBusy(cycle) {
			if idle++; idle >= 2 {
				return 0, newError(SchedulerStuck, "no progress at cycle %d", cycle)
			}
		} else {
			idle = 0
		}
		// Shelved statements retry once the cycle advances.
		for _, i := range shelved {
			ready.Push(i)
		}
	}
	//
	latency := 0
	for _, stmt := range stmts {
		latency = max(latency, stmt.StartCycle+max(stmt.Op.Latency-1, 0))
	}
	//
	return latency, nil
}

// fillCycle schedules as many ready statements into the given cycle as the
// constraints admit, returning how many were scheduled.  Draining repeats
// until a fixpoint: a scheduled combinational statement completes within the
// cycle, and may thereby promote consumers which are themselves admissible
// in the same cycle.  A statement denied by the delay budget, or whose earliest
// admissible cycle lies ahead, is shelved for the next cycle; a statement
// denied by a saturated resource stops the drain outright, since everything
// behind it in the queue is less urgent.
func (p *scheduler) fillCycle(cycle int, ready *heap.Heap[int], completed *bit.Set,
	notReady *bit.Set, ledger map[int]map[int]float64, shelved *[]int) int {
	//
	var (
		stmts = p.graph.Stmts
		count = 0
	)
	//
	*shelved = (*shelved)[:0]
	//
	for {
		progress := false
		//
		for !ready.Empty() {
			i := ready.Pop()
			stmt := stmts[i]
			//
			if p.earliestStart(i) > cycle {
				// Producers bar this statement from the current cycle.
				*shelved = append(*shelved, i)
				continue
			}
			//
			if stmt.Op.Combinational() {
				// Admissible when the chain delay accumulated ahead of this
				// statement still fits the clock period.
				if used := ledger[cycle][i]; used <= p.period {
					stmt.StartCycle = cycle
					// Expose the extended chain to consumers placed in this
					// same cycle.
					for _, k := range p.uses[i] {
						raise(ledger, cycle, k, used+stmt.Op.Delay)
					}
				} else {
					*shelved = append(*shelved, i)
					continue
				}
			} else if p.active(cycle, stmt.Op) < stmt.Op.Limit {
				stmt.StartCycle = cycle
				// Seed the unit's delay at its final busy cycle.  Consumers
				// start no earlier than the following cycle (earliestStart),
				// so this entry is not read when they are placed.
				for _, k := range p.uses[i] {
					if stmts[k].Op.Combinational() {
						raise(ledger, cycle+stmt.Op.Latency-1, k, stmt.Op.Delay)
					}
				}
			} else {
				// Resource saturated: stop draining this cycle.
				ready.Push(i)
				return count
			}
			//
			completed.Insert(uint(i))
			count++
			progress = true
		}
		//
		if !p.promote(ready, completed, notReady) && !progress {
			return count
		}
	}
}

// promote moves every statement whose producers have all completed from the
// not-ready set into the ready queue, returning true if any moved.  Whether
// such a statement can start in the current cycle is decided at drain time.
func (p *scheduler) promote(ready *heap.Heap[int], completed *bit.Set, notReady *bit.Set) bool {
	promoted := false
	//
	for i := range p.graph.Stmts {
		if !notReady.Contains(uint(i)) {
			continue
		}
		//
		enabled := true
		//
		for _, j := range p.deps[i] {
			if !completed.Contains(uint(j)) {
				enabled = false
				break
			}
		}
		//
		if enabled {
			notReady.Remove(uint(i))
			ready.Push(i)
			//
			promoted = true
		}
	}
	//
	return promoted
}

// earliestStart determines the first cycle the given statement may start in,
// as dictated by its producers, all of which must have been scheduled
// already.  A producer with latency l >= 1 releases its consumers at cycle
// start+l; a combinational producer releases them within its own cycle.
func (p *scheduler) earliestStart(i int) int {
	earliest := 1
	//
	for _, j := range p.deps[i] {
		pred := p.graph.Stmts[j]
		release := pred.StartCycle + pred.Op.Latency
		//
		if pred.Op.Latency == 0 {
			release = pred.StartCycle
		}
		//
		earliest = max(earliest, release)
	}
	//
	return earliest
}

// active counts the scheduled statements of the given operation kind whose
// busy interval covers the given cycle.
func (p *scheduler) active(cycle int, op *dfg.Op) int {
	count := 0
	//
	for _, stmt := range p.graph.Stmts {
		if stmt.StartCycle > 0 && stmt.Op.Name == op.Name &&
			cycle >= stmt.StartCycle && cycle < stmt.StartCycle+stmt.Op.Latency {
			count++
		}
	}
	//
	return count
}

// anyBusy reports whether some scheduled statement is still occupying a unit
// at the given cycle, meaning a retirement can yet unblock progress.
func (p *scheduler) anyBusy(cycle int) bool {
	for _, stmt := range p.graph.Stmts {
		if stmt.StartCycle > 0 && cycle < stmt.StartCycle+stmt.Op.Latency {
			return true
		}
	}
	//
	return false
}

// raise records accumulated combinational delay ahead of the given statement
// at the given cycle, keeping the maximum across all paths reaching it.
func raise(ledger map[int]map[int]float64, cycle int, stmt int, delay float64) {
	row := ledger[cycle]
	//
	if row == nil {
		row = make(map[int]float64)
		ledger[cycle] = row
	}
	//
	if delay > row[stmt] {
		row[stmt] = delay
	}
}
