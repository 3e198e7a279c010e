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

// alap assigns every statement the latest start cycle under which all of its
// consumers still meet the given deadline, then shifts all starts so the
// earliest lies at cycle 1, and returns the post-shift latency.  The start
// cycles left behind by this pass are the priority keys consumed by the list
// pass: a smaller start means less mobility, hence greater urgency.  The
// shift tracks the minimum over non-sink statements only, so on graphs
// consisting solely of sinks the absolute values may drop below 1; only
// their relative order matters downstream.
func (p *scheduler) alap(deadline int) int {
	stmts := p.graph.Stmts
	earliest := deadline
	//
	for _, stmt := range stmts {
		stmt.StartCycle = 0
	}
	// Statements are visited in reverse topological order, so every consumer
	// is assigned before its producers.
	for i := len(stmts) - 1; i >= 0; i-- {
		stmt := stmts[i]
		//
		if len(p.uses[i]) == 0 {
			stmt.StartCycle = deadline - max(stmt.Op.Latency-1, 0)
		} else {
			latest := deadline
			//
			for _, k := range p.uses[i] {
				succ := stmts[k]
				latest = min(latest, succ.StartCycle-max(stmt.Op.Latency, 1))
			}
			//
			stmt.StartCycle = latest
			earliest = min(earliest, latest)
		}
	}
	// Shift so the earliest start is cycle 1.
	latency := 0
	//
	for _, stmt := range stmts {
		stmt.StartCycle -= earliest - 1
		latency = max(latency, stmt.StartCycle+max(stmt.Op.Latency-1, 0))
	}
	//
	return latency
}
