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

// asap assigns every statement the earliest start cycle consistent with the
// completion of its producers, and returns the resulting latency, which is a
// lower bound for the schedule overall.  A producer with latency l >= 1
// completes on cycle start+l-1 and its consumers begin the following cycle;
// a zero-latency producer admits its consumers one cycle later.  In other
// words, this pass never chains combinational operations within a cycle.
// Chaining is the list pass's job; the conservative figure computed here
// serves only as its deadline.
func (p *scheduler) asap() int {
	stmts := p.graph.Stmts
	latency := 0
	//
	for _, stmt := range stmts {
		stmt.StartCycle = 0
	}
	// Statements are visited in (topological) index order, so every producer
	// is assigned before its consumers.
	for i, stmt := range stmts {
		if len(p.deps[i]) == 0 {
			stmt.StartCycle = 1
		}
		//
		for _, j := range p.deps[i] {
			pred := stmts[j]
			completion := pred.StartCycle + max(pred.Op.Latency-1, 0)
			stmt.StartCycle = max(stmt.StartCycle, completion+1)
		}
		//
		latency = max(latency, stmt.StartCycle+max(stmt.Op.Latency-1, 0))
	}
	//
	return latency
}
