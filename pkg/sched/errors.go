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
)

// ErrorKind classifies the ways in which a scheduling run can fail.  All of
// them are fatal to the run in question, and leave the graph in an
// unspecified (partially mutated) state.
type ErrorKind int

const (
	// CycleDetected indicates the graph admits no topological order.
	CycleDetected ErrorKind = iota
	// UnknownOp indicates a statement refers to an operation kind which is
	// absent from the catalogue.
	UnknownOp
	// SchedulerStuck indicates the list scheduler failed to make progress.
	// This guards against non-termination and should not arise on
	// well-formed inputs.
	SchedulerStuck
	// InvalidConfig indicates an unusable configuration, such as a
	// non-positive clock period, or an operation whose delay alone exceeds
	// the clock period.
	InvalidConfig
)

func (k ErrorKind) String() string {
	switch k {
	case CycleDetected:
		return "cycle detected"
	case UnknownOp:
		return "unknown operation"
	case SchedulerStuck:
		return "scheduler stuck"
	case InvalidConfig:
		return "invalid configuration"
	default:
		return "unknown error"
	}
}

// Error is a structured error which retains the kind of failure encountered,
// along with an error message.
type Error struct {
	// Kind of failure being reported.
	kind ErrorKind
	// Error message being reported.
	msg string
}

// newError constructs a scheduling error of the given kind.
func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{kind, fmt.Sprintf(format, args...)}
}

// Kind returns the kind of failure being reported.
func (p *Error) Kind() ErrorKind {
	return p.kind
}

// Message returns the message to be reported.
func (p *Error) Message() string {
	return p.msg
}

// Error implements the error interface.
func (p *Error) Error() string {
	return fmt.Sprintf("%s: %s", p.kind, p.msg)
}
