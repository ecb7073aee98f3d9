// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

// StopReason records why a worker's iterative loop terminated.
type StopReason int

const (
	// StopUnknown means the loop has not terminated yet.
	StopUnknown StopReason = iota

	// StopCondition means the worker signaled completion via [Stopper].
	StopCondition

	// StopMaxLoops means the iteration cap was reached.
	StopMaxLoops

	// StopError means an invocation failed.
	StopError

	// StopCancelled means the caller cancelled the run.
	StopCancelled
)

// String returns a string representation of the StopReason.
func (r StopReason) String() string {
	switch r {
	case StopCondition:
		return "stop-condition"
	case StopMaxLoops:
		return "max-loops"
	case StopError:
		return "error"
	case StopCancelled:
		return "cancelled"
	}
	return "unknown"
}

// MarshalText implements [encoding.TextMarshaler].
func (r StopReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// LoopResult is the per-worker record produced by one loop-controlled
// execution within a stage.
//
// A LoopResult is created fresh for every stage execution and folded into
// the run's [TaskContext] and trace; it is not retained across runs.
type LoopResult struct {
	// Worker is the name of the executed worker.
	Worker string

	// Iterations is the number of completed invocations.
	Iterations int

	// Output is the finalized output of the last completed invocation.
	// Nil when the loop terminated before any invocation completed.
	Output *TaskContext

	// Reason records why the loop terminated.
	Reason StopReason

	// Err is the invocation failure, if Reason is [StopError] or
	// [StopCancelled].
	Err error
}
