// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
)

// Worker represents a single task-executing unit the engine can invoke.
//
// A worker is a black box: it may call a language model, a database, or any
// other backend. The engine only sequences invocations and routes the
// resulting [TaskContext] values; it never inspects what a worker produced.
type Worker interface {
	// Name returns the worker's stable identifier.
	//
	// Worker name must be unique within an orchestration and must match the
	// flow token alphabet (letters, digits, '_' and '-').
	Name() string

	// Invoke performs one unit of work: a pure function of the input plus the
	// worker's internal state.
	//
	// Blocking work (waiting on an external backend) happens inside Invoke,
	// so implementations must honor ctx cancellation.
	Invoke(ctx context.Context, input *TaskContext) (*TaskContext, error)
}

// Stopper is an optional extension of [Worker].
//
// When a worker implements Stopper, the loop controller calls ShouldStop
// after every invocation and terminates the worker's loop early on true,
// analogous to a sentinel "done" marker appearing in output. Workers that do
// not implement Stopper never stop early.
type Stopper interface {
	// ShouldStop reports whether output signals that the worker's iterative
	// loop is finished.
	ShouldStop(output *TaskContext) bool
}

// WorkerRef is a named reference to a registered [Worker] inside an
// [ExecutionPlan].
//
// The same worker may be referenced from multiple stages of one plan; each
// stage gets its own WorkerRef. The engine holds refs read-only and never
// owns the worker lifecycle.
type WorkerRef struct {
	// Name of the referenced worker. Unique within its stage.
	Name string

	// Worker is the caller-supplied handle satisfying the worker contract.
	Worker Worker

	// MaxLoops overrides the run-level iteration cap for this reference.
	//
	// Zero means the run configuration applies.
	MaxLoops int
}
