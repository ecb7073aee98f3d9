// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"fmt"
	"strings"
)

// UnknownWorkerError reports a flow-expression token that names no
// registered worker. Parse-time, non-retryable.
type UnknownWorkerError struct {
	// Name is the unresolved token.
	Name string
}

// Error returns a string representation of the [UnknownWorkerError].
func (e *UnknownWorkerError) Error() string {
	return fmt.Sprintf("unknown worker %q in flow expression", e.Name)
}

// EmptyFlowError reports an empty flow expression or an empty segment after
// trimming. Parse-time, non-retryable.
type EmptyFlowError struct {
	// Segment is the zero-based index of the empty segment, or -1 when the
	// whole expression is empty.
	Segment int
}

// Error returns a string representation of the [EmptyFlowError].
func (e *EmptyFlowError) Error() string {
	if e.Segment < 0 {
		return "empty flow expression"
	}
	return fmt.Sprintf("empty segment %d in flow expression", e.Segment)
}

// DuplicateInStageError reports a worker name appearing twice within one
// concurrent segment. Parse-time, non-retryable.
type DuplicateInStageError struct {
	// Name is the duplicated worker name.
	Name string

	// Stage is the zero-based index of the offending segment.
	Stage int
}

// Error returns a string representation of the [DuplicateInStageError].
func (e *DuplicateInStageError) Error() string {
	return fmt.Sprintf("worker %q appears twice in concurrent segment %d", e.Name, e.Stage)
}

// DuplicateWorkerError reports a worker registered under an already taken
// name.
type DuplicateWorkerError struct {
	// Name is the contested worker name.
	Name string
}

// Error returns a string representation of the [DuplicateWorkerError].
func (e *DuplicateWorkerError) Error() string {
	return fmt.Sprintf("worker %q is already registered", e.Name)
}

// InvalidWorkerNameError reports a worker name outside the flow token
// alphabet (letters, digits, '_' and '-').
type InvalidWorkerNameError struct {
	// Name is the rejected worker name.
	Name string
}

// Error returns a string representation of the [InvalidWorkerNameError].
func (e *InvalidWorkerNameError) Error() string {
	return fmt.Sprintf("invalid worker name %q: want letters, digits, '_' or '-'", e.Name)
}

// WorkerInvocationError reports a failed loop-controlled worker execution.
type WorkerInvocationError struct {
	// Stage is the zero-based index of the failing stage.
	Stage int

	// Worker is the name of the failing worker.
	Worker string

	// Iterations is the number of invocations completed before the failure.
	Iterations int

	// Err is the underlying cause.
	Err error
}

// Error returns a string representation of the [WorkerInvocationError].
func (e *WorkerInvocationError) Error() string {
	return fmt.Sprintf("worker %q failed at stage %d after %d completed iterations: %v", e.Worker, e.Stage, e.Iterations, e.Err)
}

// Unwrap returns the underlying cause.
func (e *WorkerInvocationError) Unwrap() error {
	return e.Err
}

// StageAggregateError wraps the failures of a concurrent stage.
//
// The orchestrator waits for every worker in the stage to finish before
// building the aggregate, so Errors carries the failure of every failing
// branch, not just the first.
type StageAggregateError struct {
	// Stage is the zero-based index of the failing stage.
	Stage int

	// Errors holds one entry per failing worker, in declaration order.
	Errors []*WorkerInvocationError
}

// Error returns a string representation of the [StageAggregateError].
func (e *StageAggregateError) Error() string {
	names := make([]string, len(e.Errors))
	for i, werr := range e.Errors {
		names[i] = fmt.Sprintf("%s: %v", werr.Worker, werr.Err)
	}
	return fmt.Sprintf("%d worker(s) failed at concurrent stage %d: %s", len(e.Errors), e.Stage, strings.Join(names, "; "))
}

// Unwrap returns the wrapped worker failures.
func (e *StageAggregateError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, werr := range e.Errors {
		errs[i] = werr
	}
	return errs
}

// CancelledError reports a run stopped by caller cancellation.
//
// The orchestrator returns it only after every in-flight worker has
// observed the cancellation and exited.
type CancelledError struct {
	// Stage is the zero-based index of the stage that was executing or
	// about to execute.
	Stage int

	// Err is the context error.
	Err error
}

// Error returns a string representation of the [CancelledError].
func (e *CancelledError) Error() string {
	return fmt.Sprintf("run cancelled at stage %d: %v", e.Stage, e.Err)
}

// Unwrap returns the context error.
func (e *CancelledError) Unwrap() error {
	return e.Err
}
