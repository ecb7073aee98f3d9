// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"time"

	"github.com/google/uuid"
)

// Event is one observation emitted while a plan executes: one worker
// invocation inside a loop-controlled execution.
//
// Events exist for external logging and observability; the engine emits them
// but does not format or transmit them.
type Event struct {
	// ID is the unique identifier of the event.
	ID string

	// RunID is the run the event belongs to.
	RunID string

	// Stage is the zero-based index of the stage being executed.
	Stage int

	// StageKind is the kind of the stage being executed.
	StageKind StageKind

	// Worker is the name of the worker that produced the event.
	Worker string

	// Iteration is the one-based loop iteration that produced Output.
	Iteration int

	// Output is the invocation's output.
	Output *TaskContext

	// Final reports whether this is the terminal event of the worker's loop
	// for this stage.
	Final bool

	// Reason records why the loop terminated. Valid when Final is true.
	Reason StopReason

	// Elapsed is the total loop-controlled execution time of the worker.
	// Valid when Final is true.
	Elapsed time.Duration

	// Timestamp is the time the event was created.
	Timestamp time.Time
}

// NewEvent creates a new event with a unique ID and timestamp.
func NewEvent() *Event {
	return &Event{
		ID:        NewEventID(),
		Timestamp: time.Now(),
	}
}

// WithRunID sets the run ID of the event.
func (e *Event) WithRunID(runID string) *Event {
	e.RunID = runID
	return e
}

// WithStage sets the stage index and kind of the event.
func (e *Event) WithStage(stage int, kind StageKind) *Event {
	e.Stage = stage
	e.StageKind = kind
	return e
}

// WithWorker sets the worker name of the event.
func (e *Event) WithWorker(worker string) *Event {
	e.Worker = worker
	return e
}

// WithIteration sets the iteration of the event.
func (e *Event) WithIteration(iteration int) *Event {
	e.Iteration = iteration
	return e
}

// WithOutput sets the output of the event.
func (e *Event) WithOutput(output *TaskContext) *Event {
	e.Output = output
	return e
}

// WithFinal marks the event as the terminal event of its worker's loop.
func (e *Event) WithFinal(reason StopReason, elapsed time.Duration) *Event {
	e.Final = true
	e.Reason = reason
	e.Elapsed = elapsed
	return e
}

// NewEventID returns a new unique event ID.
func NewEventID() string {
	return `e-` + uuid.NewString()
}

// NewRunID returns a new unique run ID.
func NewRunID() string {
	return `r-` + uuid.NewString()
}
