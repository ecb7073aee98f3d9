// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/go-a2a/odk-go/internal/pool"
)

// WorkerTrace records one worker's loop-controlled execution within a stage.
type WorkerTrace struct {
	// Name of the worker.
	Name string `json:"name"`

	// Iterations is the number of completed invocations.
	Iterations int `json:"iterations"`

	// Reason records why the loop terminated.
	Reason StopReason `json:"reason"`

	// Elapsed is the total loop-controlled execution time.
	Elapsed time.Duration `json:"elapsed"`

	// Err is the failure message, empty on success.
	Err string `json:"error,omitempty"`
}

// StageTrace records the execution of one stage.
type StageTrace struct {
	// Stage is the zero-based stage index.
	Stage int `json:"stage"`

	// Kind of the stage.
	Kind StageKind `json:"kind"`

	// Workers holds one trace per worker, in declaration order.
	Workers []*WorkerTrace `json:"workers"`
}

// RunResult is the outcome of one orchestrated run.
//
// On failure the result still carries the trace of every stage that
// executed, so callers can see exactly which stage and worker failed and
// what completed before it.
type RunResult struct {
	// RunID identifies the run.
	RunID string

	// Final is the task context after the last committed stage. Nil when the
	// first stage failed.
	Final *TaskContext

	// Trace holds one entry per executed stage, in execution order.
	Trace []*StageTrace
}

// MarshalTrace encodes the execution trace as JSON for external logging.
func (r *RunResult) MarshalTrace() ([]byte, error) {
	buf := pool.Buffer.Get()
	defer func() {
		buf.Reset()
		pool.Buffer.Put(buf)
	}()

	if err := json.MarshalWrite(buf, r.Trace, jsontext.WithIndent("  ")); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}
