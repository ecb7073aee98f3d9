// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"time"
)

// DefaultMaxLoops is the default iteration cap for a loop-controlled worker
// execution: exactly one invocation, no iteration.
const DefaultMaxLoops = 1

// FailurePolicy controls how the orchestrator reacts to a failed stage.
type FailurePolicy int

const (
	// FailureAbort stops the run at the first failed stage.
	FailureAbort FailurePolicy = iota

	// FailureCollect keeps executing the remaining stages, passing the prior
	// task context through a failed stage unchanged, and aggregates all
	// stage errors at the end of the run.
	FailureCollect
)

// String returns a string representation of the FailurePolicy.
func (p FailurePolicy) String() string {
	switch p {
	case FailureAbort:
		return "abort"
	case FailureCollect:
		return "collect"
	}
	return ""
}

// RunConfig represents the runtime behavior of one orchestrated run.
type RunConfig struct {
	// MaxLoops is the run-level iteration cap for every loop-controlled
	// worker execution. Must be positive; [WorkerRef.MaxLoops] overrides it
	// per reference.
	MaxLoops int

	// OnStageFailure selects the failure policy.
	OnStageFailure FailurePolicy

	// TimeoutPerWorker bounds each single worker invocation. Zero means no
	// timeout.
	TimeoutPerWorker time.Duration
}

// NewRunConfig returns a RunConfig with defaults applied.
func NewRunConfig() *RunConfig {
	return &RunConfig{
		MaxLoops:       DefaultMaxLoops,
		OnStageFailure: FailureAbort,
	}
}

// EffectiveMaxLoops resolves the iteration cap for ref: the per-reference
// override when set, otherwise the run-level cap.
func (c *RunConfig) EffectiveMaxLoops(ref *WorkerRef) int {
	if ref.MaxLoops > 0 {
		return ref.MaxLoops
	}
	if c.MaxLoops > 0 {
		return c.MaxLoops
	}
	return DefaultMaxLoops
}
