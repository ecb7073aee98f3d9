// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

// StageKind discriminates sequential stages from concurrent groups.
type StageKind int

const (
	// StageSequential is a stage with exactly one worker.
	StageSequential StageKind = iota

	// StageConcurrent is a stage whose workers run logically simultaneously.
	StageConcurrent
)

// String returns a string representation of the StageKind.
func (k StageKind) String() string {
	switch k {
	case StageSequential:
		return "sequential"
	case StageConcurrent:
		return "concurrent"
	}
	return ""
}

// MarshalText implements [encoding.TextMarshaler].
func (k StageKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Stage is one step of an [ExecutionPlan]: a single worker, or a concurrent
// group of distinct workers.
//
// Workers preserves the declaration order from the flow expression. Order
// among concurrent workers carries no execution guarantee, but the fan-in
// mapping built from their outputs keeps it for deterministic downstream
// consumption.
type Stage struct {
	// Kind of the stage.
	Kind StageKind

	// Workers in the stage. Always non-empty; exactly one entry for a
	// sequential stage.
	Workers []*WorkerRef
}

// Names returns the worker names of the stage in declaration order.
func (s *Stage) Names() []string {
	names := make([]string, len(s.Workers))
	for i, ref := range s.Workers {
		names[i] = ref.Name
	}
	return names
}

// ExecutionPlan is an ordered sequence of stages built once from a flow
// expression.
//
// A plan is immutable after parsing; re-parsing the same expression produces
// a new, structurally equal plan rather than mutating an existing one.
type ExecutionPlan struct {
	// Expr is the flow expression the plan was parsed from.
	Expr string

	// Stages in execution order. Always non-empty.
	Stages []*Stage
}
