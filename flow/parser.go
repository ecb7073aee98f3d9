// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"strings"

	"github.com/go-a2a/odk-go/types"
)

// StageSeparator separates the ordered segments of a flow expression.
const StageSeparator = "->"

// ConcurrentSeparator separates the workers of a concurrent group within a
// segment.
const ConcurrentSeparator = ","

// Parse builds an immutable [types.ExecutionPlan] from expr.
//
// Every token must name a worker registered in r. The same worker may appear
// in several stages (iterative pipelines reuse workers); within one
// concurrent segment a name may appear only once. Parsing the same
// expression twice yields structurally equal plans.
func (r *Registry) Parse(expr string) (*types.ExecutionPlan, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, &types.EmptyFlowError{Segment: -1}
	}

	segments := strings.Split(expr, StageSeparator)
	stages := make([]*types.Stage, 0, len(segments))

	for i, segment := range segments {
		stage, err := r.parseSegment(i, segment)
		if err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}

	return &types.ExecutionPlan{
		Expr:   expr,
		Stages: stages,
	}, nil
}

// parseSegment parses one "->"-separated segment into a stage.
func (r *Registry) parseSegment(index int, segment string) (*types.Stage, error) {
	if strings.TrimSpace(segment) == "" {
		return nil, &types.EmptyFlowError{Segment: index}
	}

	tokens := strings.Split(segment, ConcurrentSeparator)
	refs := make([]*types.WorkerRef, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))

	for _, token := range tokens {
		name := strings.TrimSpace(token)
		if name == "" {
			// a dangling comma leaves an empty token, e.g. "A, -> B"
			return nil, &types.EmptyFlowError{Segment: index}
		}
		if seen[name] {
			return nil, &types.DuplicateInStageError{Name: name, Stage: index}
		}
		seen[name] = true

		e, ok := r.lookupEntry(name)
		if !ok {
			return nil, &types.UnknownWorkerError{Name: name}
		}

		refs = append(refs, &types.WorkerRef{
			Name:     name,
			Worker:   e.worker,
			MaxLoops: e.maxLoops,
		})
	}

	kind := types.StageSequential
	if len(refs) > 1 {
		kind = types.StageConcurrent
	}

	return &types.Stage{
		Kind:    kind,
		Workers: refs,
	}, nil
}
