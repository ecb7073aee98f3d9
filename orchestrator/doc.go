// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package orchestrator executes an [types.ExecutionPlan]: it walks the
// stages strictly in order, drives every worker through a loop-controlled
// execution, runs concurrent groups in parallel behind a barrier, and
// threads the accumulated [types.TaskContext] from stage to stage.
//
// A sequential stage failure aborts the run immediately. A concurrent stage
// always waits for every sibling before surfacing one
// [types.StageAggregateError], favoring diagnostic completeness over the
// fastest possible abort. The engine never retries; retry belongs to the
// worker or a wrapper around it.
package orchestrator
