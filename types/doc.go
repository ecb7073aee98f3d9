// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package types defines the shared contracts of the Orchestration Development Kit:
// the [Worker] contract, the [TaskContext] payload threaded through an execution,
// the [ExecutionPlan] produced by the flow parser, and the result, trace, and
// error types surfaced by the orchestrator.
package types
