// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package worker provides small adapters over the [types.Worker] contract:
// function-backed workers, a stop-token wrapper that terminates a worker's
// loop when a sentinel appears in its output, and a retry wrapper for
// callers that want retry semantics the engine itself never applies.
package worker
