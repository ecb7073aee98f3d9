// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package checkpoint provides implementations of [types.CheckpointService]
// for persisting run progress: an in-memory service for tests and
// single-process use, and a file-backed service storing one JSON document
// per run.
package checkpoint
