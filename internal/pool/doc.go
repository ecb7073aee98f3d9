// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package pool provides strongly-typed object pooling with generic support and
// predefined pools for [*bytes.Buffer] and [*strings.Builder].
//
// Callers must reset an object before returning it to its pool and must not
// hold references to it afterwards.
package pool
