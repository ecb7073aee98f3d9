// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package flow converts a textual flow expression into an executable plan.
//
// A flow expression is an ASCII string over registered worker names:
//
//	"A -> B, C -> D"
//
// "->" separates stages executed in order; "," inside a segment declares a
// concurrent group. Whitespace around separators is ignored. There is no
// nesting beyond those two levels. The expression above parses into three
// stages: {A}, {B, C} concurrent, {D}.
//
// Parsing validates the whole expression against a [Registry] before any
// execution starts, so parse errors never reach a running worker.
package flow
