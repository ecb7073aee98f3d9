// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package odk is an open-source, code-first Go toolkit for composing independent
// task workers into declarative flows and orchestrating their execution.
package odk

// Version is the version of the Orchestration Development Kit.
var Version = "v0.0.0"
