// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package worker

import (
	"strings"

	"github.com/go-a2a/odk-go/types"
)

// stopOnToken terminates a worker's loop once a sentinel token shows up in
// its output.
type stopOnToken struct {
	types.Worker

	token string
}

var _ types.Stopper = (*stopOnToken)(nil)

// StopOnToken wraps w so its iterative loop stops when token appears in the
// flattened output, in addition to any stop condition w reports itself.
func StopOnToken(w types.Worker, token string) types.Worker {
	return &stopOnToken{
		Worker: w,
		token:  token,
	}
}

// ShouldStop implements [types.Stopper].
func (w *stopOnToken) ShouldStop(output *types.TaskContext) bool {
	if stopper, ok := w.Worker.(types.Stopper); ok && stopper.ShouldStop(output) {
		return true
	}
	if output == nil {
		return false
	}
	return strings.Contains(output.Flatten(), w.token)
}
