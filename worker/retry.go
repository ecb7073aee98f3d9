// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package worker

import (
	"context"
	"fmt"

	"github.com/go-a2a/odk-go/types"
)

// retryWorker re-invokes the wrapped worker on failure.
type retryWorker struct {
	types.Worker

	attempts int
}

var _ types.Stopper = (*retryWorker)(nil)

// WithRetry wraps w so each invocation is attempted up to attempts times
// before failing.
//
// The engine never retries on its own; this wrapper is the caller-side way
// to add retry without touching failure semantics inside the loop
// controller.
func WithRetry(w types.Worker, attempts int) types.Worker {
	if attempts < 1 {
		attempts = 1
	}
	return &retryWorker{
		Worker:   w,
		attempts: attempts,
	}
}

// Invoke implements [types.Worker].
func (w *retryWorker) Invoke(ctx context.Context, input *types.TaskContext) (*types.TaskContext, error) {
	var lastErr error
	for i := 0; i < w.attempts; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		output, err := w.Worker.Invoke(ctx, input)
		if err == nil {
			return output, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("all %d attempts failed: %w", w.attempts, lastErr)
}

// ShouldStop implements [types.Stopper], preserving the wrapped worker's
// stop condition.
func (w *retryWorker) ShouldStop(output *types.TaskContext) bool {
	if stopper, ok := w.Worker.(types.Stopper); ok {
		return stopper.ShouldStop(output)
	}
	return false
}
