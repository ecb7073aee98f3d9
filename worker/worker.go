// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package worker

import (
	"context"

	"github.com/go-a2a/odk-go/types"
)

// InvokeFunc is the signature of a function-backed worker.
type InvokeFunc func(ctx context.Context, input *types.TaskContext) (*types.TaskContext, error)

// funcWorker adapts a plain function to the worker contract.
type funcWorker struct {
	name string
	fn   InvokeFunc
}

var _ types.Worker = (*funcWorker)(nil)

// Func returns a [types.Worker] named name that delegates every invocation
// to fn.
func Func(name string, fn InvokeFunc) types.Worker {
	return &funcWorker{
		name: name,
		fn:   fn,
	}
}

// Name implements [types.Worker].
func (w *funcWorker) Name() string {
	return w.name
}

// Invoke implements [types.Worker].
func (w *funcWorker) Invoke(ctx context.Context, input *types.TaskContext) (*types.TaskContext, error) {
	return w.fn(ctx, input)
}
