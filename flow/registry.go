// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"sync"

	"github.com/go-a2a/odk-go/internal/xmaps"
	"github.com/go-a2a/odk-go/types"
)

// entry is one registered worker together with its registration options.
type entry struct {
	worker   types.Worker
	maxLoops int
}

// RegisterOption configures a single worker registration.
type RegisterOption interface {
	apply(*entry)
}

type registerOptionFunc func(*entry)

func (o registerOptionFunc) apply(e *entry) { o(e) }

// WithMaxLoops caps the loop-controlled iterations of every plan reference
// to this worker. Overrides the run-level cap.
func WithMaxLoops(maxLoops int) RegisterOption {
	return registerOptionFunc(func(e *entry) {
		e.maxLoops = maxLoops
	})
}

// Registry is the name to [types.Worker] lookup a flow expression is parsed
// against.
//
// It is built once before parsing; at run time the engine only reads the
// [types.WorkerRef] handles stamped into the plan.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewRegistry creates an empty [Registry].
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*entry),
	}
}

// Register adds a worker under its own name.
//
// The name must match the flow token alphabet (letters, digits, '_' and '-')
// and must not already be taken.
func (r *Registry) Register(w types.Worker, opts ...RegisterOption) error {
	name := w.Name()
	if !validName(name) {
		return &types.InvalidWorkerNameError{Name: name}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if xmaps.Contains(r.entries, name) {
		return &types.DuplicateWorkerError{Name: name}
	}

	e := &entry{worker: w}
	for _, opt := range opts {
		opt.apply(e)
	}
	r.entries[name] = e

	return nil
}

// Lookup returns the worker registered under name.
func (r *Registry) Lookup(name string) (types.Worker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.worker, true
}

// Len returns the number of registered workers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// lookupEntry returns the full registration entry for name.
func (r *Registry) lookupEntry(name string) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	return e, ok
}

// validName reports whether name is a non-empty token over the flow
// alphabet: letters, digits, '_' and '-'.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}
