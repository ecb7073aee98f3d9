// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"fmt"

	"github.com/bytedance/sonic"
	deepcopy "github.com/tiendc/go-deepcopy"

	"github.com/go-a2a/odk-go/internal/pool"
)

// ContextKind discriminates the two shapes a [TaskContext] can take.
type ContextKind int

const (
	// TextContext is a free-form task string.
	TextContext ContextKind = iota

	// FanInContext is a worker-name keyed mapping produced by a concurrent
	// stage.
	FanInContext
)

// String returns a string representation of the ContextKind.
func (k ContextKind) String() string {
	switch k {
	case TextContext:
		return "text"
	case FanInContext:
		return "fan-in"
	}
	return ""
}

// TaskContext is the payload threaded through an execution plan.
//
// It starts as the caller-supplied task text. After a sequential stage it is
// replaced by that worker's output; after a concurrent stage it becomes a
// mapping from worker name to that worker's finalized output (fan-in). The
// mapping is passed through to the next stage unchanged, so workers must
// tolerate either shape, or call [TaskContext.Flatten] to reduce a mapping
// to text under the documented merge policy.
type TaskContext struct {
	// Kind discriminates the payload shape.
	Kind ContextKind `json:"kind"`

	// Text is the task text. Valid when Kind is [TextContext].
	Text string `json:"text,omitempty"`

	// Keys holds the worker names of a fan-in mapping in the order the
	// workers were declared in their stage. Valid when Kind is
	// [FanInContext].
	Keys []string `json:"keys,omitempty"`

	// Outputs maps worker name to that worker's finalized output. Valid when
	// Kind is [FanInContext].
	Outputs map[string]*TaskContext `json:"outputs,omitempty"`
}

// NewTextContext returns a text-shaped [TaskContext].
func NewTextContext(text string) *TaskContext {
	return &TaskContext{
		Kind: TextContext,
		Text: text,
	}
}

// NewFanInContext returns an empty fan-in [TaskContext].
func NewFanInContext() *TaskContext {
	return &TaskContext{
		Kind:    FanInContext,
		Outputs: make(map[string]*TaskContext),
	}
}

// SetOutput records a worker's finalized output under name, preserving
// insertion order for deterministic downstream consumption.
func (tc *TaskContext) SetOutput(name string, output *TaskContext) {
	if tc.Outputs == nil {
		tc.Outputs = make(map[string]*TaskContext)
	}
	if _, ok := tc.Outputs[name]; !ok {
		tc.Keys = append(tc.Keys, name)
	}
	tc.Outputs[name] = output
}

// Output returns the output recorded under name.
func (tc *TaskContext) Output(name string) (*TaskContext, bool) {
	output, ok := tc.Outputs[name]
	return output, ok
}

// Flatten reduces the context to a single string.
//
// Text contexts flatten to their text. Fan-in contexts flatten to one
// "name: output" line per worker in declaration order, with nested fan-in
// outputs flattened recursively.
func (tc *TaskContext) Flatten() string {
	if tc.Kind == TextContext {
		return tc.Text
	}

	sb := pool.String.Get()
	defer func() {
		sb.Reset()
		pool.String.Put(sb)
	}()

	for i, key := range tc.Keys {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(key)
		sb.WriteString(": ")
		if output := tc.Outputs[key]; output != nil {
			sb.WriteString(output.Flatten())
		}
	}

	return sb.String()
}

// Clone returns a deep copy of the context.
//
// The orchestrator clones contexts before handing them to a checkpoint
// service so a stored checkpoint never aliases the live run state.
func (tc *TaskContext) Clone() *TaskContext {
	if tc == nil {
		return nil
	}

	dst := new(TaskContext)
	if err := deepcopy.Copy(dst, tc); err != nil {
		// TaskContext is a plain data tree; deepcopy only fails on
		// unsupported shapes, which would be a programming error.
		panic(fmt.Errorf("clone task context: %w", err))
	}

	return dst
}

// EncodeContext encodes a [TaskContext] to a JSON dictionary.
func EncodeContext(tc *TaskContext) (map[string]any, error) {
	if tc == nil {
		return nil, nil
	}

	bytes, err := sonic.ConfigFastest.Marshal(tc)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := sonic.ConfigFastest.Unmarshal(bytes, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// DecodeContext decodes a [TaskContext] from a JSON dictionary.
func DecodeContext(content map[string]any) (*TaskContext, error) {
	if content == nil {
		return nil, nil
	}

	bytes, err := sonic.ConfigFastest.Marshal(content)
	if err != nil {
		return nil, err
	}

	var result TaskContext
	if err := sonic.ConfigFastest.Unmarshal(bytes, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
