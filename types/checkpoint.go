// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
)

// Checkpoint is the durable record of a run's progress: the next stage to
// execute and the task context committed by the stages before it.
//
// Re-running from a checkpoint gives at-least-once semantics; idempotent
// re-invocation is the worker's concern.
type Checkpoint struct {
	// RunID identifies the run.
	RunID string

	// Expr is the flow expression of the plan the run executes. A checkpoint
	// only resumes against a plan parsed from the same expression.
	Expr string

	// Stage is the zero-based index of the next stage to execute.
	Stage int

	// Context is the task context committed before Stage.
	Context *TaskContext

	// UpdatedAt is the time the checkpoint was last saved.
	UpdatedAt time.Time
}

// CheckpointService persists run checkpoints.
//
// The engine treats the store as external: it saves after every committed
// stage and loads on resume, nothing more.
type CheckpointService interface {
	// Save stores cp, replacing any checkpoint with the same run ID.
	Save(ctx context.Context, cp *Checkpoint) error

	// Load retrieves the checkpoint for runID.
	Load(ctx context.Context, runID string) (*Checkpoint, error)

	// List retrieves all stored checkpoints.
	List(ctx context.Context) ([]*Checkpoint, error)

	// Delete removes the checkpoint for runID.
	Delete(ctx context.Context, runID string) error
}

// checkpointDoc is the persisted form of a [Checkpoint]: the task context
// travels as the dictionary produced by [EncodeContext].
type checkpointDoc struct {
	RunID     string         `json:"runId"`
	Expr      string         `json:"expr"`
	Stage     int            `json:"stage"`
	Context   map[string]any `json:"context"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// EncodeCheckpoint encodes a checkpoint to JSON.
func EncodeCheckpoint(cp *Checkpoint) ([]byte, error) {
	content, err := EncodeContext(cp.Context)
	if err != nil {
		return nil, err
	}

	return sonic.ConfigDefault.Marshal(checkpointDoc{
		RunID:     cp.RunID,
		Expr:      cp.Expr,
		Stage:     cp.Stage,
		Context:   content,
		UpdatedAt: cp.UpdatedAt,
	})
}

// DecodeCheckpoint decodes a checkpoint from JSON.
func DecodeCheckpoint(data []byte) (*Checkpoint, error) {
	var doc checkpointDoc
	if err := sonic.ConfigDefault.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	tc, err := DecodeContext(doc.Context)
	if err != nil {
		return nil, err
	}

	return &Checkpoint{
		RunID:     doc.RunID,
		Expr:      doc.Expr,
		Stage:     doc.Stage,
		Context:   tc,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}
