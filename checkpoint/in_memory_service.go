// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/go-a2a/odk-go/internal/xmaps"
	"github.com/go-a2a/odk-go/types"
)

// ErrNotFound reports a run ID with no stored checkpoint.
var ErrNotFound = errors.New("checkpoint not found")

// InMemoryService is an in-memory implementation of the
// [types.CheckpointService].
type InMemoryService struct {
	// checkpoints is a map from run ID to the run's latest checkpoint.
	checkpoints map[string]*types.Checkpoint

	logger *slog.Logger
	mu     sync.RWMutex
}

var _ types.CheckpointService = (*InMemoryService)(nil)

// NewInMemoryService creates a new [InMemoryService].
func NewInMemoryService() *InMemoryService {
	return &InMemoryService{
		checkpoints: make(map[string]*types.Checkpoint),
		logger:      slog.Default(),
	}
}

// Save implements [types.CheckpointService].
func (s *InMemoryService) Save(ctx context.Context, cp *types.Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cp.RunID == "" {
		cp.RunID = types.NewRunID()
	}

	s.logger.InfoContext(ctx, "Saving checkpoint",
		slog.String("run_id", cp.RunID),
		slog.Int("stage", cp.Stage),
	)

	// Deep copy so a caller mutating cp afterwards cannot touch the stored one
	s.checkpoints[cp.RunID] = copyCheckpoint(cp)

	return nil
}

// Load implements [types.CheckpointService].
func (s *InMemoryService) Load(ctx context.Context, runID string) (*types.Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.logger.InfoContext(ctx, "Loading checkpoint", slog.String("run_id", runID))

	cp, ok := s.checkpoints[runID]
	if !ok {
		return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}

	return copyCheckpoint(cp), nil
}

// List implements [types.CheckpointService].
func (s *InMemoryService) List(ctx context.Context) ([]*types.Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cps := make([]*types.Checkpoint, 0, len(s.checkpoints))
	for _, cp := range s.checkpoints {
		cps = append(cps, copyCheckpoint(cp))
	}
	sort.Slice(cps, func(i, j int) bool { return cps[i].RunID < cps[j].RunID })

	return cps, nil
}

// Delete implements [types.CheckpointService]. Deleting an absent run ID is
// a no-op.
func (s *InMemoryService) Delete(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !xmaps.Contains(s.checkpoints, runID) {
		return nil
	}

	s.logger.InfoContext(ctx, "Deleting checkpoint", slog.String("run_id", runID))
	delete(s.checkpoints, runID)

	return nil
}

// copyCheckpoint deep-copies a checkpoint so stored and returned values
// never alias caller state.
func copyCheckpoint(cp *types.Checkpoint) *types.Checkpoint {
	copied := *cp
	copied.Context = cp.Context.Clone()
	return &copied
}
