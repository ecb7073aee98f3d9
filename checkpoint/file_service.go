// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package checkpoint

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-a2a/odk-go/types"
)

// FileService is a file-backed implementation of the
// [types.CheckpointService], storing one JSON document per run under a
// single directory.
//
// It is meant for single-process durability across restarts, not for
// concurrent access from multiple processes.
type FileService struct {
	dir    string
	logger *slog.Logger
	mu     sync.Mutex
}

var _ types.CheckpointService = (*FileService)(nil)

// NewFileService creates a new [FileService] rooted at dir, creating the
// directory if needed.
func NewFileService(dir string) (*FileService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create checkpoint dir: %w", err)
	}

	return &FileService{
		dir:    dir,
		logger: slog.Default(),
	}, nil
}

// Save implements [types.CheckpointService].
func (s *FileService) Save(ctx context.Context, cp *types.Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cp.RunID == "" {
		cp.RunID = types.NewRunID()
	}

	data, err := types.EncodeCheckpoint(cp)
	if err != nil {
		return fmt.Errorf("encode checkpoint %s: %w", cp.RunID, err)
	}

	s.logger.InfoContext(ctx, "Saving checkpoint",
		slog.String("run_id", cp.RunID),
		slog.Int("stage", cp.Stage),
	)

	// Write-then-rename keeps a crash from leaving a torn document behind.
	tmp := s.path(cp.RunID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint %s: %w", cp.RunID, err)
	}
	if err := os.Rename(tmp, s.path(cp.RunID)); err != nil {
		return fmt.Errorf("commit checkpoint %s: %w", cp.RunID, err)
	}

	return nil
}

// Load implements [types.CheckpointService].
func (s *FileService) Load(ctx context.Context, runID string) (*types.Checkpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
		}
		return nil, fmt.Errorf("read checkpoint %s: %w", runID, err)
	}

	cp, err := types.DecodeCheckpoint(data)
	if err != nil {
		return nil, fmt.Errorf("decode checkpoint %s: %w", runID, err)
	}

	return cp, nil
}

// List implements [types.CheckpointService].
func (s *FileService) List(ctx context.Context) ([]*types.Checkpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}

	var cps []*types.Checkpoint
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read checkpoint %s: %w", entry.Name(), err)
		}
		cp, err := types.DecodeCheckpoint(data)
		if err != nil {
			return nil, fmt.Errorf("decode checkpoint %s: %w", entry.Name(), err)
		}
		cps = append(cps, cp)
	}

	return cps, nil
}

// Delete implements [types.CheckpointService]. Deleting an absent run ID is
// a no-op.
func (s *FileService) Delete(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.InfoContext(ctx, "Deleting checkpoint", slog.String("run_id", runID))

	if err := os.Remove(s.path(runID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete checkpoint %s: %w", runID, err)
	}

	return nil
}

// path returns the document path for runID.
func (s *FileService) path(runID string) string {
	// run IDs only contain "r-" plus a UUID, safe as a file name
	return filepath.Join(s.dir, runID+".json")
}
