// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging provides context-based structured logging utilities using Go's standard slog package.
//
// Loggers are stored in and retrieved from [context.Context] values so they
// propagate through the orchestrator, the loop controller, and worker
// invocations without explicit plumbing:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
//		Level: slog.LevelInfo,
//	}))
//	ctx := logging.NewContext(ctx, logger)
//
//	// anywhere below
//	logging.FromContext(ctx).Info("stage committed", "stage", i)
//
// When no logger is found in the context, [FromContext] returns a default
// JSON logger writing to stdout at INFO level, so logging always works even
// when no explicit logger is configured.
package logging
