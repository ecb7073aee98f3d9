// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"context"
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/go-a2a/odk-go/types"
)

// runResult holds an event result from a worker run with metadata.
type runResult struct {
	event    *types.Event
	err      error
	workerID int
}

// MergeWorkerRuns merges the loop-controlled runs of a concurrent stage into
// one event sequence.
//
// The merged sequence ends only after every run has finished (barrier
// synchronization): a failing run surfaces its error through the sequence
// without cancelling its siblings, so a consumer draining the sequence to
// the end has observed every branch's outcome. For each run, it won't move
// on until the yielded event is processed by the consumer.
func MergeWorkerRuns(ctx context.Context, runs []iter.Seq2[*types.Event, error]) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		if len(runs) == 0 {
			return
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		eventCh := make(chan runResult)
		g := new(errgroup.Group)

		for i, run := range runs {
			g.Go(func() error {
				for event, err := range run {
					select {
					case eventCh <- runResult{
						event:    event,
						err:      err,
						workerID: i,
					}:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
				return nil
			})
		}

		// Close eventCh once all runs complete; errors already traveled
		// through the channel.
		go func() {
			_ = g.Wait()
			close(eventCh)
		}()

		for result := range eventCh {
			if !yield(result.event, result.err) {
				return // consumer stopped - context cancellation stops the runs
			}
		}
	}
}
