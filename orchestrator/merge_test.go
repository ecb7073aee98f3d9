// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package orchestrator_test

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/go-a2a/odk-go/orchestrator"
	"github.com/go-a2a/odk-go/types"
)

// eventRun yields the given events and, when fail is non-nil, ends with it.
func eventRun(worker string, count int, fail error) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		for i := range count {
			event := types.NewEvent().WithWorker(worker).WithIteration(i + 1)
			if !yield(event, nil) {
				return
			}
		}
		if fail != nil {
			yield(nil, fail)
		}
	}
}

func TestMergeWorkerRuns(t *testing.T) {
	ctx := context.Background()

	runs := []iter.Seq2[*types.Event, error]{
		eventRun("B", 3, nil),
		eventRun("C", 2, nil),
	}

	perWorker := make(map[string]int)
	for event, err := range orchestrator.MergeWorkerRuns(ctx, runs) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		perWorker[event.Worker]++
	}

	if perWorker["B"] != 3 || perWorker["C"] != 2 {
		t.Errorf("merged counts = %v, want B:3 C:2", perWorker)
	}
}

func TestMergeWorkerRunsEmpty(t *testing.T) {
	for range orchestrator.MergeWorkerRuns(context.Background(), nil) {
		t.Fatal("merged empty run set yielded a value")
	}
}

func TestMergeWorkerRunsBarrier(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	runs := []iter.Seq2[*types.Event, error]{
		eventRun("B", 0, boom),
		eventRun("C", 4, nil),
	}

	var errs, events int
	for event, err := range orchestrator.MergeWorkerRuns(ctx, runs) {
		if err != nil {
			if !errors.Is(err, boom) {
				t.Errorf("error = %v, want %v", err, boom)
			}
			errs++
			continue
		}
		if event.Worker != "C" {
			t.Errorf("event from %q, want C", event.Worker)
		}
		events++
	}

	// B's failure travels through the sequence without stopping C
	if errs != 1 || events != 4 {
		t.Errorf("drained %d errors and %d events, want 1 and 4", errs, events)
	}
}
