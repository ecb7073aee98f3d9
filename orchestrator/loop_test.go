// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package orchestrator_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-a2a/odk-go/orchestrator"
	"github.com/go-a2a/odk-go/types"
	"github.com/go-a2a/odk-go/worker"
)

// countingWorker counts invocations and appends a marker to its input text.
// It stops after stopAfter iterations when stopAfter is positive.
type countingWorker struct {
	name      string
	calls     int
	stopAfter int
	failAt    int
}

var (
	_ types.Worker  = (*countingWorker)(nil)
	_ types.Stopper = (*countingWorker)(nil)
)

func (w *countingWorker) Name() string { return w.name }

func (w *countingWorker) Invoke(ctx context.Context, input *types.TaskContext) (*types.TaskContext, error) {
	w.calls++
	if w.failAt > 0 && w.calls == w.failAt {
		return nil, fmt.Errorf("invocation %d failed", w.calls)
	}
	return types.NewTextContext(input.Flatten() + "+" + w.name), nil
}

func (w *countingWorker) ShouldStop(output *types.TaskContext) bool {
	return w.stopAfter > 0 && w.calls >= w.stopAfter
}

func TestLoopControllerStopCondition(t *testing.T) {
	ctx := context.Background()
	w := &countingWorker{name: "refiner", stopAfter: 1}
	lc := orchestrator.NewLoopController(&types.RunConfig{MaxLoops: 5})

	result, err := lc.Run(ctx, &types.WorkerRef{Name: w.name, Worker: w}, types.NewTextContext("task"))
	if err != nil {
		t.Fatal(err)
	}

	if result.Iterations != 1 {
		t.Errorf("Iterations = %d, want 1", result.Iterations)
	}
	if result.Reason != types.StopCondition {
		t.Errorf("Reason = %v, want %v", result.Reason, types.StopCondition)
	}
	if w.calls != 1 {
		t.Errorf("worker invoked %d times, want 1", w.calls)
	}
}

func TestLoopControllerMaxLoops(t *testing.T) {
	ctx := context.Background()
	w := &countingWorker{name: "refiner"}
	lc := orchestrator.NewLoopController(&types.RunConfig{MaxLoops: 3})

	result, err := lc.Run(ctx, &types.WorkerRef{Name: w.name, Worker: w}, types.NewTextContext("task"))
	if err != nil {
		t.Fatal(err)
	}

	if w.calls != 3 {
		t.Errorf("worker invoked %d times, want 3", w.calls)
	}
	if result.Iterations != 3 {
		t.Errorf("Iterations = %d, want 3", result.Iterations)
	}
	if result.Reason != types.StopMaxLoops {
		t.Errorf("Reason = %v, want %v", result.Reason, types.StopMaxLoops)
	}

	// each iteration must consume the previous iteration's output
	if got, want := result.Output.Flatten(), "task+refiner+refiner+refiner"; got != want {
		t.Errorf("Output = %q, want %q", got, want)
	}
}

func TestLoopControllerSingleInvocationDefault(t *testing.T) {
	ctx := context.Background()
	w := &countingWorker{name: "once"}
	lc := orchestrator.NewLoopController(nil)

	result, err := lc.Run(ctx, &types.WorkerRef{Name: w.name, Worker: w}, types.NewTextContext("task"))
	if err != nil {
		t.Fatal(err)
	}

	if w.calls != 1 {
		t.Errorf("worker invoked %d times, want 1", w.calls)
	}
	if result.Reason != types.StopMaxLoops {
		t.Errorf("Reason = %v, want %v", result.Reason, types.StopMaxLoops)
	}
}

func TestLoopControllerRefOverride(t *testing.T) {
	ctx := context.Background()
	w := &countingWorker{name: "capped"}
	lc := orchestrator.NewLoopController(&types.RunConfig{MaxLoops: 5})

	_, err := lc.Run(ctx, &types.WorkerRef{Name: w.name, Worker: w, MaxLoops: 2}, types.NewTextContext("task"))
	if err != nil {
		t.Fatal(err)
	}

	if w.calls != 2 {
		t.Errorf("worker invoked %d times, want 2", w.calls)
	}
}

func TestLoopControllerInvocationFailure(t *testing.T) {
	ctx := context.Background()
	w := &countingWorker{name: "flaky", failAt: 2}
	lc := orchestrator.NewLoopController(&types.RunConfig{MaxLoops: 5})

	result, err := lc.Run(ctx, &types.WorkerRef{Name: w.name, Worker: w}, types.NewTextContext("task"))
	if err == nil {
		t.Fatal("Run succeeded, want error")
	}

	var werr *types.WorkerInvocationError
	if !errors.As(err, &werr) {
		t.Fatalf("error = %v, want WorkerInvocationError", err)
	}
	if werr.Worker != "flaky" {
		t.Errorf("Worker = %q, want %q", werr.Worker, "flaky")
	}
	if werr.Iterations != 1 {
		t.Errorf("Iterations = %d, want 1 (completed before the failure)", werr.Iterations)
	}
	if result.Reason != types.StopError {
		t.Errorf("Reason = %v, want %v", result.Reason, types.StopError)
	}
}

func TestLoopControllerWorkerTimeout(t *testing.T) {
	ctx := context.Background()

	// first invocation returns immediately, the second blocks until the
	// per-worker deadline fires
	var calls int
	w := worker.Func("slow", func(ctx context.Context, input *types.TaskContext) (*types.TaskContext, error) {
		calls++
		if calls == 1 {
			return input, nil
		}
		<-ctx.Done()
		return nil, ctx.Err()
	})

	lc := orchestrator.NewLoopController(&types.RunConfig{
		MaxLoops:         3,
		TimeoutPerWorker: 20 * time.Millisecond,
	})

	result, err := lc.Run(ctx, &types.WorkerRef{Name: "slow", Worker: w}, types.NewTextContext("task"))
	if err == nil {
		t.Fatal("Run succeeded, want timeout error")
	}

	var werr *types.WorkerInvocationError
	if !errors.As(err, &werr) {
		t.Fatalf("error = %v, want WorkerInvocationError", err)
	}
	if !errors.Is(werr, context.DeadlineExceeded) {
		t.Errorf("error = %v, want to unwrap to context.DeadlineExceeded", err)
	}
	if werr.Iterations != 1 {
		t.Errorf("Iterations = %d, want 1 (completed before the deadline)", werr.Iterations)
	}
	if result.Reason != types.StopError {
		t.Errorf("Reason = %v, want %v", result.Reason, types.StopError)
	}
}

func TestLoopControllerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := &countingWorker{name: "idle"}
	lc := orchestrator.NewLoopController(&types.RunConfig{MaxLoops: 3})

	result, err := lc.Run(ctx, &types.WorkerRef{Name: w.name, Worker: w}, types.NewTextContext("task"))
	if err == nil {
		t.Fatal("Run succeeded on a cancelled context, want error")
	}
	if w.calls != 0 {
		t.Errorf("worker invoked %d times after cancellation, want 0", w.calls)
	}
	if result.Reason != types.StopCancelled {
		t.Errorf("Reason = %v, want %v", result.Reason, types.StopCancelled)
	}
}
