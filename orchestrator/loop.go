// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/go-a2a/odk-go/types"
)

// LoopController wraps a single worker invocation with iteration limits and
// the worker's optional stop condition, producing one finalized output per
// stage.
//
// The first iteration consumes the stage input; each subsequent iteration
// consumes the previous iteration's output, enabling self-refinement loops.
// The controller never retries a failed invocation.
type LoopController struct {
	config *types.RunConfig
}

// NewLoopController creates a new loop controller with the given run
// configuration.
func NewLoopController(config *types.RunConfig) *LoopController {
	if config == nil {
		config = types.NewRunConfig()
	}
	return &LoopController{config: config}
}

// Execute drives ref's iterative loop over input.
//
// It yields one [types.Event] per completed invocation; the terminal event
// carries Final, the stop reason, and the loop's elapsed time. A failed
// invocation terminates the loop immediately, yielding a
// [*types.WorkerInvocationError] with the partial iteration count.
func (c *LoopController) Execute(ctx context.Context, ref *types.WorkerRef, input *types.TaskContext) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		maxLoops := c.config.EffectiveMaxLoops(ref)
		start := time.Now()
		current := input

		for i := 1; i <= maxLoops; i++ {
			if err := ctx.Err(); err != nil {
				yield(nil, &types.WorkerInvocationError{
					Worker:     ref.Name,
					Iterations: i - 1,
					Err:        err,
				})
				return
			}

			output, err := c.invoke(ctx, ref, current)
			if err != nil {
				yield(nil, &types.WorkerInvocationError{
					Worker:     ref.Name,
					Iterations: i - 1,
					Err:        err,
				})
				return
			}

			reason := types.StopUnknown
			if stopper, ok := ref.Worker.(types.Stopper); ok && stopper.ShouldStop(output) {
				reason = types.StopCondition
			} else if i == maxLoops {
				reason = types.StopMaxLoops
			}

			event := types.NewEvent().
				WithWorker(ref.Name).
				WithIteration(i).
				WithOutput(output)
			if reason != types.StopUnknown {
				event = event.WithFinal(reason, time.Since(start))
			}

			if !yield(event, nil) {
				return
			}
			if reason != types.StopUnknown {
				return
			}

			current = output
		}
	}
}

// Run drains [LoopController.Execute] into a single [types.LoopResult].
//
// On failure the result still records the completed iteration count and the
// stop reason, and the error is returned alongside it.
func (c *LoopController) Run(ctx context.Context, ref *types.WorkerRef, input *types.TaskContext) (*types.LoopResult, error) {
	result := &types.LoopResult{Worker: ref.Name}

	for event, err := range c.Execute(ctx, ref, input) {
		if err != nil {
			result.Reason = types.StopError
			result.Err = err

			var werr *types.WorkerInvocationError
			if errors.As(err, &werr) {
				result.Iterations = werr.Iterations
				if errors.Is(werr.Err, context.Canceled) {
					result.Reason = types.StopCancelled
				}
			}

			return result, err
		}

		result.Iterations = event.Iteration
		result.Output = event.Output
		if event.Final {
			result.Reason = event.Reason
		}
	}

	return result, nil
}

// invoke runs one invocation with the per-worker timeout applied.
func (c *LoopController) invoke(ctx context.Context, ref *types.WorkerRef, input *types.TaskContext) (*types.TaskContext, error) {
	if c.config.TimeoutPerWorker > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.TimeoutPerWorker)
		defer cancel()
	}

	return ref.Worker.Invoke(ctx, input)
}
