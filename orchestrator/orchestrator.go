// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/go-a2a/odk-go/internal/xiter"
	"github.com/go-a2a/odk-go/pkg/logging"
	"github.com/go-a2a/odk-go/types"
)

// Orchestrator walks an [types.ExecutionPlan], invoking its stages in order
// and threading the accumulated [types.TaskContext] from stage to stage.
//
// The orchestrator exclusively owns the plan and the task context for the
// duration of one run; worker handles are shared read-only references.
type Orchestrator struct {
	plan        *types.ExecutionPlan
	config      *types.RunConfig
	checkpoints types.CheckpointService
	loop        *LoopController
}

// Option configures an [Orchestrator].
type Option interface {
	apply(*Orchestrator)
}

type optionFunc func(*Orchestrator)

func (o optionFunc) apply(orch *Orchestrator) { o(orch) }

// WithRunConfig replaces the whole run configuration.
func WithRunConfig(config *types.RunConfig) Option {
	return optionFunc(func(o *Orchestrator) {
		o.config = config
	})
}

// WithMaxLoops sets the run-level iteration cap for every loop-controlled
// worker execution.
func WithMaxLoops(maxLoops int) Option {
	return optionFunc(func(o *Orchestrator) {
		o.config.MaxLoops = maxLoops
	})
}

// WithFailurePolicy selects how the run reacts to a failed stage.
func WithFailurePolicy(policy types.FailurePolicy) Option {
	return optionFunc(func(o *Orchestrator) {
		o.config.OnStageFailure = policy
	})
}

// WithWorkerTimeout bounds each single worker invocation.
func WithWorkerTimeout(timeout time.Duration) Option {
	return optionFunc(func(o *Orchestrator) {
		o.config.TimeoutPerWorker = timeout
	})
}

// WithCheckpointService enables per-stage checkpointing against svc.
func WithCheckpointService(svc types.CheckpointService) Option {
	return optionFunc(func(o *Orchestrator) {
		o.checkpoints = svc
	})
}

// New creates a new orchestrator for plan with the given options.
func New(plan *types.ExecutionPlan, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		plan:   plan,
		config: types.NewRunConfig(),
	}
	for _, opt := range opts {
		opt.apply(o)
	}
	o.loop = NewLoopController(o.config)

	return o
}

// Run executes the plan against initial and returns the final task context
// together with the per-stage execution trace.
//
// A nil initial is treated as empty task text. On failure the returned
// [types.RunResult] still carries the trace of every stage that executed.
func (o *Orchestrator) Run(ctx context.Context, initial *types.TaskContext) (*types.RunResult, error) {
	if o.plan == nil || len(o.plan.Stages) == 0 {
		return nil, &types.EmptyFlowError{Segment: -1}
	}
	if initial == nil {
		initial = types.NewTextContext("")
	}
	return o.execute(ctx, types.NewRunID(), 0, initial, nil)
}

// Resume continues the run recorded under runID from its last committed
// stage.
//
// Resume gives at-least-once semantics: a stage interrupted mid-flight is
// re-executed in full, and idempotent re-invocation is the worker's concern.
func (o *Orchestrator) Resume(ctx context.Context, runID string) (*types.RunResult, error) {
	if o.plan == nil || len(o.plan.Stages) == 0 {
		return nil, &types.EmptyFlowError{Segment: -1}
	}
	if o.checkpoints == nil {
		return nil, fmt.Errorf("resume %s: no checkpoint service configured", runID)
	}

	cp, err := o.checkpoints.Load(ctx, runID)
	if err != nil {
		return nil, err
	}
	if cp.Expr != o.plan.Expr {
		return nil, fmt.Errorf("checkpoint %s was recorded for flow %q, plan executes %q", runID, cp.Expr, o.plan.Expr)
	}

	return o.execute(ctx, runID, cp.Stage, cp.Context, nil)
}

// Events executes the plan like [Orchestrator.Run] but yields one
// [types.Event] per worker invocation as the run progresses.
//
// Breaking out of the iteration cancels the run; the engine then winds down
// all in-flight workers before releasing its resources.
func (o *Orchestrator) Events(ctx context.Context, initial *types.TaskContext) iter.Seq2[*types.Event, error] {
	if o.plan == nil || len(o.plan.Stages) == 0 {
		return xiter.EndError[types.Event](&types.EmptyFlowError{Segment: -1})
	}
	if initial == nil {
		initial = types.NewTextContext("")
	}

	return func(yield func(*types.Event, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		stopped := false
		emit := func(event *types.Event) bool {
			if stopped {
				return false
			}
			if !yield(event, nil) {
				stopped = true
				cancel()
				return false
			}
			return true
		}

		if _, err := o.execute(ctx, types.NewRunID(), 0, initial, emit); err != nil && !stopped {
			yield(nil, err)
		}
	}
}

// execute walks the plan from stage start with current as input.
func (o *Orchestrator) execute(ctx context.Context, runID string, start int, current *types.TaskContext, emit func(*types.Event) bool) (*types.RunResult, error) {
	logger := logging.FromContext(ctx)
	result := &types.RunResult{RunID: runID}

	var failures []error

	for i := start; i < len(o.plan.Stages); i++ {
		if err := ctx.Err(); err != nil {
			return result, &types.CancelledError{Stage: i, Err: err}
		}

		stage := o.plan.Stages[i]

		var (
			next     *types.TaskContext
			stageErr error
		)
		switch stage.Kind {
		case types.StageSequential:
			next, stageErr = o.runSequential(ctx, runID, i, stage, current, result, emit)
		case types.StageConcurrent:
			next, stageErr = o.runConcurrent(ctx, runID, i, stage, current, result, emit)
		}

		if stageErr != nil {
			var cerr *types.CancelledError
			if errors.As(stageErr, &cerr) {
				return result, stageErr
			}

			logger.ErrorContext(ctx, "stage failed",
				slog.String("run_id", runID),
				slog.Int("stage", i),
				slog.Any("error", stageErr),
			)
			if o.config.OnStageFailure == types.FailureAbort {
				return result, stageErr
			}

			// FailureCollect: the prior task context passes through the
			// failed stage unchanged.
			failures = append(failures, stageErr)
			continue
		}

		current = next
		logger.InfoContext(ctx, "stage committed",
			slog.String("run_id", runID),
			slog.Int("stage", i),
			slog.String("kind", stage.Kind.String()),
		)

		if err := o.saveCheckpoint(ctx, runID, i+1, current); err != nil {
			return result, fmt.Errorf("checkpoint run %s after stage %d: %w", runID, i, err)
		}
	}

	result.Final = current

	if len(failures) > 0 {
		return result, errors.Join(failures...)
	}

	if o.checkpoints != nil {
		// the run finished; its checkpoint is no longer useful
		if err := o.checkpoints.Delete(ctx, runID); err != nil {
			logger.WarnContext(ctx, "delete finished run checkpoint",
				slog.String("run_id", runID),
				slog.Any("error", err),
			)
		}
	}

	return result, nil
}

// runSequential executes a single-worker stage. On success the worker's
// finalized output becomes the new task context.
func (o *Orchestrator) runSequential(ctx context.Context, runID string, index int, stage *types.Stage, input *types.TaskContext, result *types.RunResult, emit func(*types.Event) bool) (*types.TaskContext, error) {
	ref := stage.Workers[0]
	trace := &types.StageTrace{Stage: index, Kind: stage.Kind}
	result.Trace = append(result.Trace, trace)

	var final *types.Event
	for event, err := range o.loop.Execute(ctx, ref, input) {
		if err != nil {
			werr := asInvocationError(err, ref.Name)
			werr.Stage = index
			trace.Workers = append(trace.Workers, failedWorkerTrace(werr))

			if ctx.Err() != nil {
				return nil, &types.CancelledError{Stage: index, Err: ctx.Err()}
			}
			return nil, werr
		}

		event.WithRunID(runID).WithStage(index, stage.Kind)
		if emit != nil {
			emit(event)
		}
		if event.Final {
			final = event
		}
	}

	trace.Workers = append(trace.Workers, &types.WorkerTrace{
		Name:       ref.Name,
		Iterations: final.Iteration,
		Reason:     final.Reason,
		Elapsed:    final.Elapsed,
	})

	return final.Output, nil
}

// runConcurrent executes a concurrent stage: every worker's full
// loop-controlled execution runs in parallel over the same input, and the
// stage commits a fan-in mapping of their outputs in declaration order.
//
// The barrier always holds: a failing worker never cancels its siblings, and
// the stage surfaces one [types.StageAggregateError] carrying every failing
// branch once all of them have finished.
func (o *Orchestrator) runConcurrent(ctx context.Context, runID string, index int, stage *types.Stage, input *types.TaskContext, result *types.RunResult, emit func(*types.Event) bool) (*types.TaskContext, error) {
	trace := &types.StageTrace{Stage: index, Kind: stage.Kind}
	result.Trace = append(result.Trace, trace)

	runs := make([]iter.Seq2[*types.Event, error], len(stage.Workers))
	for i, ref := range stage.Workers {
		runs[i] = o.loop.Execute(ctx, ref, input)
	}

	finals := make(map[string]*types.Event, len(stage.Workers))
	failed := make(map[string]*types.WorkerInvocationError)

	for event, err := range MergeWorkerRuns(ctx, runs) {
		if err != nil {
			werr := asInvocationError(err, "")
			werr.Stage = index
			failed[werr.Worker] = werr
			continue // barrier: keep draining sibling events
		}

		event.WithRunID(runID).WithStage(index, stage.Kind)
		if emit != nil {
			emit(event)
		}
		if event.Final {
			finals[event.Worker] = event
		}
	}

	next := types.NewFanInContext()
	var errs []*types.WorkerInvocationError

	for _, ref := range stage.Workers {
		if werr, ok := failed[ref.Name]; ok {
			trace.Workers = append(trace.Workers, failedWorkerTrace(werr))
			errs = append(errs, werr)
			continue
		}

		final, ok := finals[ref.Name]
		if !ok {
			// the worker exited during wind-down without a terminal event
			werr := &types.WorkerInvocationError{Stage: index, Worker: ref.Name, Err: context.Canceled}
			trace.Workers = append(trace.Workers, failedWorkerTrace(werr))
			errs = append(errs, werr)
			continue
		}

		trace.Workers = append(trace.Workers, &types.WorkerTrace{
			Name:       ref.Name,
			Iterations: final.Iteration,
			Reason:     final.Reason,
			Elapsed:    final.Elapsed,
		})
		next.SetOutput(ref.Name, final.Output)
	}

	if ctx.Err() != nil {
		return nil, &types.CancelledError{Stage: index, Err: ctx.Err()}
	}
	if len(errs) > 0 {
		return nil, &types.StageAggregateError{Stage: index, Errors: errs}
	}

	return next, nil
}

// saveCheckpoint records the run's progress when a checkpoint service is
// configured. The context is cloned so the stored checkpoint never aliases
// live run state.
func (o *Orchestrator) saveCheckpoint(ctx context.Context, runID string, stage int, current *types.TaskContext) error {
	if o.checkpoints == nil {
		return nil
	}

	return o.checkpoints.Save(ctx, &types.Checkpoint{
		RunID:     runID,
		Expr:      o.plan.Expr,
		Stage:     stage,
		Context:   current.Clone(),
		UpdatedAt: time.Now(),
	})
}

// asInvocationError normalizes err into a [*types.WorkerInvocationError].
func asInvocationError(err error, worker string) *types.WorkerInvocationError {
	var werr *types.WorkerInvocationError
	if errors.As(err, &werr) {
		return werr
	}
	return &types.WorkerInvocationError{Worker: worker, Err: err}
}

// failedWorkerTrace builds the trace entry of a failed worker.
func failedWorkerTrace(werr *types.WorkerInvocationError) *types.WorkerTrace {
	reason := types.StopError
	if errors.Is(werr.Err, context.Canceled) {
		reason = types.StopCancelled
	}
	return &types.WorkerTrace{
		Name:       werr.Worker,
		Iterations: werr.Iterations,
		Reason:     reason,
		Err:        werr.Err.Error(),
	}
}
