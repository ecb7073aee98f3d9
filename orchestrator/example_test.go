// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package orchestrator_test

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/go-a2a/odk-go/flow"
	"github.com/go-a2a/odk-go/orchestrator"
	"github.com/go-a2a/odk-go/pkg/logging"
	"github.com/go-a2a/odk-go/types"
	"github.com/go-a2a/odk-go/worker"
)

func ExampleOrchestrator_Run() {
	ctx := logging.NewContext(context.Background(), slog.New(slog.DiscardHandler))

	reg := flow.NewRegistry()
	reg.Register(worker.Func("outline", func(ctx context.Context, input *types.TaskContext) (*types.TaskContext, error) {
		return types.NewTextContext("outline of: " + strings.SplitN(input.Flatten(), "\n", 2)[0]), nil
	}))
	reg.Register(worker.Func("draft", func(ctx context.Context, input *types.TaskContext) (*types.TaskContext, error) {
		return types.NewTextContext("draft from " + input.Flatten()), nil
	}))
	reg.Register(worker.Func("fact_check", func(ctx context.Context, input *types.TaskContext) (*types.TaskContext, error) {
		return types.NewTextContext("checked: " + input.Flatten()), nil
	}))
	reg.Register(worker.Func("style_check", func(ctx context.Context, input *types.TaskContext) (*types.TaskContext, error) {
		return types.NewTextContext("styled: " + input.Flatten()), nil
	}))

	plan, err := reg.Parse("outline -> draft -> fact_check, style_check")
	if err != nil {
		fmt.Println(err)
		return
	}

	task := types.NewTextContext(heredoc.Doc(`
		Write a short report on the Q3 release.
		Audience: engineering leadership.
	`))

	result, err := orchestrator.New(plan).Run(ctx, task)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(result.Final.Flatten())
	// Output:
	// fact_check: checked: draft from outline of: Write a short report on the Q3 release.
	// style_check: styled: draft from outline of: Write a short report on the Q3 release.
}
