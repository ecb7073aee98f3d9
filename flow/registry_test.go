// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-a2a/odk-go/flow"
	"github.com/go-a2a/odk-go/types"
	"github.com/go-a2a/odk-go/worker"
)

func echoWorker(name string) types.Worker {
	return worker.Func(name, func(ctx context.Context, input *types.TaskContext) (*types.TaskContext, error) {
		return input, nil
	})
}

func TestRegistryRegister(t *testing.T) {
	reg := flow.NewRegistry()

	if err := reg.Register(echoWorker("A")); err != nil {
		t.Fatalf("Register(A): %v", err)
	}
	if got := reg.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}

	if _, ok := reg.Lookup("A"); !ok {
		t.Error("Lookup(A) = false, want true")
	}
	if _, ok := reg.Lookup("B"); ok {
		t.Error("Lookup(B) = true, want false")
	}
}

func TestRegistryDuplicateName(t *testing.T) {
	reg := flow.NewRegistry()

	if err := reg.Register(echoWorker("A")); err != nil {
		t.Fatal(err)
	}

	err := reg.Register(echoWorker("A"))
	var derr *types.DuplicateWorkerError
	if !errors.As(err, &derr) {
		t.Fatalf("error = %v, want DuplicateWorkerError", err)
	}
	if derr.Name != "A" {
		t.Errorf("Name = %q, want %q", derr.Name, "A")
	}
}

func TestRegistryInvalidName(t *testing.T) {
	tests := []string{"", "has space", "semi;colon", "arrow->"}

	for _, name := range tests {
		reg := flow.NewRegistry()
		err := reg.Register(echoWorker(name))

		var ierr *types.InvalidWorkerNameError
		if !errors.As(err, &ierr) {
			t.Errorf("Register(%q) error = %v, want InvalidWorkerNameError", name, err)
		}
	}
}

func TestRegistryWithMaxLoops(t *testing.T) {
	reg := flow.NewRegistry()
	if err := reg.Register(echoWorker("A"), flow.WithMaxLoops(4)); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(echoWorker("B")); err != nil {
		t.Fatal(err)
	}

	plan, err := reg.Parse("A -> B")
	if err != nil {
		t.Fatal(err)
	}

	if got := plan.Stages[0].Workers[0].MaxLoops; got != 4 {
		t.Errorf("A ref MaxLoops = %d, want 4", got)
	}
	if got := plan.Stages[1].Workers[0].MaxLoops; got != 0 {
		t.Errorf("B ref MaxLoops = %d, want 0", got)
	}
}
