// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/odk-go/types"
)

func TestEncodeDecodeCheckpoint(t *testing.T) {
	fanIn := types.NewFanInContext()
	fanIn.SetOutput("B", types.NewTextContext("from-B"))
	fanIn.SetOutput("C", types.NewTextContext("from-C"))

	cp := &types.Checkpoint{
		RunID:     "r-1",
		Expr:      "A -> B, C -> D",
		Stage:     2,
		Context:   fanIn,
		UpdatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := types.EncodeCheckpoint(cp)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := types.DecodeCheckpoint(data)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cp, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if got := decoded.Context.Flatten(); got != "B: from-B\nC: from-C" {
		t.Errorf("decoded context Flatten() = %q", got)
	}
}
