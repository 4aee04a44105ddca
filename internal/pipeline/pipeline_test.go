package pipeline_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rakshithn/ecommerce-pipeline/internal/pipeline"
)

type recordingStage struct {
	name string
	err  error
	log  *[]string
}

func (s *recordingStage) Name() string { return s.name }

func (s *recordingStage) Execute(ctx context.Context, state *pipeline.RunState) error {
	*s.log = append(*s.log, s.name)
	return s.err
}

func TestPipelineRunsStagesInOrder(t *testing.T) {
	var log []string
	p := pipeline.New(
		&recordingStage{name: "first", log: &log},
		&recordingStage{name: "second", log: &log},
		&recordingStage{name: "third", log: &log},
	)

	if err := p.Execute(context.Background(), newState()); err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	want := []string{"first", "second", "third"}
	if len(log) != len(want) {
		t.Fatalf("executed %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("stage %d = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestPipelineStopsAtFirstFailure(t *testing.T) {
	var log []string
	p := pipeline.New(
		&recordingStage{name: "product_sync", log: &log},
		&recordingStage{name: "synthesize_sales", log: &log, err: errors.New("connection lost")},
		&recordingStage{name: "quality_gate", log: &log},
	)

	err := p.Execute(context.Background(), newState())
	if err == nil {
		t.Fatal("expected pipeline failure, got nil")
	}
	if !strings.Contains(err.Error(), "synthesize_sales") {
		t.Errorf("error should name the failed stage, got: %v", err)
	}
	if len(log) != 2 {
		t.Errorf("stages after a failure must not run, executed: %v", log)
	}
}

func TestNewRunStateAssignsRunID(t *testing.T) {
	a := newState()
	b := newState()
	if a.RunID == "" || a.RunID == b.RunID {
		t.Errorf("run ids must be unique and non-empty, got %q and %q", a.RunID, b.RunID)
	}
}
