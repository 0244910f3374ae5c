package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/waybackcrawl/waybackcrawl/internal/model"
)

// fakeStep is a configurable step for pipeline tests.
type fakeStep struct {
	name string
	err  error
	fn   func(report *model.ScanReport)
}

func (s *fakeStep) Name() string { return s.name }

func (s *fakeStep) Do(_ context.Context, report *model.ScanReport) error {
	if s.fn != nil {
		s.fn(report)
	}
	return s.err
}

// TestPipelineExecute tests sequential step execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes steps in order and records them", func(t *testing.T) {
		t.Parallel()

		var order []string
		p := New()
		p.AddSteps(
			&fakeStep{name: "first", fn: func(*model.ScanReport) { order = append(order, "first") }},
			&fakeStep{name: "second", fn: func(*model.ScanReport) { order = append(order, "second") }},
		)

		report := model.NewScanReport("example.com")
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(order) != 2 || order[0] != "first" || order[1] != "second" {
			t.Errorf("unexpected execution order: %v", order)
		}
		if len(report.PerformedSteps) != 2 {
			t.Errorf("unexpected performed steps: %v", report.PerformedSteps)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		stepErr := errors.New("fetch failed")
		var secondRan bool
		p := New()
		p.AddSteps(
			&fakeStep{name: "failing", err: stepErr},
			&fakeStep{name: "second", fn: func(*model.ScanReport) { secondRan = true }},
		)

		report := model.NewScanReport("example.com")
		err := p.Execute(context.Background(), report)
		if !errors.Is(err, stepErr) {
			t.Fatalf("expected step error, got %v", err)
		}
		if secondRan {
			t.Error("expected pipeline to stop after failing step")
		}
		if report.ErrorMessage != "fetch failed" {
			t.Errorf("expected error recorded in report, got %q", report.ErrorMessage)
		}
	})

	t.Run("continues after error with WithContinueOnError", func(t *testing.T) {
		t.Parallel()

		var secondRan bool
		p := New(WithContinueOnError(true))
		p.AddSteps(
			&fakeStep{name: "failing", err: errors.New("fetch failed")},
			&fakeStep{name: "second", fn: func(*model.ScanReport) { secondRan = true }},
		)

		report := model.NewScanReport("example.com")
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !secondRan {
			t.Error("expected second step to run")
		}
	})

	t.Run("cancelled context marks report as timed out", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := New()
		p.AddStep(&fakeStep{name: "never"})

		report := model.NewScanReport("example.com")
		err := p.Execute(ctx, report)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if !report.TimedOut {
			t.Error("expected report to be marked timed out")
		}
	})
}

// TestPipelineStepNames tests step introspection.
func TestPipelineStepNames(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddSteps(
		&fakeStep{name: "fetch"},
		&fakeStep{name: "classify"},
	)

	if p.StepCount() != 2 {
		t.Errorf("got %d steps, expected 2", p.StepCount())
	}
	names := p.StepNames()
	if len(names) != 2 || names[0] != "fetch" || names[1] != "classify" {
		t.Errorf("unexpected step names: %v", names)
	}
}
