package experiment

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/predsim/internal/config"
	"github.com/san-kum/predsim/internal/dynamo"
	"github.com/san-kum/predsim/internal/trace"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Dt = 0

	if _, err := New(cfg); !errors.Is(err, dynamo.ErrInvalidStep) {
		t.Errorf("expected ErrInvalidStep, got %v", err)
	}
}

func TestRun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Dt = 0.1
	cfg.RunTime = 1.0
	cfg.Labels = config.LabelsConfig{Predator: "Lynx", Prey: "Hare"}

	exp, err := New(cfg)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	ts := exp.WithDefaultMetrics().Run()

	if ts.Len() != 11 {
		t.Errorf("expected 11 samples, got %d", ts.Len())
	}
	if ts.Predators.Label != "Lynx" || ts.Prey.Label != "Hare" {
		t.Errorf("labels not attached: %+v", ts.Labels())
	}
	if got := ts.Metrics["peak_prey"]; got < 3 {
		t.Errorf("expected peak prey >= 3, got %g", got)
	}
	if !math.IsNaN(ts.Metrics["extinction_time"]) {
		t.Errorf("expected no extinction, got %g", ts.Metrics["extinction_time"])
	}
}

func TestRunIsRepeatable(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.RunTime = 2

	exp, err := New(cfg)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	a, b := exp.Run(), exp.Run()
	if a.Len() != b.Len() || a.Final() != b.Final() {
		t.Errorf("runs differ: %+v vs %+v", a.Final(), b.Final())
	}
}

func TestTraceFollowsConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Dt = 0.5
	cfg.RunTime = 2
	cfg.Trace = true

	exp, err := New(cfg)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	var buf bytes.Buffer
	exp.SetTracer(trace.NewPrinter(&buf))
	exp.Run()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 trace lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[3], "time=2, ") {
		t.Errorf("unexpected final trace line %q", lines[3])
	}
}
