package main

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
)

func testSpec(pilot string) simSpec {
	return simSpec{
		Class:    tanks.ClassSniper,
		Rules:    config.DefaultTanksConfig(),
		Pilot:    pilot,
		Seed:     99,
		Runs:     4,
		Parallel: 2,
		Duration: 10 * time.Second,
		FPS:      60,
	}
}

func TestSimulateDeterministic(t *testing.T) {
	quiet := log.New(io.Discard)

	first, err := simulate(context.Background(), testSpec("patrol"), quiet)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	second, err := simulate(context.Background(), testSpec("patrol"), quiet)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	if len(first) != 4 {
		t.Fatalf("got %d results, expected 4", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("run %d differs between batches: %+v vs %+v", i+1, first[i], second[i])
		}
		if first[i].Run != i+1 || first[i].Seed != 99+int64(i) {
			t.Errorf("result %d out of order: %+v", i, first[i])
		}
	}
}

func TestSimulateTimeLimit(t *testing.T) {
	spec := testSpec("idle")
	spec.Runs = 1
	spec.FPS = 50
	spec.Duration = 2 * time.Second

	results, err := simulate(context.Background(), spec, log.New(io.Discard))
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	r := results[0]
	if r.Outcome != tanks.OutcomeNone {
		t.Skipf("match ended early with %s", r.Outcome)
	}
	if r.Ticks != 100 {
		t.Errorf("Ticks = %d, expected 100 for 2s at 50fps", r.Ticks)
	}
	if r.Score != 0 {
		t.Errorf("idle pilot should not score, got %d", r.Score)
	}
}

func TestSimulateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := simulate(ctx, testSpec("idle"), log.New(io.Discard)); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestNewPilot(t *testing.T) {
	if _, err := newPilot("idle", 1); err != nil {
		t.Errorf("idle: %v", err)
	}
	if _, err := newPilot("patrol", 1); err != nil {
		t.Errorf("patrol: %v", err)
	}
	if _, err := simulate(context.Background(), testSpec("kamikaze"), log.New(io.Discard)); err == nil {
		t.Error("expected an error for an unknown pilot")
	}
}

func TestPatrolPilotHoldsFire(t *testing.T) {
	p, _ := newPilot("patrol", 3)
	in := tanks.NewInput()

	p.Drive(in, 0)
	st := in.State()
	moving := 0
	for _, held := range []bool{st.Up, st.Down, st.Left, st.Right} {
		if held {
			moving++
		}
	}
	if !st.Shoot || moving != 1 {
		t.Errorf("State() = %+v, expected fire and exactly one direction", st)
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"localhost:2222": "2222",
		"[::1]:22":       "22",
		"noport":         "noport",
	}
	for addr, want := range tests {
		if got := portOf(addr); got != want {
			t.Errorf("portOf(%q) = %q, expected %q", addr, got, want)
		}
	}
}
