package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var (
	flagSimRuns     int
	flagSimDuration time.Duration
	flagSimClass    string
	flagSimPilot    string
	flagSimParallel int
	flagSimRealtime bool
	flagSimSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless matches and print the results",
	Long: `Run seeded matches without a terminal UI, several at once, and
print how each one ended. Useful for balancing classes and configs.

Pilots:
  idle    - the player never moves or fires
  patrol  - the player drives in random directions and fires constantly

Examples:
  tanks sim
  tanks sim --runs 16 --class sniper --pilot patrol
  tanks sim --seed 7 --duration 5m --save
  tanks sim --realtime --runs 2 --duration 30s`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	addRulesFlags(simCmd)
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 4, "Number of matches")
	simCmd.Flags().DurationVar(&flagSimDuration, "duration", 3*time.Minute, "Simulated time limit per match")
	simCmd.Flags().StringVar(&flagSimClass, "class", "ranger", "Player class: ranger, sniper, samurai")
	simCmd.Flags().StringVar(&flagSimPilot, "pilot", "patrol", "Player behavior: idle, patrol")
	simCmd.Flags().IntVar(&flagSimParallel, "parallel", runtime.NumCPU(), "Matches run at the same time")
	simCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Tick on a wall-clock ticker instead of as fast as possible")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record finished matches in the scores database")
}

// pilot decides the player's keys before each tick.
type pilot interface {
	Drive(in *tanks.Input, tick uint64)
}

type idlePilot struct{}

func (idlePilot) Drive(*tanks.Input, uint64) {}

// patrolPilot holds fire and picks a new random heading every turn ticks.
type patrolPilot struct {
	rng  *rand.Rand
	turn uint64
	key  tanks.Key
}

func (p *patrolPilot) Drive(in *tanks.Input, tick uint64) {
	if tick%p.turn == 0 {
		in.KeyUp(p.key)
		p.key = tanks.Key(p.rng.Intn(4)) // one of the four movement keys
		in.KeyDown(p.key)
	}
	in.KeyDown(tanks.KeyFire)
}

func newPilot(name string, seed int64) (pilot, error) {
	switch name {
	case "idle":
		return idlePilot{}, nil
	case "patrol":
		return &patrolPilot{rng: rand.New(rand.NewSource(seed)), turn: 45}, nil
	}
	return nil, fmt.Errorf("unknown pilot %q", name)
}

// simSpec describes one batch of matches.
type simSpec struct {
	Class    tanks.Class
	Rules    config.TanksConfig
	Pilot    string
	Seed     int64
	Runs     int
	Parallel int
	Duration time.Duration
	FPS      int
	Realtime bool
}

// simResult is how one match ended.
type simResult struct {
	Run     int
	Seed    int64
	Outcome tanks.Outcome
	Score   int
	Lives   int
	Ticks   uint64
	Clock   time.Duration
}

func runSim(cmd *cobra.Command, _ []string) error {
	class, err := tanks.ParseClass(flagSimClass)
	if err != nil {
		return err
	}
	if flagSimRuns <= 0 {
		return fmt.Errorf("invalid --runs %d", flagSimRuns)
	}
	if err := applyRules(); err != nil {
		return err
	}
	rules, err := tanks.LoadConfig()
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	spec := simSpec{
		Class:    class,
		Rules:    rules,
		Pilot:    flagSimPilot,
		Seed:     seed,
		Runs:     flagSimRuns,
		Parallel: flagSimParallel,
		Duration: flagSimDuration,
		FPS:      flagFPS,
		Realtime: flagSimRealtime,
	}

	start := time.Now()
	results, err := simulate(ctx, spec, logger)
	if err != nil {
		return err
	}
	logger.Info("simulation finished", "runs", len(results), "elapsed", time.Since(start).Round(time.Millisecond))

	printResults(spec, results)

	if flagSimSave {
		return saveResults(class, results)
	}
	return nil
}

// simulate runs every match of spec and returns the results in run order.
func simulate(ctx context.Context, spec simSpec, logger *log.Logger) ([]simResult, error) {
	if _, err := newPilot(spec.Pilot, 0); err != nil {
		return nil, err
	}
	if spec.FPS <= 0 {
		spec.FPS = 60
	}

	results := make([]simResult, spec.Runs)

	g, ctx := errgroup.WithContext(ctx)
	if spec.Parallel > 0 {
		g.SetLimit(spec.Parallel)
	}

	for i, n := 0, spec.Runs; i < n; i++ {
		i := i
		g.Go(func() error {
			seed := spec.Seed + int64(i)
			p, _ := newPilot(spec.Pilot, seed)

			var (
				res simResult
				err error
			)
			if spec.Realtime {
				res, err = playRealtime(ctx, spec, seed, p, logger)
			} else {
				res, err = playFast(ctx, spec, seed, p, logger)
			}
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
			res.Run = i + 1
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func newSimEngine(spec simSpec, seed int64, logger *log.Logger) *tanks.Engine {
	return tanks.NewEngine(nil, tanks.NewInput(), spec.Class, tanks.Callbacks{},
		tanks.WithConfig(spec.Rules),
		tanks.WithSeed(seed),
		tanks.WithLogger(logger.With("seed", seed)),
	)
}

func resultOf(e *tanks.Engine, seed int64) simResult {
	return simResult{
		Seed:    seed,
		Outcome: e.Outcome(),
		Score:   e.Score(),
		Lives:   e.Lives(),
		Ticks:   e.Ticks(),
		Clock:   e.Clock(),
	}
}

// playFast ticks with a fixed delta as fast as the CPU allows.
func playFast(ctx context.Context, spec simSpec, seed int64, p pilot, logger *log.Logger) (simResult, error) {
	e := newSimEngine(spec, seed, logger)
	e.Start()
	defer e.Destroy()

	dt := time.Second / time.Duration(spec.FPS)
	for e.Outcome() == tanks.OutcomeNone && e.Clock() < spec.Duration {
		if e.Ticks()%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return simResult{}, err
			}
		}
		p.Drive(e.Input(), e.Ticks())
		e.Tick(dt)
	}

	return resultOf(e, seed), nil
}

// playRealtime lets the engine tick on its own ticker while the pilot
// drives the input source from a second goroutine.
func playRealtime(ctx context.Context, spec simSpec, seed int64, p pilot, logger *log.Logger) (simResult, error) {
	e := newSimEngine(spec, seed, logger)
	in := e.Input()
	e.Start()

	ctx, cancel := context.WithTimeout(ctx, spec.Duration)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel() // match over: stop the pilot
		err := e.Run(ctx, spec.FPS)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		ticker := time.NewTicker(time.Second / time.Duration(spec.FPS))
		defer ticker.Stop()
		for tick := uint64(0); ; tick++ {
			p.Drive(in, tick)
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})

	err := g.Wait()
	e.Destroy()
	if err != nil && !errors.Is(err, context.Canceled) {
		return simResult{}, err
	}
	return resultOf(e, seed), nil
}

func printResults(spec simSpec, results []simResult) {
	fmt.Printf("Simulated %d %s matches (pilot %s, seed %d)\n\n", len(results), spec.Class, spec.Pilot, spec.Seed)
	fmt.Printf("  %-4s  %-20s  %-8s  %-6s  %-5s  %-7s  %s\n", "Run", "Seed", "Outcome", "Score", "Lives", "Ticks", "Time")
	fmt.Printf("  %-4s  %-20s  %-8s  %-6s  %-5s  %-7s  %s\n", "---", "----", "-------", "-----", "-----", "-----", "----")

	wins, best := 0, 0
	for _, r := range results {
		outcome := r.Outcome.String()
		if r.Outcome == tanks.OutcomeNone {
			outcome = "timeout"
		}
		fmt.Printf("  %-4d  %-20d  %-8s  %-6d  %-5d  %-7d  %s\n",
			r.Run, r.Seed, outcome, r.Score, r.Lives, r.Ticks, r.Clock.Round(time.Millisecond))
		if r.Outcome == tanks.OutcomeVictory {
			wins++
		}
		best = max(best, r.Score)
	}

	fmt.Println()
	fmt.Printf("Victories: %d/%d  Best score: %d\n", wins, len(results), best)
}

// saveResults records finished matches; timeouts have no outcome to store.
func saveResults(class tanks.Class, results []simResult) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	saved := 0
	for _, r := range results {
		outcome := storage.OutcomeDefeat
		switch r.Outcome {
		case tanks.OutcomeNone:
			continue
		case tanks.OutcomeVictory:
			outcome = storage.OutcomeVictory
		}

		if _, err := store.SaveRun(storage.RunRecord{
			GameID:   tanks.GameID,
			Player:   "sim",
			Variant:  class.String(),
			Score:    r.Score,
			Outcome:  outcome,
			Duration: r.Clock,
		}); err != nil {
			return err
		}
		saved++
	}

	logger.Info("runs saved", "count", saved, "db", flagDBPath)
	return nil
}
