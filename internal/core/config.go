package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the match has ended (defeat or victory)
	Victory  bool // Whether the match ended in a win
	Paused   bool // Whether the game is paused
	Lives    int  // Remaining lives, for games that track them
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// RunSummary describes a finished match for the run history.
type RunSummary struct {
	Variant  string        // game-specific flavor, e.g. the chosen tank class
	Score    int           // final score
	Victory  bool          // whether the match was won
	Duration time.Duration // simulated time the match lasted
	Ticks    uint64        // simulation ticks processed
}
