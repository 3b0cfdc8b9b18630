package tanks

import "math"

// Snapshot is a flattened view of the simulation state.
// Uses primitive types only; positions are stored in hundredths of a pixel.
type Snapshot struct {
	Tick       uint64
	ClockMs    int64
	Score      int
	Lives      int
	Outcome    int
	SpawnMs    int64
	BricksLeft int
	BaseDown   bool

	// Player: X, Y, Dir
	Player [3]int

	// Each enemy is 4 ints: ID, X, Y, Dir
	EnemyCount int
	EnemyData  []int

	// Each bullet is 5 ints: Owner, X, Y, Dir, Pierce
	BulletCount int
	BulletData  []int

	ExplosionCount int
}

func centi(v float64) int {
	return int(math.Round(v * 100))
}

// Snapshot returns the current state as a Snapshot.
func (e *Engine) Snapshot() Snapshot {
	enemyData := make([]int, 0, len(e.enemies)*4)
	for _, t := range e.enemies {
		enemyData = append(enemyData, t.ID, centi(t.Pos.X), centi(t.Pos.Y), int(t.Dir))
	}

	bulletData := make([]int, 0, len(e.bullets)*5)
	for _, b := range e.bullets {
		bulletData = append(bulletData, b.OwnerID, centi(b.Pos.X), centi(b.Pos.Y), int(b.Dir), b.Pierce)
	}

	return Snapshot{
		Tick:       e.ticks,
		ClockMs:    e.clock.Milliseconds(),
		Score:      e.score,
		Lives:      e.lives,
		Outcome:    int(e.outcome),
		SpawnMs:    e.spawnTimer.Milliseconds(),
		BricksLeft: e.m.Count(TileBrick),
		BaseDown:   e.m.IsBaseDestroyed(),

		Player: [3]int{centi(e.player.Pos.X), centi(e.player.Pos.Y), int(e.player.Dir)},

		EnemyCount:  len(e.enemies),
		EnemyData:   enemyData,
		BulletCount: len(e.bullets),
		BulletData:  bulletData,

		ExplosionCount: len(e.explosions),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.ClockMs)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Outcome)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.SpawnMs)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BricksLeft)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.EnemyCount)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BulletCount) //#nosec G115 -- hash computation
	if snap.BaseDown {
		h = h*31 + 1
	}

	for _, v := range snap.Player {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.EnemyData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.BulletData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	h = h*31 + uint64(snap.ExplosionCount) //#nosec G115 -- hash computation

	return h
}

// Snapshot returns the running match state, or a zero Snapshot before Reset.
func (g *Game) Snapshot() Snapshot {
	if g.engine == nil {
		return Snapshot{}
	}
	return g.engine.Snapshot()
}
