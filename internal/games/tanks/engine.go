package tanks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
)

// ErrNotRunning is returned by Run when the engine has not been started.
var ErrNotRunning = errors.New("tanks: engine not running")

// Outcome is the latched result of a match.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeDefeat
	OutcomeVictory
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDefeat:
		return "defeat"
	case OutcomeVictory:
		return "victory"
	default:
		return "none"
	}
}

// Callbacks notify the owner of match events. Nil callbacks are skipped.
// OnGameOver and OnVictory fire at most once per engine, and never both.
type Callbacks struct {
	OnGameOver func()
	OnVictory  func()
	OnScore    func(score int)
	OnLives    func(lives int)
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig replaces the default rules. Invalid configs are ignored with a warning.
func WithConfig(cfg config.TanksConfig) Option {
	return func(e *Engine) {
		if err := cfg.Validate(); err != nil {
			e.logger.Warn("ignoring config", "err", err)
			return
		}
		e.cfg = cfg
	}
}

// WithSeed makes AI and effects reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithLogger routes engine events to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine owns one match: the map, every actor, bullets and explosions.
// Tick, Start, Resize and Destroy must be called from a single goroutine;
// Stop and Running may be called from anywhere.
type Engine struct {
	surface *core.Screen
	input   *Input
	cb      Callbacks
	class   Class
	cfg     config.TanksConfig
	logger  *log.Logger
	seed    int64

	difficulty *config.DifficultyManager
	rng        *rand.Rand // simulation decisions
	fxRng      *rand.Rand // cosmetic only

	running   atomic.Bool
	destroyed atomic.Bool
	started   bool

	m          *Map
	resolver   *Resolver
	fog        *Fog
	player     *Tank
	enemies    []*Tank
	bullets    []*Bullet
	explosions []*Explosion
	enemyClass Class
	lastID     int

	score      int
	lives      int
	spawnTimer time.Duration
	clock      time.Duration
	ticks      uint64
	outcome    Outcome

	tanksBuf []*Tank
}

// NewEngine creates a match for a player of the given class. The surface may
// be nil for headless runs; input may be nil, in which case a fresh source is
// created and available through Input.
func NewEngine(surface *core.Screen, input *Input, class Class, cb Callbacks, opts ...Option) *Engine {
	if input == nil {
		input = NewInput()
	}
	e := &Engine{
		surface: surface,
		input:   input,
		cb:      cb,
		class:   class,
		cfg:     config.DefaultTanksConfig(),
		logger:  log.New(io.Discard),
		seed:    1,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.difficulty = config.NewDifficultyManager(e.cfg.Difficulty)
	e.rng = rand.New(rand.NewSource(e.seed))
	e.fxRng = rand.New(rand.NewSource(e.seed ^ 0x5eed))

	enemyClass, err := ParseClass(e.cfg.Enemies.Class)
	if err != nil {
		e.logger.Warn("unknown enemy class, using ranger", "class", e.cfg.Enemies.Class)
	}
	e.enemyClass = enemyClass

	e.m = NewMap()
	e.resolver = NewResolver(e.m)
	e.fog = NewFog(e.cfg.Fog.RadiusTiles)
	e.lives = e.cfg.Player.Lives
	e.player = NewTank(e.nextID(), e.playerStart(), class, DirUp, true)
	e.fog.Update(e.player.Pos)

	return e
}

func (e *Engine) nextID() int {
	e.lastID++
	return e.lastID
}

func (e *Engine) playerStart() Position {
	s := e.cfg.Player.Start
	return Position{X: float64(s.Col * TileSize), Y: float64(s.Row * TileSize)}
}

// Start spawns the initial enemies on first use and resumes ticking.
// It has no effect once the match has ended or the engine was destroyed.
func (e *Engine) Start() {
	if e.destroyed.Load() || e.outcome != OutcomeNone {
		return
	}
	if !e.started {
		e.started = true
		e.spawnInitial()
		e.logger.Info("match started", "class", e.class, "enemies", len(e.enemies), "lives", e.lives)
	}
	e.running.Store(true)
}

// Stop pauses ticking. The match state is kept.
func (e *Engine) Stop() {
	e.running.Store(false)
}

// Running reports whether Tick advances the simulation.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// Resize changes the render surface dimensions in cells.
func (e *Engine) Resize(width, height int) {
	if e.surface != nil {
		e.surface.Resize(width, height)
	}
}

// Destroy stops the engine for good and detaches its input source.
func (e *Engine) Destroy() {
	e.Stop()
	if e.destroyed.Swap(true) {
		return
	}
	e.input.Detach()
	e.logger.Debug("engine destroyed", "ticks", e.ticks)
}

// Run ticks at fps with measured deltas until ctx is done or the match ends.
func (e *Engine) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("tanks: invalid fps %d", fps)
	}
	if !e.Running() {
		return ErrNotRunning
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			e.Stop()
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			e.Tick(dt)
			if !e.Running() {
				return nil
			}
		}
	}
}

// Tick advances the match by one frame that lasted dt.
func (e *Engine) Tick(dt time.Duration) {
	if !e.running.Load() || e.destroyed.Load() {
		return
	}
	if dt < 0 {
		dt = 0
	}
	e.clock += dt
	e.ticks++

	e.updatePlayer(dt)
	e.updateEnemies(dt)
	e.updateBullets(dt)
	e.resolveMovement()
	delay := e.updateSpawns(dt)

	if len(e.enemies) == 0 && e.spawnTimer < delay-e.cfg.Enemies.VictoryGrace() {
		e.declareVictory()
	}

	e.updateExplosions(dt)

	if e.m.IsBaseDestroyed() {
		e.declareDefeat("base destroyed")
	}

	if e.cfg.Fog.Enabled {
		e.fog.Update(e.player.Pos)
	}
	if e.surface != nil {
		e.render()
	}

	if e.outcome != OutcomeNone {
		e.running.Store(false)
	}
}

func (e *Engine) updatePlayer(dt time.Duration) {
	in := e.input.State()
	e.player.Update(dt, &in)
	if in.Shoot && e.player.CanShoot(e.clock) {
		e.bullets = append(e.bullets, e.player.Shoot(e.clock))
	}
}

func (e *Engine) updateEnemies(dt time.Duration) {
	chance := e.difficulty.FireChance(e.cfg.Enemies.FireChance, e.score, int(e.ticks))
	for _, t := range e.enemies {
		t.Update(dt, nil)
		if t.CanShoot(e.clock) && e.rng.Float64() < chance {
			e.bullets = append(e.bullets, t.Shoot(e.clock))
		}
	}
}

func (e *Engine) updateBullets(dt time.Duration) {
	kept := e.bullets[:0]
	for _, b := range e.bullets {
		b.Update(dt)

		if b.OutOfBounds(MapPixelWidth, MapPixelHeight) {
			continue
		}

		if hit := e.resolver.BulletWall(b); hit.Hit {
			if hit.Destroyed {
				e.logger.Debug("tile destroyed", "kind", hit.Kind, "x", b.Pos.X, "y", b.Pos.Y)
			}
			if hit.Terminal {
				kind := ExplosionSteel
				if hit.Kind == TileBrick {
					kind = ExplosionBrick
				}
				e.explode(b.Pos, kind)
				continue
			}
		}

		if e.bulletHitsTank(b) {
			continue
		}
		kept = append(kept, b)
	}
	for i := len(kept); i < len(e.bullets); i++ {
		e.bullets[i] = nil
	}
	e.bullets = kept
}

// bulletHitsTank tests the player first, then enemies in order, skipping the
// owner. A reflection hands the bullet to the reflector and keeps scanning.
func (e *Engine) bulletHitsTank(b *Bullet) bool {
	for _, t := range e.allTanks() {
		if t.ID == b.OwnerID {
			continue
		}
		hit, reflected := e.resolver.BulletTank(b, t)
		if !hit {
			continue
		}
		if reflected {
			e.logger.Debug("bullet reflected", "tank", t.ID)
			continue
		}
		e.resolveHit(t)
		return true
	}
	return false
}

func (e *Engine) resolveHit(t *Tank) {
	if t.IsPlayer {
		if e.lives <= 0 {
			return
		}
		e.lives--
		if e.cb.OnLives != nil {
			e.cb.OnLives(e.lives)
		}
		e.logger.Info("player hit", "lives", e.lives)
		if e.lives <= 0 {
			e.declareDefeat("out of lives")
			return
		}
		e.player.MoveTo(e.playerStart())
		return
	}

	e.explode(t.Center(), ExplosionTank)
	e.score += e.cfg.Enemies.KillScore
	if e.cb.OnScore != nil {
		e.cb.OnScore(e.score)
	}
	e.removeEnemy(t)
	e.logger.Info("enemy destroyed", "score", e.score, "remaining", len(e.enemies))
}

func (e *Engine) removeEnemy(t *Tank) {
	for i, en := range e.enemies {
		if en == t {
			copy(e.enemies[i:], e.enemies[i+1:])
			e.enemies[len(e.enemies)-1] = nil
			e.enemies = e.enemies[:len(e.enemies)-1]
			return
		}
	}
}

func (e *Engine) resolveMovement() {
	tanks := e.allTanks()
	e.player.Pos = e.resolver.ResolveTank(e.player, tanks)
	for _, t := range e.enemies {
		t.Pos = e.resolver.ResolveTank(t, tanks)
	}
}

// updateSpawns advances the spawn cycle and returns its current length.
func (e *Engine) updateSpawns(dt time.Duration) time.Duration {
	delay := e.difficulty.SpawnDelay(e.cfg.Enemies.SpawnDelay(), e.score, int(e.ticks))
	e.spawnTimer += dt
	if e.spawnTimer >= delay {
		e.spawnEnemy()
		e.spawnTimer = 0
	}
	return delay
}

func (e *Engine) spawnInitial() {
	points := e.cfg.Enemies.SpawnPoints
	for i := 0; i < e.cfg.Enemies.Initial && i < len(points); i++ {
		e.addEnemy(tilePosition(points[i]))
	}
}

// spawnEnemy adds one enemy at a random free spawn point, if the cap allows.
func (e *Engine) spawnEnemy() {
	if len(e.enemies) >= e.cfg.Enemies.MaxActive {
		return
	}

	tanks := e.allTanks()
	free := make([]Position, 0, len(e.cfg.Enemies.SpawnPoints))
	for _, pt := range e.cfg.Enemies.SpawnPoints {
		p := tilePosition(pt)
		if !e.resolver.SpawnBlocked(p, tanks) {
			free = append(free, p)
		}
	}
	if len(free) == 0 {
		e.logger.Debug("all spawn points blocked")
		return
	}

	t := e.addEnemy(free[e.rng.Intn(len(free))])
	e.logger.Debug("enemy spawned", "id", t.ID, "x", t.Pos.X, "y", t.Pos.Y)
}

func (e *Engine) addEnemy(p Position) *Tank {
	t := NewTank(e.nextID(), p, e.enemyClass, DirDown, false)
	lo, hi := e.cfg.Enemies.RetargetWindow()
	speed := e.difficulty.Speed(e.cfg.Enemies.SpeedFactor, e.score, int(e.ticks))
	t.EnableAI(rand.New(rand.NewSource(e.rng.Int63())), speed, lo, hi)
	e.enemies = append(e.enemies, t)
	return t
}

func tilePosition(pt config.TilePoint) Position {
	return Position{X: float64(pt.Col * TileSize), Y: float64(pt.Row * TileSize)}
}

func (e *Engine) updateExplosions(dt time.Duration) {
	kept := e.explosions[:0]
	for _, x := range e.explosions {
		if x.Update(dt) {
			kept = append(kept, x)
		}
	}
	for i := len(kept); i < len(e.explosions); i++ {
		e.explosions[i] = nil
	}
	e.explosions = kept
}

func (e *Engine) explode(p Position, kind ExplosionKind) {
	e.explosions = append(e.explosions, NewExplosion(p, kind, e.fxRng))
}

func (e *Engine) declareDefeat(reason string) {
	if e.outcome != OutcomeNone {
		return
	}
	e.outcome = OutcomeDefeat
	e.logger.Info("match lost", "reason", reason, "score", e.score)
	if e.cb.OnGameOver != nil {
		e.cb.OnGameOver()
	}
}

func (e *Engine) declareVictory() {
	if e.outcome != OutcomeNone {
		return
	}
	e.outcome = OutcomeVictory
	e.logger.Info("match won", "score", e.score)
	if e.cb.OnVictory != nil {
		e.cb.OnVictory()
	}
}

// allTanks returns the player followed by the enemies in a reused buffer.
func (e *Engine) allTanks() []*Tank {
	e.tanksBuf = append(e.tanksBuf[:0], e.player)
	e.tanksBuf = append(e.tanksBuf, e.enemies...)
	return e.tanksBuf
}

// Input returns the engine's input source.
func (e *Engine) Input() *Input { return e.input }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Lives returns the remaining lives.
func (e *Engine) Lives() int { return e.lives }

// Outcome returns the latched match result.
func (e *Engine) Outcome() Outcome { return e.outcome }

// Clock returns the simulated time elapsed while running.
func (e *Engine) Clock() time.Duration { return e.clock }

// Ticks returns the number of simulated ticks.
func (e *Engine) Ticks() uint64 { return e.ticks }

// Class returns the player's class.
func (e *Engine) Class() Class { return e.class }

// EnemyCount returns the number of live enemies.
func (e *Engine) EnemyCount() int { return len(e.enemies) }

// ReflectProgress returns the player's reflect cooldown completion.
func (e *Engine) ReflectProgress() float64 { return e.player.ReflectProgress() }
