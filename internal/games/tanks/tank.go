package tanks

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// Tank is a player or AI controlled actor. Pos is the top-left corner.
type Tank struct {
	ID       int
	Pos      Position
	PrevPos  Position // position before the last movement, used for rollback
	Dir      Direction
	Class    Class
	IsPlayer bool
	AI       bool
	Size     float64

	lastShot     time.Duration
	reflectTimer time.Duration

	// AI wandering
	rng         *rand.Rand
	speedFactor float64
	aiTimer     time.Duration
	aiThreshold time.Duration
	aiDir       Direction
	retargetMin time.Duration
	retargetMax time.Duration
}

// NewTank creates a tank ready to fire immediately.
func NewTank(id int, pos Position, class Class, dir Direction, isPlayer bool) *Tank {
	return &Tank{
		ID:       id,
		Pos:      pos,
		PrevPos:  pos,
		Dir:      dir,
		Class:    class,
		IsPlayer: isPlayer,
		Size:     TankSize,
		lastShot: -class.Stats().FireRate,
	}
}

// EnableAI hands the tank to the wandering controller. The tank keeps its
// heading and moves at speedFactor of its class speed, picking a new
// uniformly random direction after a random interval in [lo, hi].
func (t *Tank) EnableAI(rng *rand.Rand, speedFactor float64, lo, hi time.Duration) {
	t.AI = true
	t.rng = rng
	t.speedFactor = speedFactor
	t.aiDir = t.Dir
	t.aiTimer = 0
	t.retargetMin = lo
	t.retargetMax = hi
	t.aiThreshold = t.rollThreshold()
}

// SetSpeedFactor adjusts the AI speed multiplier.
func (t *Tank) SetSpeedFactor(f float64) {
	t.speedFactor = f
}

func (t *Tank) rollThreshold() time.Duration {
	span := t.retargetMax - t.retargetMin
	if span <= 0 || t.rng == nil {
		return t.retargetMin
	}
	return t.retargetMin + time.Duration(t.rng.Int63n(int64(span)))
}

// Update advances the tank by one tick. Player tanks read the input snapshot;
// AI tanks ignore it. The previous position is recorded before any movement.
func (t *Tank) Update(dt time.Duration, in *InputState) {
	switch {
	case t.AI:
		t.updateAI(dt)
	case in != nil:
		t.updatePlayer(*in)
	}

	if t.Class.Stats().Reflect {
		t.reflectTimer += dt
	}
}

func (t *Tank) updatePlayer(in InputState) {
	t.PrevPos = t.Pos
	speed := t.Class.Stats().Speed

	// First matching key wins
	switch {
	case in.Up:
		t.Pos.Y -= speed
		t.Dir = DirUp
	case in.Down:
		t.Pos.Y += speed
		t.Dir = DirDown
	case in.Left:
		t.Pos.X -= speed
		t.Dir = DirLeft
	case in.Right:
		t.Pos.X += speed
		t.Dir = DirRight
	}

	t.clampToMap()
}

func (t *Tank) updateAI(dt time.Duration) {
	t.PrevPos = t.Pos

	t.aiTimer += dt
	if t.aiTimer > t.aiThreshold {
		t.aiDir = directions[t.rng.Intn(len(directions))]
		t.aiTimer = 0
		t.aiThreshold = t.rollThreshold()
	}

	speed := t.Class.Stats().Speed * t.speedFactor
	dx, dy := t.aiDir.Delta()
	t.Pos.X += dx * speed
	t.Pos.Y += dy * speed
	t.Dir = t.aiDir

	t.clampToMap()
}

func (t *Tank) clampToMap() {
	t.Pos.X = core.ClampF(t.Pos.X, 0, MapPixelWidth-t.Size)
	t.Pos.Y = core.ClampF(t.Pos.Y, 0, MapPixelHeight-t.Size)
}

// CanShoot reports whether the fire cooldown has elapsed at simulation time now.
func (t *Tank) CanShoot(now time.Duration) bool {
	return now-t.lastShot >= t.Class.Stats().FireRate
}

// Shoot fires a bullet from the barrel tip and restarts the cooldown.
// It returns nil while the cooldown is running.
func (t *Tank) Shoot(now time.Duration) *Bullet {
	if !t.CanShoot(now) {
		return nil
	}
	t.lastShot = now

	stats := t.Class.Stats()
	return NewBullet(t.muzzle(), t.Dir, stats.BulletSpeed, t.Class, t.ID)
}

// muzzle is the midpoint of the leading edge.
func (t *Tank) muzzle() Position {
	half := t.Size / 2
	switch t.Dir {
	case DirUp:
		return Position{X: t.Pos.X + half, Y: t.Pos.Y}
	case DirDown:
		return Position{X: t.Pos.X + half, Y: t.Pos.Y + t.Size}
	case DirLeft:
		return Position{X: t.Pos.X, Y: t.Pos.Y + half}
	default:
		return Position{X: t.Pos.X + t.Size, Y: t.Pos.Y + half}
	}
}

// CanReflect reports whether a reflecting class has its cooldown ready.
func (t *Tank) CanReflect() bool {
	return t.Class.Stats().Reflect && t.reflectTimer >= ReflectCooldown
}

// Reflect consumes the reflect charge. It returns false when not ready.
func (t *Tank) Reflect() bool {
	if !t.CanReflect() {
		return false
	}
	t.reflectTimer = 0
	return true
}

// ReflectProgress returns the cooldown completion in [0, 1]. Non-reflecting classes report 0.
func (t *Tank) ReflectProgress() float64 {
	if !t.Class.Stats().Reflect {
		return 0
	}
	return core.ClampF(float64(t.reflectTimer)/float64(ReflectCooldown), 0, 1)
}

// MoveTo places the tank without leaving a rollback trail.
func (t *Tank) MoveTo(p Position) {
	t.Pos = p
	t.PrevPos = p
}

// Rect returns the tank's bounding box.
func (t *Tank) Rect() core.RectF {
	return squareAt(t.Pos, t.Size)
}

// Center returns the midpoint of the tank.
func (t *Tank) Center() Position {
	return Position{X: t.Pos.X + t.Size/2, Y: t.Pos.Y + t.Size/2}
}
