package tanks

import (
	"time"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// Bullet is a projectile in flight. Pos is its center.
type Bullet struct {
	Pos     Position
	Dir     Direction
	Speed   float64 // pixels per tick
	Class   Class
	OwnerID int
	Size    float64
	Pierce  int // remaining brick layers it can pass through
}

// NewBullet creates a bullet carrying the class pierce budget.
func NewBullet(pos Position, dir Direction, speed float64, class Class, ownerID int) *Bullet {
	return &Bullet{
		Pos:     pos,
		Dir:     dir,
		Speed:   speed,
		Class:   class,
		OwnerID: ownerID,
		Size:    BulletSize,
		Pierce:  class.Stats().Pierce,
	}
}

// Update advances the bullet one tick along its heading.
// Displacement is per tick; dt is accepted for symmetry with other actors.
func (b *Bullet) Update(_ time.Duration) {
	dx, dy := b.Dir.Delta()
	b.Pos.X += dx * b.Speed
	b.Pos.Y += dy * b.Speed
}

// Rect returns the bullet's bounding box centered on Pos.
func (b *Bullet) Rect() core.RectF {
	half := b.Size / 2
	return core.NewRectF(b.Pos.X-half, b.Pos.Y-half, b.Size, b.Size)
}

// OutOfBounds reports whether the center has left the world rectangle.
func (b *Bullet) OutOfBounds(w, h float64) bool {
	return b.Pos.X < 0 || b.Pos.X > w || b.Pos.Y < 0 || b.Pos.Y > h
}

// Reverse flips the heading.
func (b *Bullet) Reverse() {
	b.Dir = b.Dir.Opposite()
}
