package tanks

import "github.com/vovakirdan/tui-tanks/internal/core"

// Resolver answers collision queries against the map and other tanks.
// It holds no state besides the map it reads and mutates.
type Resolver struct {
	m *Map
}

// NewResolver creates a resolver over m.
func NewResolver(m *Map) *Resolver {
	return &Resolver{m: m}
}

// RectsOverlap reports strict overlap. Touching edges do not overlap.
func RectsOverlap(a, b core.RectF) bool {
	return a.Intersects(b)
}

// WallCollision reports whether any corner of rect lies in a solid tile.
// The far edges are sampled as well, so a box flush against a wall on its
// right or bottom side counts as colliding.
func (r *Resolver) WallCollision(rect core.RectF) bool {
	_, ok := r.solidCorner(rect)
	return ok
}

func (r *Resolver) solidCorner(rect core.RectF) ([2]float64, bool) {
	for _, c := range rect.Corners() {
		if r.m.IsSolid(c[0], c[1]) {
			return c, true
		}
	}
	return [2]float64{}, false
}

// TankCollision returns the first tank in others that overlaps rect, skipping self.
func (r *Resolver) TankCollision(rect core.RectF, others []*Tank, self *Tank) *Tank {
	for _, o := range others {
		if o == self {
			continue
		}
		if RectsOverlap(rect, o.Rect()) {
			return o
		}
	}
	return nil
}

// ResolveTank returns where t should stand after its movement this tick:
// its previous position when it hits a wall or another tank, else its
// current one. Walls are checked first.
func (r *Resolver) ResolveTank(t *Tank, all []*Tank) Position {
	rect := t.Rect()
	if r.WallCollision(rect) {
		return t.PrevPos
	}
	if r.TankCollision(rect, all, t) != nil {
		return t.PrevPos
	}
	return t.Pos
}

// WallHit describes a bullet striking the map.
type WallHit struct {
	Hit       bool
	Terminal  bool     // the bullet must be removed
	Destroyed bool     // the struck tile was destroyed
	Kind      TileKind // the struck tile before any destruction
}

// BulletWall checks b against the map, destroying the struck tile when it
// can. A piercing bullet that destroys a tile keeps flying while it has
// pierce left; every other wall hit ends the bullet.
func (r *Resolver) BulletWall(b *Bullet) WallHit {
	corner, ok := r.solidCorner(b.Rect())
	if !ok {
		return WallHit{}
	}

	// The tile under the center wins; a grazing hit falls back to the corner
	tx, ty := b.Pos.X, b.Pos.Y
	if !r.m.IsSolid(tx, ty) {
		tx, ty = corner[0], corner[1]
	}

	hit := WallHit{Hit: true, Kind: r.m.TileAt(tx, ty)}
	hit.Destroyed = r.m.DestroyTile(tx, ty)

	if b.Pierce > 0 && hit.Destroyed {
		b.Pierce--
		hit.Terminal = b.Pierce <= 0
		return hit
	}

	hit.Terminal = true
	return hit
}

// BulletTank checks b against t. A ready reflecting player tank sends the
// bullet back and takes ownership of it; in that case reflected is true and
// the hit is not terminal.
func (r *Resolver) BulletTank(b *Bullet, t *Tank) (hit, reflected bool) {
	if !RectsOverlap(b.Rect(), t.Rect()) {
		return false, false
	}
	if t.IsPlayer && t.CanReflect() && t.Reflect() {
		b.Reverse()
		b.OwnerID = t.ID
		return true, true
	}
	return true, false
}

// SpawnBlocked reports whether a tank-sized box at p would overlap any tank.
func (r *Resolver) SpawnBlocked(p Position, tanks []*Tank) bool {
	return r.TankCollision(squareAt(p, TankSize), tanks, nil) != nil
}
