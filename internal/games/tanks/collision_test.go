package tanks

import (
	"testing"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

func TestRectsOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b core.RectF
		want bool
	}{
		{"overlapping", core.NewRectF(0, 0, 32, 32), core.NewRectF(16, 16, 32, 32), true},
		{"touching edges", core.NewRectF(0, 0, 32, 32), core.NewRectF(32, 0, 32, 32), false},
		{"touching corners", core.NewRectF(0, 0, 32, 32), core.NewRectF(32, 32, 32, 32), false},
		{"contained", core.NewRectF(0, 0, 32, 32), core.NewRectF(10, 10, 4, 4), true},
		{"apart", core.NewRectF(0, 0, 32, 32), core.NewRectF(100, 100, 4, 4), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RectsOverlap(tc.a, tc.b); got != tc.want {
				t.Errorf("RectsOverlap() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestWallCollision(t *testing.T) {
	r := NewResolver(NewMap())

	tests := []struct {
		name string
		rect core.RectF
		want bool
	}{
		{"open ground", core.NewRectF(32, 32, 32, 32), false},
		{"flush against right border", core.NewRectF(736, 32, 32, 32), true},
		{"inside left border", core.NewRectF(30, 200, 32, 32), true},
		{"corner in brick", core.NewRectF(70, 70, 32, 32), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.WallCollision(tc.rect); got != tc.want {
				t.Errorf("WallCollision() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestResolveTank(t *testing.T) {
	r := NewResolver(NewMap())

	// Moving into a brick reverts to the previous position
	tank := NewTank(1, Position{X: 64, Y: 64}, ClassRanger, DirRight, true)
	tank.Pos = Position{X: 70, Y: 70}
	if got := r.ResolveTank(tank, []*Tank{tank}); got != (Position{X: 64, Y: 64}) {
		t.Errorf("wall hit resolved to %+v, expected previous position", got)
	}

	// Overlapping another tank reverts as well
	a := NewTank(1, Position{X: 300, Y: 320}, ClassRanger, DirRight, true)
	a.Pos = Position{X: 320, Y: 320}
	b := NewTank(2, Position{X: 340, Y: 320}, ClassRanger, DirLeft, false)
	if got := r.ResolveTank(a, []*Tank{a, b}); got != (Position{X: 300, Y: 320}) {
		t.Errorf("tank overlap resolved to %+v, expected previous position", got)
	}

	// Free movement is kept
	a.Pos = Position{X: 305, Y: 320}
	b.Pos = Position{X: 400, Y: 320}
	if got := r.ResolveTank(a, []*Tank{a, b}); got != a.Pos {
		t.Errorf("free move resolved to %+v, expected %+v", got, a.Pos)
	}
}

func TestBulletWall(t *testing.T) {
	tests := []struct {
		name         string
		class        Class
		pos          Position
		wantHit      bool
		wantTerminal bool
		wantDestroy  bool
		wantKind     TileKind
		wantPierce   int
	}{
		{"open ground", ClassRanger, Position{X: 200, Y: 200}, false, false, false, TileEmpty, 0},
		{"brick", ClassRanger, Position{X: 112, Y: 112}, true, true, true, TileBrick, 0},
		{"steel", ClassRanger, Position{X: 16, Y: 300}, true, true, false, TileSteel, 0},
		{"grazing brick", ClassRanger, Position{X: 95, Y: 112}, true, true, true, TileBrick, 0},
		{"piercing brick", ClassSniper, Position{X: 112, Y: 112}, true, false, true, TileBrick, 1},
		{"piercing steel", ClassSniper, Position{X: 16, Y: 300}, true, true, false, TileSteel, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMap()
			r := NewResolver(m)
			b := NewBullet(tc.pos, DirUp, 6, tc.class, 1)

			hit := r.BulletWall(b)
			if hit.Hit != tc.wantHit || hit.Terminal != tc.wantTerminal || hit.Destroyed != tc.wantDestroy {
				t.Errorf("BulletWall() = %+v, expected hit=%v terminal=%v destroyed=%v",
					hit, tc.wantHit, tc.wantTerminal, tc.wantDestroy)
			}
			if tc.wantHit && hit.Kind != tc.wantKind {
				t.Errorf("Kind = %s, expected %s", hit.Kind, tc.wantKind)
			}
			if b.Pierce != tc.wantPierce {
				t.Errorf("Pierce = %d, expected %d", b.Pierce, tc.wantPierce)
			}
		})
	}
}

func TestBulletWallPierceExhausts(t *testing.T) {
	m := NewMap()
	r := NewResolver(m)
	b := NewBullet(Position{X: 112, Y: 176}, DirUp, 8, ClassSniper, 1)

	if hit := r.BulletWall(b); !hit.Destroyed || hit.Terminal {
		t.Fatalf("first brick: %+v, expected destroyed and not terminal", hit)
	}
	b.Pos.Y = 144
	if hit := r.BulletWall(b); !hit.Destroyed || !hit.Terminal {
		t.Fatalf("second brick: %+v, expected destroyed and terminal", hit)
	}
	if m.TileAtCell(3, 5) != TileEmpty || m.TileAtCell(3, 4) != TileEmpty {
		t.Error("both brick layers should be destroyed")
	}
	if m.TileAtCell(3, 3) != TileBrick {
		t.Error("third brick layer should be intact")
	}
}

func TestBulletTankReflection(t *testing.T) {
	r := NewResolver(NewMap())

	player := NewTank(1, Position{X: 320, Y: 320}, ClassSamurai, DirUp, true)
	player.Update(ReflectCooldown, &InputState{})

	b := NewBullet(Position{X: 336, Y: 336}, DirUp, 5, ClassRanger, 7)
	hit, reflected := r.BulletTank(b, player)
	if !hit || !reflected {
		t.Fatalf("BulletTank() = (%v, %v), expected reflection", hit, reflected)
	}
	if b.Dir != DirDown {
		t.Errorf("reflected bullet heading = %s, expected down", b.Dir)
	}
	if b.OwnerID != player.ID {
		t.Errorf("reflected bullet owner = %d, expected %d", b.OwnerID, player.ID)
	}

	// Cooldown consumed: the next bullet is a plain hit
	b2 := NewBullet(Position{X: 336, Y: 336}, DirUp, 5, ClassRanger, 7)
	hit, reflected = r.BulletTank(b2, player)
	if !hit || reflected {
		t.Errorf("BulletTank() after reflect = (%v, %v), expected plain hit", hit, reflected)
	}

	// AI samurai never reflects
	enemy := NewTank(2, Position{X: 320, Y: 320}, ClassSamurai, DirDown, false)
	enemy.Update(2*ReflectCooldown, nil)
	hit, reflected = r.BulletTank(NewBullet(Position{X: 336, Y: 336}, DirUp, 5, ClassRanger, 1), enemy)
	if !hit || reflected {
		t.Errorf("AI samurai: (%v, %v), expected plain hit", hit, reflected)
	}

	// Miss
	hit, _ = r.BulletTank(NewBullet(Position{X: 10, Y: 10}, DirUp, 5, ClassRanger, 1), player)
	if hit {
		t.Error("distant bullet should not hit")
	}
}

func TestSpawnBlocked(t *testing.T) {
	r := NewResolver(NewMap())
	tank := NewTank(1, Position{X: 40, Y: 40}, ClassRanger, DirDown, false)

	if !r.SpawnBlocked(Position{X: 32, Y: 32}, []*Tank{tank}) {
		t.Error("overlapping spawn point should be blocked")
	}
	if r.SpawnBlocked(Position{X: 384, Y: 32}, []*Tank{tank}) {
		t.Error("distant spawn point should be free")
	}
}
