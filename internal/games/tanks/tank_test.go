package tanks

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPlayerMovementPriority(t *testing.T) {
	tests := []struct {
		name    string
		in      InputState
		wantPos Position
		wantDir Direction
	}{
		{"up beats everything", InputState{Up: true, Down: true, Left: true, Right: true}, Position{X: 320, Y: 317}, DirUp},
		{"down beats horizontal", InputState{Down: true, Left: true}, Position{X: 320, Y: 323}, DirDown},
		{"left beats right", InputState{Left: true, Right: true}, Position{X: 317, Y: 320}, DirLeft},
		{"right alone", InputState{Right: true}, Position{X: 323, Y: 320}, DirRight},
		{"nothing held", InputState{}, Position{X: 320, Y: 320}, DirUp},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tank := NewTank(1, Position{X: 320, Y: 320}, ClassRanger, DirUp, true)
			tank.Update(16*time.Millisecond, &tc.in)

			if tank.Pos != tc.wantPos {
				t.Errorf("Pos = %+v, expected %+v", tank.Pos, tc.wantPos)
			}
			if tank.Dir != tc.wantDir {
				t.Errorf("Dir = %s, expected %s", tank.Dir, tc.wantDir)
			}
			if tank.PrevPos != (Position{X: 320, Y: 320}) {
				t.Errorf("PrevPos = %+v, expected the starting position", tank.PrevPos)
			}
		})
	}
}

func TestPlayerClampedToMap(t *testing.T) {
	tank := NewTank(1, Position{X: 1, Y: MapPixelHeight - TankSize - 1}, ClassRanger, DirUp, true)

	tank.Update(0, &InputState{Left: true})
	if tank.Pos.X != 0 {
		t.Errorf("X = %v, expected clamp to 0", tank.Pos.X)
	}

	tank.Update(0, &InputState{Down: true})
	if tank.Pos.Y != MapPixelHeight-TankSize {
		t.Errorf("Y = %v, expected clamp to %v", tank.Pos.Y, MapPixelHeight-TankSize)
	}
}

func TestShootCooldown(t *testing.T) {
	for _, c := range Classes() {
		t.Run(c.String(), func(t *testing.T) {
			rate := c.Stats().FireRate
			tank := NewTank(1, Position{X: 100, Y: 100}, c, DirUp, true)

			if !tank.CanShoot(0) {
				t.Fatal("fresh tank should be able to shoot")
			}
			if tank.Shoot(0) == nil {
				t.Fatal("first shot should produce a bullet")
			}
			if tank.Shoot(rate-time.Millisecond) != nil {
				t.Error("shot inside cooldown should be refused")
			}
			if tank.Shoot(rate) == nil {
				t.Error("shot after cooldown should succeed")
			}
		})
	}
}

func TestMuzzlePosition(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Position
	}{
		{DirUp, Position{X: 116, Y: 100}},
		{DirDown, Position{X: 116, Y: 132}},
		{DirLeft, Position{X: 100, Y: 116}},
		{DirRight, Position{X: 132, Y: 116}},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			tank := NewTank(3, Position{X: 100, Y: 100}, ClassSniper, tc.dir, true)
			b := tank.Shoot(0)
			if b.Pos != tc.want {
				t.Errorf("bullet at %+v, expected %+v", b.Pos, tc.want)
			}
			if b.Dir != tc.dir || b.OwnerID != 3 || b.Speed != 8 || b.Pierce != 2 || b.Size != BulletSize {
				t.Errorf("unexpected bullet %+v", b)
			}
		})
	}
}

func TestAIMovementAndRetarget(t *testing.T) {
	tank := NewTank(2, Position{X: 384, Y: 32}, ClassRanger, DirDown, false)
	tank.EnableAI(rand.New(rand.NewSource(1)), 0.7, 2*time.Second, 4*time.Second)

	if tank.aiThreshold < 2*time.Second || tank.aiThreshold >= 4*time.Second {
		t.Fatalf("threshold %v outside [2s, 4s)", tank.aiThreshold)
	}

	tank.Update(16*time.Millisecond, nil)
	if !almostEqual(tank.Pos.Y, 32+3*0.7) || tank.Pos.X != 384 {
		t.Errorf("AI moved to %+v, expected 70%% speed straight down", tank.Pos)
	}
	if tank.PrevPos != (Position{X: 384, Y: 32}) {
		t.Errorf("PrevPos = %+v, expected spawn position", tank.PrevPos)
	}

	tank.Update(5*time.Second, nil)
	if tank.aiTimer != 0 {
		t.Errorf("aiTimer = %v, expected reset after retarget", tank.aiTimer)
	}
	if tank.Dir != tank.aiDir {
		t.Errorf("heading %s should follow AI direction %s", tank.Dir, tank.aiDir)
	}
}

func TestReflectCooldown(t *testing.T) {
	samurai := NewTank(1, Position{}, ClassSamurai, DirUp, true)
	if samurai.CanReflect() {
		t.Error("reflect should start on cooldown")
	}
	samurai.Update(ReflectCooldown-time.Millisecond, &InputState{})
	if samurai.CanReflect() {
		t.Error("reflect should not be ready before the cooldown ends")
	}
	samurai.Update(time.Millisecond, &InputState{})
	if !samurai.Reflect() {
		t.Fatal("reflect should be ready after the cooldown")
	}
	if samurai.CanReflect() || samurai.ReflectProgress() != 0 {
		t.Error("reflect should restart its cooldown")
	}

	ranger := NewTank(2, Position{}, ClassRanger, DirUp, true)
	ranger.Update(time.Minute, &InputState{})
	if ranger.CanReflect() || ranger.Reflect() {
		t.Error("non-samurai classes never reflect")
	}
}

func TestBulletMovement(t *testing.T) {
	b := NewBullet(Position{X: 100, Y: 100}, DirLeft, 6, ClassRanger, 1)
	b.Update(16 * time.Millisecond)
	if b.Pos != (Position{X: 94, Y: 100}) {
		t.Errorf("bullet at %+v, expected (94, 100)", b.Pos)
	}

	b.Reverse()
	if b.Dir != DirRight {
		t.Errorf("reversed heading = %s, expected right", b.Dir)
	}

	r := b.Rect()
	if r.X != 92 || r.Y != 98 || r.W != BulletSize || r.H != BulletSize {
		t.Errorf("Rect() = %+v, expected 4x4 box centered on the bullet", r)
	}
}

func TestBulletOutOfBounds(t *testing.T) {
	tests := []struct {
		pos  Position
		want bool
	}{
		{Position{X: 0, Y: 0}, false},
		{Position{X: MapPixelWidth, Y: MapPixelHeight}, false},
		{Position{X: -0.1, Y: 10}, true},
		{Position{X: 10, Y: MapPixelHeight + 0.1}, true},
		{Position{X: MapPixelWidth + 1, Y: 10}, true},
	}

	for _, tc := range tests {
		b := NewBullet(tc.pos, DirUp, 6, ClassRanger, 1)
		if got := b.OutOfBounds(MapPixelWidth, MapPixelHeight); got != tc.want {
			t.Errorf("OutOfBounds(%+v) = %v, expected %v", tc.pos, got, tc.want)
		}
	}
}

func TestParseClass(t *testing.T) {
	for _, c := range Classes() {
		got, err := ParseClass(" " + c.String() + " ")
		if err != nil || got != c {
			t.Errorf("ParseClass(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseClass("tank destroyer"); err == nil {
		t.Error("unknown class should fail to parse")
	}
}
