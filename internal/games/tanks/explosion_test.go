package tanks

import (
	"math/rand"
	"testing"
	"time"
)

func TestExplosionParticleCounts(t *testing.T) {
	tests := []struct {
		kind ExplosionKind
		want int
	}{
		{ExplosionTank, 35},
		{ExplosionBrick, 21},
		{ExplosionSteel, 11},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			x := NewExplosion(Position{X: 100, Y: 100}, tc.kind, rand.New(rand.NewSource(1)))
			if got := len(x.Particles()); got != tc.want {
				t.Errorf("particles = %d, expected %d", got, tc.want)
			}
		})
	}
}

func TestExplosionTimeline(t *testing.T) {
	x := NewExplosion(Position{X: 100, Y: 100}, ExplosionTank, rand.New(rand.NewSource(2)))

	if !x.Update(100 * time.Millisecond) {
		t.Fatal("explosion should be alive during expansion")
	}
	if x.Phase() != PhaseExpansion {
		t.Errorf("phase = %d, expected expansion", x.Phase())
	}
	for _, p := range x.Particles() {
		if !almostEqual(p.Alpha, 0.3) {
			t.Errorf("expansion alpha = %v, expected 0.3", p.Alpha)
			break
		}
	}

	x.Update(400 * time.Millisecond)
	if x.Phase() != PhaseFlash {
		t.Errorf("phase = %d at 500ms, expected flash", x.Phase())
	}
	if x.FlashRadius() <= 0 {
		t.Error("flash radius should be positive during flash")
	}

	x.Update(300 * time.Millisecond)
	if x.Phase() != PhaseFade {
		t.Errorf("phase = %d at 800ms, expected fade", x.Phase())
	}
	for _, p := range x.Particles() {
		if p.Alpha < 0 || p.Alpha > 1 {
			t.Errorf("fade alpha %v out of range", p.Alpha)
		}
	}

	if x.Update(700 * time.Millisecond) {
		t.Error("explosion should end at 1500ms")
	}
	if !x.Done() || len(x.Particles()) != 0 {
		t.Error("finished explosion should have no particles")
	}
}

func TestExplosionParticlesExpire(t *testing.T) {
	x := NewExplosion(Position{}, ExplosionBrick, rand.New(rand.NewSource(3)))
	x.Update(1250 * time.Millisecond)

	// Ring particles live at most 1200ms, central ones exactly 1200ms
	if n := len(x.Particles()); n != 0 {
		t.Errorf("%d particles alive after 1250ms, expected none", n)
	}
}
