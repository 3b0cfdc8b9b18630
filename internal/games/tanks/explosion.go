package tanks

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// ExplosionKind selects the particle profile of an explosion.
type ExplosionKind int

const (
	ExplosionTank  ExplosionKind = iota // enemy tank destroyed
	ExplosionBrick                      // destructible wall hit
	ExplosionSteel                      // indestructible wall hit
)

func (k ExplosionKind) String() string {
	switch k {
	case ExplosionTank:
		return "tank"
	case ExplosionBrick:
		return "brick"
	default:
		return "steel"
	}
}

// Explosion timeline.
const (
	ExplosionDuration  = 1500 * time.Millisecond
	explosionExpansion = 400 * time.Millisecond
	explosionFlash     = 200 * time.Millisecond
	explosionFade      = 900 * time.Millisecond
)

// ExplosionPhase is the stage of an explosion's timeline.
type ExplosionPhase int

const (
	PhaseExpansion ExplosionPhase = iota
	PhaseFlash
	PhaseFade
	PhaseDone
)

type explosionProfile struct {
	particles     int
	maxSpeed      float64
	sizeFactor    float64
	central       int
	centralFactor float64
	flashRadius   float64
	palette       []core.Color
}

var explosionProfiles = [...]explosionProfile{
	ExplosionTank: {
		particles: 25, maxSpeed: 4, sizeFactor: 2.7,
		central: 10, centralFactor: 4, flashRadius: 8.3,
		palette: []core.Color{core.ColorBrightRed, core.ColorOrange, core.ColorBrightYellow, core.ColorRed, core.ColorYellow},
	},
	ExplosionBrick: {
		particles: 15, maxSpeed: 2.5, sizeFactor: 1.7,
		central: 6, centralFactor: 2.7, flashRadius: 5,
		palette: []core.Color{core.ColorOrange, core.ColorYellow, core.ColorRed, core.ColorGray},
	},
	ExplosionSteel: {
		particles: 8, maxSpeed: 1.5, sizeFactor: 1.0,
		central: 3, centralFactor: 1.5, flashRadius: 3,
		palette: []core.Color{core.ColorGray, core.ColorWhite, core.ColorCyan, core.ColorBrightBlue},
	},
}

// Particle is one fragment of an explosion. Positions are world pixels.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Life    time.Duration
	MaxLife time.Duration
	Color   core.Color
	Alpha   float64
	Central bool
}

// Explosion is a cosmetic particle burst. It never affects the simulation.
type Explosion struct {
	Pos       Position
	Kind      ExplosionKind
	particles []Particle
	elapsed   time.Duration
}

// NewExplosion spawns the ring and core particles for kind at pos.
func NewExplosion(pos Position, kind ExplosionKind, rng *rand.Rand) *Explosion {
	p := explosionProfiles[kind]
	e := &Explosion{
		Pos:       pos,
		Kind:      kind,
		particles: make([]Particle, 0, p.particles+p.central),
	}

	for i := 0; i < p.particles; i++ {
		angle := 2*math.Pi*float64(i)/float64(p.particles) + (rng.Float64()-0.5)*0.5
		speed := rng.Float64()*p.maxSpeed + 1
		life := 400*time.Millisecond + time.Duration(rng.Int63n(int64(800*time.Millisecond)))
		e.particles = append(e.particles, Particle{
			X:       pos.X,
			Y:       pos.Y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Size:    rng.Float64()*p.sizeFactor + 0.7,
			Life:    life,
			MaxLife: life,
			Color:   p.palette[rng.Intn(len(p.palette))],
			Alpha:   1,
		})
	}

	for i := 0; i < p.central; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := rng.Float64() * 1.5
		e.particles = append(e.particles, Particle{
			X:       pos.X,
			Y:       pos.Y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Size:    rng.Float64()*p.centralFactor + 1.3,
			Life:    1200 * time.Millisecond,
			MaxLife: 1200 * time.Millisecond,
			Color:   core.ColorBrightWhite,
			Alpha:   1,
			Central: true,
		})
	}

	return e
}

// Phase returns the timeline stage.
func (e *Explosion) Phase() ExplosionPhase {
	switch {
	case e.elapsed >= ExplosionDuration:
		return PhaseDone
	case e.elapsed < explosionExpansion:
		return PhaseExpansion
	case e.elapsed < explosionExpansion+explosionFlash:
		return PhaseFlash
	default:
		return PhaseFade
	}
}

// Update advances the explosion and reports whether it is still alive.
func (e *Explosion) Update(dt time.Duration) bool {
	e.elapsed += dt
	if e.elapsed >= ExplosionDuration {
		e.particles = e.particles[:0]
		return false
	}

	phase := e.Phase()
	alive := e.particles[:0]
	for _, p := range e.particles {
		p.X += p.VX
		p.Y += p.VY
		p.VX *= 0.98
		p.VY *= 0.98
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}

		switch phase {
		case PhaseExpansion:
			p.Alpha = math.Min(1, float64(e.elapsed)/float64(explosionExpansion)*1.2)
		case PhaseFlash:
			p.Alpha = 1
			if p.Central {
				p.Size *= 1.2
			}
		default:
			fade := float64(e.elapsed-explosionExpansion-explosionFlash) / float64(explosionFade)
			lifeRatio := float64(p.Life) / float64(p.MaxLife)
			p.Alpha = math.Max(0, 1-fade) * lifeRatio
		}
		alive = append(alive, p)
	}
	e.particles = alive

	return true
}

// Done reports whether the timeline has finished.
func (e *Explosion) Done() bool {
	return e.elapsed >= ExplosionDuration
}

// Particles returns the live particles. The slice is owned by the explosion.
func (e *Explosion) Particles() []Particle {
	return e.particles
}

// FlashRadius returns the flash halo radius in pixels, zero outside the flash phase.
func (e *Explosion) FlashRadius() float64 {
	if e.Phase() != PhaseFlash {
		return 0
	}
	progress := float64(e.elapsed-explosionExpansion) / float64(explosionFlash)
	return explosionProfiles[e.Kind].flashRadius * (1 + progress)
}
