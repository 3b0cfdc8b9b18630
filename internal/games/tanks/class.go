package tanks

import (
	"fmt"
	"strings"
	"time"
)

// Class is a tank variant. Behavior that differs between variants is read
// from the stats table; only pierce, reflect and barrel visuals branch on it.
type Class int

const (
	ClassRanger Class = iota
	ClassSniper
	ClassSamurai
)

// ReflectCooldown is the time a reflecting class needs between reflections.
const ReflectCooldown = 5000 * time.Millisecond

// ClassStats is the fixed configuration of a tank class.
type ClassStats struct {
	Name        string
	Speed       float64       // pixels per tick
	FireRate    time.Duration // minimum time between shots
	BulletSpeed float64       // pixels per tick
	Pierce      int           // brick layers a bullet can pass through
	Reflect     bool          // can reflect incoming bullets when player-controlled
	Barrel      [4]rune       // barrel glyph per Direction
	Blurb       string
}

var classTable = [...]ClassStats{
	ClassRanger: {
		Name:        "ranger",
		Speed:       3,
		FireRate:    500 * time.Millisecond,
		BulletSpeed: 6,
		Barrel:      [4]rune{'▲', '▼', '◀', '▶'},
		Blurb:       "Fastest tracks, rapid fire",
	},
	ClassSniper: {
		Name:        "sniper",
		Speed:       2,
		FireRate:    800 * time.Millisecond,
		BulletSpeed: 8,
		Pierce:      2,
		Barrel:      [4]rune{'↑', '↓', '←', '→'},
		Blurb:       "Shots pierce two brick layers",
	},
	ClassSamurai: {
		Name:        "samurai",
		Speed:       2.5,
		FireRate:    600 * time.Millisecond,
		BulletSpeed: 5,
		Reflect:     true,
		Barrel:      [4]rune{'⇑', '⇓', '⇐', '⇒'},
		Blurb:       "Reflects one bullet every 5s",
	},
}

// Classes returns all classes in menu order.
func Classes() []Class {
	return []Class{ClassRanger, ClassSniper, ClassSamurai}
}

// Stats returns the class configuration. Unknown values fall back to ranger.
func (c Class) Stats() ClassStats {
	if c < 0 || int(c) >= len(classTable) {
		return classTable[ClassRanger]
	}
	return classTable[c]
}

// String returns the lowercase class name.
func (c Class) String() string {
	return c.Stats().Name
}

// ParseClass maps a class name to a Class.
func ParseClass(s string) (Class, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Classes() {
		if classTable[c].Name == name {
			return c, nil
		}
	}
	return ClassRanger, fmt.Errorf("tanks: unknown class %q", s)
}
