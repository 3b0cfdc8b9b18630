package tanks

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a session phase change is not allowed.
var ErrInvalidTransition = errors.New("tanks: invalid phase transition")

// Phase is the top-level state of a play session.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseGameOver
	PhaseVictory
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	default:
		return "victory"
	}
}

// Session tracks the phase, chosen class and the HUD values of one player.
type Session struct {
	phase Phase
	class Class
	score int
	lives int
}

// NewSession starts in the menu.
func NewSession() *Session {
	return &Session{phase: PhaseMenu}
}

func (s *Session) transition(from []Phase, to Phase) error {
	for _, p := range from {
		if s.phase == p {
			s.phase = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.phase, to)
}

// Begin leaves the menu with the chosen class.
func (s *Session) Begin(class Class, lives int) error {
	if err := s.transition([]Phase{PhaseMenu}, PhasePlaying); err != nil {
		return err
	}
	s.class = class
	s.score = 0
	s.lives = lives
	return nil
}

// Restart plays again with the same class after a match ended.
func (s *Session) Restart(lives int) error {
	if err := s.transition([]Phase{PhaseGameOver, PhaseVictory}, PhasePlaying); err != nil {
		return err
	}
	s.score = 0
	s.lives = lives
	return nil
}

// ToMenu returns to class selection after a match ended.
func (s *Session) ToMenu() error {
	return s.transition([]Phase{PhaseGameOver, PhaseVictory}, PhaseMenu)
}

// EndDefeat records a lost match.
func (s *Session) EndDefeat() error {
	return s.transition([]Phase{PhasePlaying}, PhaseGameOver)
}

// EndVictory records a won match.
func (s *Session) EndVictory() error {
	return s.transition([]Phase{PhasePlaying}, PhaseVictory)
}

// SetScore mirrors the engine score.
func (s *Session) SetScore(score int) { s.score = score }

// SetLives mirrors the engine lives.
func (s *Session) SetLives(lives int) { s.lives = lives }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Class returns the chosen class.
func (s *Session) Class() Class { return s.class }

// Score returns the mirrored score.
func (s *Session) Score() int { return s.score }

// Lives returns the mirrored lives.
func (s *Session) Lives() int { return s.lives }

// Ended reports whether the last match is over.
func (s *Session) Ended() bool {
	return s.phase == PhaseGameOver || s.phase == PhaseVictory
}
