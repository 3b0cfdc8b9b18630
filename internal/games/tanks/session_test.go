package tanks

import (
	"errors"
	"testing"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewSession()
	if s.Phase() != PhaseMenu {
		t.Fatalf("new session phase = %s, expected menu", s.Phase())
	}

	if err := s.Begin(ClassSniper, 3); err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	if s.Phase() != PhasePlaying || s.Class() != ClassSniper || s.Lives() != 3 {
		t.Errorf("after Begin: phase=%s class=%s lives=%d", s.Phase(), s.Class(), s.Lives())
	}

	s.SetScore(300)
	if err := s.EndVictory(); err != nil {
		t.Fatalf("EndVictory() failed: %v", err)
	}
	if !s.Ended() || s.Score() != 300 {
		t.Errorf("after victory: ended=%v score=%d", s.Ended(), s.Score())
	}

	if err := s.Restart(2); err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}
	if s.Score() != 0 || s.Lives() != 2 || s.Class() != ClassSniper {
		t.Errorf("Restart should reset score and lives and keep the class")
	}

	if err := s.EndDefeat(); err != nil {
		t.Fatalf("EndDefeat() failed: %v", err)
	}
	if err := s.ToMenu(); err != nil {
		t.Fatalf("ToMenu() failed: %v", err)
	}
	if s.Phase() != PhaseMenu {
		t.Errorf("phase = %s, expected menu", s.Phase())
	}
}

func TestSessionInvalidTransitions(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Session)
		op    func(*Session) error
	}{
		{"victory from menu", func(*Session) {}, (*Session).EndVictory},
		{"defeat from menu", func(*Session) {}, (*Session).EndDefeat},
		{"restart while playing", func(s *Session) { _ = s.Begin(ClassRanger, 3) }, func(s *Session) error { return s.Restart(3) }},
		{"begin twice", func(s *Session) { _ = s.Begin(ClassRanger, 3) }, func(s *Session) error { return s.Begin(ClassSamurai, 3) }},
		{"second outcome", func(s *Session) { _ = s.Begin(ClassRanger, 3); _ = s.EndDefeat() }, (*Session).EndVictory},
		{"menu while playing", func(s *Session) { _ = s.Begin(ClassRanger, 3) }, (*Session).ToMenu},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSession()
			tc.setup(s)
			before := s.Phase()
			if err := tc.op(s); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("expected ErrInvalidTransition, got %v", err)
			}
			if s.Phase() != before {
				t.Errorf("failed transition changed phase from %s to %s", before, s.Phase())
			}
		})
	}
}
