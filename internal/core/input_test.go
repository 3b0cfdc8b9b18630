package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	var f InputFrame // nil map must be usable

	if f.Has(ActionFire) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionFire)
	f.Set(ActionLeft)
	if !f.Has(ActionFire) || !f.Has(ActionLeft) {
		t.Error("Set actions should be reported by Has")
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionFire) {
		t.Error("Clear should remove actions")
	}
	if !clone.Has(ActionFire) {
		t.Error("Clone should be independent of the original")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionUp, "Up"},
		{ActionRight, "Right"},
		{ActionFire, "Fire"},
		{ActionPause, "Pause"},
		{Action(99), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.action.String(); got != tc.expected {
			t.Errorf("%d.String() = %q, expected %q", tc.action, got, tc.expected)
		}
	}
}
