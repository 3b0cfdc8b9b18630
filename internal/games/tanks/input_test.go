package tanks

import "testing"

func TestInputHeldState(t *testing.T) {
	in := NewInput()

	in.KeyDown(KeyUp)
	in.KeyDown(KeyFire)
	got := in.State()
	if !got.Up || !got.Shoot || got.Down || got.Left || got.Right {
		t.Errorf("State() = %+v, expected up and shoot held", got)
	}

	in.KeyUp(KeyUp)
	if in.State().Up {
		t.Error("released key should not be held")
	}

	// Repeated down signals are idempotent
	in.KeyDown(KeyLeft)
	in.KeyDown(KeyLeft)
	in.KeyUp(KeyLeft)
	if in.State().Left {
		t.Error("a single release should clear a key")
	}

	in.Set(Key(99), true)
	if in.State() != (InputState{Shoot: true}) {
		t.Error("unknown keys should be ignored")
	}
}

func TestInputDetach(t *testing.T) {
	in := NewInput()
	in.KeyDown(KeyRight)

	in.Detach()
	if in.Attached() {
		t.Error("Attached() should be false after Detach")
	}
	if in.State() != (InputState{}) {
		t.Error("Detach should release every key")
	}

	in.KeyDown(KeyFire)
	if in.State().Shoot {
		t.Error("signals after Detach should be ignored")
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want Key
		ok   bool
	}{
		{"w", KeyUp, true},
		{"UP", KeyUp, true},
		{"s", KeyDown, true},
		{"left", KeyLeft, true},
		{"d", KeyRight, true},
		{" ", KeyFire, true},
		{"space", KeyFire, true},
		{"q", 0, false},
	}

	for _, tc := range tests {
		got, ok := ParseKey(tc.name)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParseKey(%q) = (%d, %v), expected (%d, %v)", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}
