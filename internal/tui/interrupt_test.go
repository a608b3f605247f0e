package tui

import "testing"

func TestInterruptState(t *testing.T) {
	instant := InterruptState{}
	deferred := InterruptState{deferred: true}
	pending := InterruptState{deferred: true, pending: true}

	tests := []struct {
		name     string
		from     InterruptState
		apply    func(InterruptState) (InterruptState, bool)
		wantExit bool
		want     InterruptState
	}{
		{"instant cancel exits", instant, InterruptState.OnCancel, true, instant},
		{"deferred cancel records request", deferred, InterruptState.OnCancel, false, pending},
		{"pending cancel stays pending", pending, InterruptState.OnCancel, false, pending},
		{"pending back to instant exits", pending, func(s InterruptState) (InterruptState, bool) { return s.OnMode(InterruptInstantly) }, true, pending},
		{"deferred back to instant", deferred, func(s InterruptState) (InterruptState, bool) { return s.OnMode(InterruptInstantly) }, false, instant},
		{"instant to deferred", instant, func(s InterruptState) (InterruptState, bool) { return s.OnMode(InterruptDeferred) }, false, deferred},
		{"deferred again keeps pending", pending, func(s InterruptState) (InterruptState, bool) { return s.OnMode(InterruptDeferred) }, false, pending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, exit := tt.apply(tt.from)
			if exit != tt.wantExit {
				t.Errorf("exit = %v, want %v", exit, tt.wantExit)
			}
			if !exit && got != tt.want {
				t.Errorf("state = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInterruptStateMode(t *testing.T) {
	var s InterruptState
	if s.Mode() != InterruptInstantly {
		t.Errorf("Mode() = %s, want instantly", s.Mode())
	}
	s, _ = s.OnMode(InterruptDeferred)
	if s.Mode() != InterruptDeferred {
		t.Errorf("Mode() = %s, want deferred", s.Mode())
	}
	if s.Pending() {
		t.Error("Pending() = true before any cancel")
	}
}
