package tui

// InterruptState is the state of the quit protocol.
// The zero value is the instant state.
//
//	Instant           + cancel        -> exit
//	Deferred(false)   + cancel        -> Deferred(true)
//	Deferred(true)    + mode instant  -> exit
//	Deferred(pending) + mode deferred -> Deferred(pending)
//	any other         + mode instant  -> Instant
type InterruptState struct {
	deferred bool
	pending  bool
}

// Mode returns the interrupt mode the state is in.
func (s InterruptState) Mode() Interrupt {
	if s.deferred {
		return InterruptDeferred
	}
	return InterruptInstantly
}

// Pending reports whether a quit was requested while deferred.
func (s InterruptState) Pending() bool {
	return s.pending
}

// OnCancel handles a quit request and reports whether the loop has to exit.
func (s InterruptState) OnCancel() (InterruptState, bool) {
	if !s.deferred {
		return s, true
	}
	s.pending = true
	return s, false
}

// OnMode handles a change of interrupt mode and reports whether the loop has to exit.
func (s InterruptState) OnMode(mode Interrupt) (InterruptState, bool) {
	switch mode {
	case InterruptDeferred:
		s.deferred = true
		return s, false
	default:
		if s.deferred && s.pending {
			return s, true
		}
		return InterruptState{}, false
	}
}
