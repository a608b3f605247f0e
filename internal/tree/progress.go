package tree

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// UnitKind selects how progress counters are formatted.
type UnitKind int

const (
	// UnitNone prints bare numbers.
	UnitNone UnitKind = iota
	// UnitBytes prints sizes such as "1.2 MB".
	UnitBytes
	// UnitItems prints numbers followed by a label.
	UnitItems
)

// Unit is the display unit of a progress counter.
type Unit struct {
	Kind  UnitKind
	Label string
}

// Bytes formats counters as byte sizes.
var Bytes = Unit{Kind: UnitBytes}

// Items formats counters as a count of label.
func Items(label string) Unit {
	return Unit{Kind: UnitItems, Label: label}
}

func (u Unit) format(n int) string {
	switch u.Kind {
	case UnitBytes:
		return humanize.Bytes(uint64(max(n, 0)))
	default:
		return humanize.Comma(int64(n))
	}
}

// StateKind is the scheduling state of a task.
type StateKind int

const (
	Running StateKind = iota
	Blocked
	Halted
)

func (s StateKind) String() string {
	switch s {
	case Blocked:
		return "blocked"
	case Halted:
		return "halted"
	default:
		return "running"
	}
}

// State is the scheduling state of a task with an optional reason.
type State struct {
	Kind   StateKind
	Reason string
}

// Progress is the counter of a task.
type Progress struct {
	Step int
	// Done is the value of Step at completion; zero when unbounded.
	Done  int
	Unit  Unit
	State State
}

// Fraction returns Step/Done clamped to [0, 1], and false when the progress is unbounded.
func (p Progress) Fraction() (float64, bool) {
	if p.Done <= 0 {
		return 0, false
	}
	f := float64(p.Step) / float64(p.Done)
	return min(max(f, 0), 1), true
}

// String formats the counter, for example "12/40 files" or "3.1 MB".
func (p Progress) String() string {
	var s string
	if p.Done > 0 {
		s = fmt.Sprintf("%s/%s", p.Unit.format(p.Step), p.Unit.format(p.Done))
	} else {
		s = p.Unit.format(p.Step)
	}
	if p.Unit.Kind == UnitItems && p.Unit.Label != "" {
		s += " " + p.Unit.Label
	}
	if p.State.Kind != Running {
		s += " [" + p.State.Kind.String()
		if p.State.Reason != "" {
			s += ": " + p.State.Reason
		}
		s += "]"
	}
	return s
}

// Value is the displayable state of a task.
type Value struct {
	Name string
	// Progress is nil for tasks that only carry a name.
	Progress *Progress
}

// Equal reports whether both values display the same thing.
func (v Value) Equal(o Value) bool {
	if v.Name != o.Name {
		return false
	}
	if v.Progress == nil || o.Progress == nil {
		return v.Progress == o.Progress
	}
	return *v.Progress == *o.Progress
}

func (v Value) clone() Value {
	if v.Progress != nil {
		p := *v.Progress
		v.Progress = &p
	}
	return v
}

// Entry is one task of a snapshot.
type Entry struct {
	Key   Key
	Value Value
}
