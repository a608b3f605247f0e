package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Merger yields events from the ticker, the keyboard and an external stream
// in the order they become ready. A nil channel never yields.
type Merger struct {
	ticks  <-chan time.Time
	keys   <-chan tea.Key
	events <-chan Event
}

// NewMerger returns a merger over the three sources.
func NewMerger(ticks <-chan time.Time, keys <-chan tea.Key, events <-chan Event) *Merger {
	return &Merger{ticks: ticks, keys: keys, events: events}
}

// Next blocks until one source is ready. It returns false once ctx is done or
// when the keyboard or the external stream is closed.
func (m *Merger) Next(ctx context.Context) (Event, bool) {
	select {
	case <-ctx.Done():
		return nil, false
	case <-m.ticks:
		return Tick{}, true
	case k, ok := <-m.keys:
		if !ok {
			return nil, false
		}
		return Input{Key: k}, true
	case e, ok := <-m.events:
		if !ok {
			return nil, false
		}
		return e, true
	}
}
