package tui

import (
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap is the fixed key table of the dashboard.
type keyMap struct {
	Quit               key.Binding
	ToggleMessages     key.Binding
	MessagesFullscreen key.Binding
	MessagesDown       key.Binding
	MessagesUp         key.Binding
	MessagesPageDown   key.Binding
	MessagesPageUp     key.Binding
	TasksDown          key.Binding
	TasksUp            key.Binding
	TasksPageDown      key.Binding
	TasksPageUp        key.Binding
	ToggleInfo         key.Binding
	MaximizeInfo       key.Binding
}

// ctrl+[ is the same byte as esc.
var keys = keyMap{
	Quit:               key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("q", "quit")),
	ToggleMessages:     key.NewBinding(key.WithKeys("`"), key.WithHelp("`", "messages")),
	MessagesFullscreen: key.NewBinding(key.WithKeys("~"), key.WithHelp("~", "fullscreen messages")),
	MessagesDown:       key.NewBinding(key.WithKeys("J"), key.WithHelp("J/K", "scroll messages")),
	MessagesUp:         key.NewBinding(key.WithKeys("K")),
	MessagesPageDown:   key.NewBinding(key.WithKeys("D"), key.WithHelp("D/U", "page messages")),
	MessagesPageUp:     key.NewBinding(key.WithKeys("U")),
	TasksDown:          key.NewBinding(key.WithKeys("j"), key.WithHelp("j/k", "scroll tasks")),
	TasksUp:            key.NewBinding(key.WithKeys("k")),
	TasksPageDown:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d/u", "page tasks")),
	TasksPageUp:        key.NewBinding(key.WithKeys("u")),
	ToggleInfo:         key.NewBinding(key.WithKeys("["), key.WithHelp("[", "info")),
	MaximizeInfo:       key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "maximize info")),
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Quit, k.TasksDown, k.TasksPageDown, k.MessagesDown, k.MessagesPageDown,
		k.ToggleMessages, k.MessagesFullscreen, k.ToggleInfo, k.MaximizeInfo,
	}
}

// FullHelp returns all bindings.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

const maxOffset = math.MaxUint16

func saturatingAdd(v, d int) int {
	return min(max(v+d, 0), maxOffset)
}

// handleKey applies a key press to the view state. It returns false for keys
// that are not in the table, and reports whether the loop has to exit.
func (s *viewState) handleKey(k tea.Key) (known, exit bool) {
	switch {
	case key.Matches(k, keys.Quit):
		s.interrupt, exit = s.interrupt.OnCancel()
	case key.Matches(k, keys.ToggleMessages):
		s.hideMessages = !s.hideMessages
	case key.Matches(k, keys.MessagesFullscreen):
		s.messagesFullscreen = !s.messagesFullscreen
	case key.Matches(k, keys.MessagesDown):
		s.messageOffset = saturatingAdd(s.messageOffset, 1)
	case key.Matches(k, keys.MessagesPageDown):
		s.messageOffset = saturatingAdd(s.messageOffset, 10)
	case key.Matches(k, keys.TasksDown):
		s.taskOffset = saturatingAdd(s.taskOffset, 1)
	case key.Matches(k, keys.TasksPageDown):
		s.taskOffset = saturatingAdd(s.taskOffset, 10)
	case key.Matches(k, keys.MessagesUp):
		s.messageOffset = saturatingAdd(s.messageOffset, -1)
	case key.Matches(k, keys.MessagesPageUp):
		s.messageOffset = saturatingAdd(s.messageOffset, -10)
	case key.Matches(k, keys.TasksUp):
		s.taskOffset = saturatingAdd(s.taskOffset, -1)
	case key.Matches(k, keys.TasksPageUp):
		s.taskOffset = saturatingAdd(s.taskOffset, -10)
	case key.Matches(k, keys.ToggleInfo):
		s.hideInfo = !s.hideInfo
	case key.Matches(k, keys.MaximizeInfo):
		s.maximizeInfo = !s.maximizeInfo
	default:
		return false, false
	}
	return true, exit
}
