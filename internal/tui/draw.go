package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/flashingpumpkin/progressdash/internal/tree"
)

const (
	timeFormat  = "15:04:05"
	indentWidth = 2
)

var spinnerFrames = spinner.Dot.Frames

// fit truncates or pads s to exactly w cells.
func fit(s string, w int) string {
	return fitTail(s, w, "…")
}

func fitTail(s string, w int, tail string) string {
	if w <= 0 {
		return ""
	}
	sw := ansi.StringWidth(s)
	if sw > w {
		s = ansi.Truncate(s, w, tail)
		sw = ansi.StringWidth(s)
	}
	return s + strings.Repeat(" ", w-sw)
}

// compose lays out one frame as size.Height lines of size.Width cells.
func (e *Engine) compose(size Rect) []string {
	w, h := size.Width, size.Height
	if w <= 0 || h <= 0 {
		return nil
	}

	lines := make([]string, 0, h)
	lines = append(lines, e.titleBar(w))

	body := max(h-2, 0)
	msgHeight := 0
	switch {
	case e.state.hideMessages || body == 0:
	case e.state.messagesFullscreen:
		msgHeight = body
	default:
		msgHeight = max(body/3, min(body, 2))
	}
	topHeight := body - msgHeight

	lines = append(lines, e.topPanes(w, topHeight)...)
	if msgHeight > 0 {
		lines = append(lines, e.messagePane(w, msgHeight)...)
	}

	if h > 1 {
		e.help.Width = w
		footer := e.help.ShortHelpView(keys.ShortHelp())
		for len(lines) < h-1 {
			lines = append(lines, fit("", w))
		}
		lines = append(lines[:h-1], fit(footer, w))
	}
	return lines[:h]
}

func (e *Engine) titleBar(w int) string {
	left := " " + IconBrand + " " + e.state.title
	var right string
	switch {
	case e.state.interrupt.Pending():
		right = IconWarning + " interrupt requested, waiting "
	case e.state.interrupt.Mode() == InterruptDeferred:
		right = "interrupts deferred "
	}
	gap := w - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		return e.styles.Title.Render(fit(left, w))
	}
	return e.styles.Title.Render(left + strings.Repeat(" ", gap) + right)
}

func (e *Engine) topPanes(w, h int) []string {
	if h <= 0 {
		return nil
	}

	infoVisible := !e.state.hideInfo && len(e.state.information) > 0
	if infoVisible && e.state.maximizeInfo {
		e.measureTreeColumn()
		return e.infoPane(w, h)
	}
	if !infoVisible {
		return e.taskPane(w, h)
	}

	infoWidth := 0
	for _, l := range e.state.information {
		infoWidth = max(infoWidth, ansi.StringWidth(l.Text)+1)
	}
	infoWidth = min(infoWidth, w/3)
	taskWidth := w - infoWidth - 1
	if infoWidth <= 0 || taskWidth <= 0 {
		return e.taskPane(w, h)
	}

	tasks := e.taskPane(taskWidth, h)
	info := e.infoPane(infoWidth, h)
	sep := e.styles.Separator.Render(InnerVertical)
	out := make([]string, h)
	for i := range out {
		out[i] = tasks[i] + sep + info[i]
	}
	return out
}

// measureTreeColumn records the width of the widest indented task name.
func (e *Engine) measureTreeColumn() int {
	widest := 0
	for _, en := range e.entries {
		widest = max(widest, indent(en.Key.Level())+ansi.StringWidth(en.Value.Name))
	}
	e.state.lastTreeColumnWidth = widest
	return widest
}

func indent(l tree.Level) int {
	return max(int(l)-1, 0) * indentWidth
}

func (e *Engine) taskPane(w, h int) []string {
	measured := e.measureTreeColumn()
	column := e.state.nextTreeColumnWidth
	if column == 0 {
		column = measured
	}
	column = min(column, w*2/3)

	out := make([]string, 0, h)
	if len(e.entries) == 0 {
		out = append(out, fit(e.styles.Progress.Render(" no tasks"), w))
	}
	start := min(e.state.taskOffset, max(len(e.entries)-1, 0))
	for _, en := range e.entries[min(start, len(e.entries)):] {
		if len(out) == h {
			break
		}
		out = append(out, fit(e.taskLine(en, column), w))
	}
	for len(out) < h {
		out = append(out, fit("", w))
	}
	return out
}

func (e *Engine) taskLine(en tree.Entry, column int) string {
	pad := indent(en.Key.Level())
	name := fitTail(en.Value.Name, max(column-pad, 1), "…")
	line := strings.Repeat(" ", pad) + e.styles.TaskName.Render(name)

	p := en.Value.Progress
	if p == nil {
		return line
	}
	return line + " " + e.bar(*p) + " " + e.progressStyle(p.State.Kind).Render(p.String())
}

func (e *Engine) bar(p tree.Progress) string {
	f, ok := p.Fraction()
	if !ok {
		frame := spinnerFrames[e.frames%len(spinnerFrames)]
		return e.styles.Bar.Render(fitTail(frame, BarWidth, ""))
	}
	filled := int(f * BarWidth)
	return e.styles.Bar.Render(strings.Repeat(BarFilled, filled)) +
		e.styles.Separator.Render(strings.Repeat(BarEmpty, BarWidth-filled))
}

func (e *Engine) progressStyle(k tree.StateKind) lipgloss.Style {
	switch k {
	case tree.Blocked:
		return e.styles.Blocked
	case tree.Halted:
		return e.styles.Halted
	default:
		return e.styles.Progress
	}
}

func (e *Engine) infoPane(w, h int) []string {
	out := make([]string, 0, h)
	for _, l := range e.state.information {
		if len(out) == h {
			break
		}
		if l.Kind == LineTitle {
			out = append(out, fit(e.styles.Header.Render(l.Text), w))
		} else {
			out = append(out, fit(e.styles.InfoText.Render(l.Text), w))
		}
	}
	for len(out) < h {
		out = append(out, fit("", w))
	}
	return out
}

// messagePane draws a header and the newest messages first, skipping messageOffset of them.
func (e *Engine) messagePane(w, h int) []string {
	header := e.styles.Header.Render(" Messages ") + e.styles.Separator.Render(strings.Repeat(InnerHorizontal, w))
	out := make([]string, 0, h)
	out = append(out, fitTail(header, w, ""))

	for i := len(e.messages) - 1 - e.state.messageOffset; i >= 0 && len(out) < h; i-- {
		m := e.messages[i]
		line := " " + e.styles.Time.Render(m.Time.Format(timeFormat)) + " " +
			e.styles.Origin.Render(m.Origin) + " " + e.messageStyle(m.Level).Render(m.Text)
		out = append(out, fit(line, w))
	}
	for len(out) < h {
		out = append(out, fit("", w))
	}
	return out
}

func (e *Engine) messageStyle(l tree.MessageLevel) lipgloss.Style {
	switch l {
	case tree.Success:
		return e.styles.Success
	case tree.Failure:
		return e.styles.Failure
	default:
		return e.styles.Info
	}
}
