package line

import (
	"github.com/fatih/color"

	"github.com/flashingpumpkin/progressdash/internal/tree"
)

type palette struct {
	init    bool
	colored bool

	info, success, failure *color.Color

	infoTS, successTS, failureTS *color.Color

	origin, ticks, spinner, name *color.Color

	blocked, halted, running *color.Color
}

func (p *palette) all() []*color.Color {
	return []*color.Color{
		p.info, p.success, p.failure,
		p.infoTS, p.successTS, p.failureTS,
		p.origin, p.ticks, p.spinner, p.name,
		p.blocked, p.halted, p.running,
	}
}

// setColored builds the palette on first use and switches every colour on or
// off regardless of what fatih/color detected for stdout.
func (p *palette) setColored(colored bool) {
	if !p.init {
		p.info = color.New(color.FgWhite, color.Bold)
		p.success = color.New(color.FgGreen, color.Bold)
		p.failure = color.New(color.FgRed, color.Bold)
		p.infoTS = color.New(color.FgWhite, color.Faint, color.BgYellow)
		p.successTS = color.New(color.FgGreen, color.Faint, color.BgYellow)
		p.failureTS = color.New(color.FgRed, color.Faint, color.BgYellow)
		p.origin = color.New(color.Faint)
		p.ticks = color.New(color.FgYellow)
		p.spinner = color.New(color.FgCyan)
		p.name = color.New(color.FgGreen, color.BgRed)
		p.running = color.New(color.Reset)
		p.blocked = color.New(color.FgYellow)
		p.halted = color.New(color.FgRed)
		p.init = true
		p.colored = !colored
	}
	if p.colored == colored {
		return
	}
	for _, c := range p.all() {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	p.colored = colored
}

func (p *palette) message(l tree.MessageLevel) *color.Color {
	switch l {
	case tree.Success:
		return p.success
	case tree.Failure:
		return p.failure
	default:
		return p.info
	}
}

func (p *palette) timestamp(l tree.MessageLevel) *color.Color {
	switch l {
	case tree.Success:
		return p.successTS
	case tree.Failure:
		return p.failureTS
	default:
		return p.infoTS
	}
}

func (p *palette) progress(k tree.StateKind) *color.Color {
	switch k {
	case tree.Blocked:
		return p.blocked
	case tree.Halted:
		return p.halted
	default:
		return p.running
	}
}
