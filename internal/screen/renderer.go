package screen

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Renderer keeps the last frame written to a terminal and only repaints the
// rows that changed. A change of window size repaints everything.
type Renderer struct {
	out io.Writer

	previous      []string
	width, height int

	frames    int
	repainted int
	buf       strings.Builder
}

// NewRenderer returns a Renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Frames returns the number of frames rendered.
func (r *Renderer) Frames() int {
	return r.frames
}

// Repainted returns the number of rows written by the last frame.
func (r *Renderer) Repainted() int {
	return r.repainted
}

// Invalidate forces the next frame to repaint every row.
func (r *Renderer) Invalidate() {
	r.previous = r.previous[:0]
	r.width, r.height = 0, 0
}

// Render draws lines on a width x height screen. Lines past the height are dropped.
// Lines are expected to fit in width already.
func (r *Renderer) Render(lines []string, width, height int) error {
	full := r.frames == 0 || width != r.width || height != r.height
	n := min(len(lines), max(height, 0))

	r.buf.Reset()
	r.buf.WriteString(ansi.SetSynchronizedOutputMode)
	if full {
		r.buf.WriteString(ansi.EraseEntireScreen)
	}

	r.repainted = 0
	rows := n
	if !full {
		rows = max(n, len(r.previous))
	}
	for i := 0; i < rows; i++ {
		var line string
		if i < n {
			line = lines[i]
		}
		if full && line == "" {
			continue
		}
		if !full && i < len(r.previous) && r.previous[i] == line {
			continue
		}
		r.buf.WriteString(ansi.CursorPosition(1, i+1))
		r.buf.WriteString(ansi.EraseEntireLine)
		r.buf.WriteString(line)
		r.repainted++
	}
	r.buf.WriteString(ansi.ResetSynchronizedOutputMode)

	r.previous = append(r.previous[:0], lines[:n]...)
	r.width, r.height = width, height
	r.frames++

	if !full && r.repainted == 0 {
		return nil
	}
	_, err := io.WriteString(r.out, r.buf.String())
	return err
}
