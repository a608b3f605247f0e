// Package screen owns the terminal while the dashboard runs and repaints it
// with a line-level diff between frames.
package screen

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	apperrors "github.com/flashingpumpkin/progressdash/internal/errors"
)

// Terminal is where frames are written.
type Terminal interface {
	io.Writer
	// Size returns the current width and height in cells.
	Size() (width, height int, err error)
}

// ProcessTerminal is a Terminal backed by the process' stdin and stdout.
// Opening it enters raw mode and the alternate screen; Close undoes both.
type ProcessTerminal struct {
	in       *os.File
	out      *os.File
	oldState *term.State
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// OpenProcessTerminal prepares in and out for full-screen drawing.
// It fails with errors.ErrNotATerminal when out is not a terminal.
func OpenProcessTerminal(in, out *os.File) (*ProcessTerminal, error) {
	if !IsTerminal(out) {
		return nil, apperrors.ErrNotATerminal
	}

	t := &ProcessTerminal{in: in, out: out}
	if IsTerminal(in) {
		oldState, err := term.MakeRaw(int(in.Fd()))
		if err != nil {
			return nil, fmt.Errorf("enter raw mode: %w", err)
		}
		t.oldState = oldState
	}

	_, err := io.WriteString(out, ansi.SetAltScreenSaveCursorMode+ansi.HideCursor+ansi.EraseEntireScreen+ansi.CursorHomePosition)
	if err != nil {
		t.restore()
		return nil, fmt.Errorf("enter alternate screen: %w", err)
	}
	return t, nil
}

// Input returns the reader keys are read from.
func (t *ProcessTerminal) Input() io.Reader {
	return t.in
}

func (t *ProcessTerminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Size returns the size of the output terminal.
func (t *ProcessTerminal) Size() (int, int, error) {
	return term.GetSize(int(t.out.Fd()))
}

// Close leaves the alternate screen, shows the cursor and restores the
// previous terminal mode.
func (t *ProcessTerminal) Close() error {
	_, err := io.WriteString(t.out, ansi.ResetSynchronizedOutputMode+ansi.ShowCursor+ansi.ResetAltScreenSaveCursorMode)
	if rerr := t.restore(); err == nil {
		err = rerr
	}
	return err
}

func (t *ProcessTerminal) restore() error {
	if t.oldState == nil {
		return nil
	}
	err := term.Restore(int(t.in.Fd()), t.oldState)
	t.oldState = nil
	return err
}
