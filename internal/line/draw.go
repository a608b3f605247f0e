package line

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	apperrors "github.com/flashingpumpkin/progressdash/internal/errors"
	"github.com/flashingpumpkin/progressdash/internal/tree"
)

// Source is the progress tree as seen by the renderer.
type Source interface {
	SortedSnapshot(out []tree.Entry) []tree.Entry
	CopyNewMessages(out []tree.Message, prev *tree.CopyState) ([]tree.Message, tree.CopyState)
}

// spinnerFrames is the glyph set cycled through by the tick counter.
var spinnerFrames = spinner.CharSets[14]

// State is carried from one Render call to the next.
// It belongs to a single renderer and must not be shared.
type State struct {
	tree        []tree.Entry
	messages    []tree.Message
	fromCopying *tree.CopyState

	maxOriginWidth int
	// cells written on each line of the tree block during the last frame
	widths []int
	ticks  int

	buf     bytes.Buffer
	palette palette
}

// NewState returns an empty render state.
func NewState() *State {
	return &State{}
}

// Ticks returns the number of frames rendered so far.
func (s *State) Ticks() int {
	return s.ticks
}

// MaxOriginWidth returns the widest message origin seen so far.
func (s *State) MaxOriginWidth() int {
	return s.maxOriginWidth
}

// LineWidths returns the number of cells written per tree line in the last frame.
func (s *State) LineWidths() []int {
	return s.widths
}

// Render writes new messages and, on a terminal, the tree block of one frame.
// The cursor is left at the top of the block so the next frame overwrites it.
//
// With an empty tree and KeepRunningIfProgressIsEmpty unset, new messages are
// still written but errors.ErrProgressEmpty is returned instead of a tree block.
func Render(out io.Writer, root Source, s *State, opts Options) error {
	s.tree = root.SortedSnapshot(s.tree)
	var next tree.CopyState
	s.messages, next = root.CopyNewMessages(s.messages, s.fromCopying)
	s.fromCopying = &next

	s.buf.Reset()
	s.palette.setColored(opts.Colored)

	s.writeMessages(opts)

	if !opts.KeepRunningIfProgressIsEmpty && len(s.tree) == 0 {
		if err := s.flush(out); err != nil {
			return err
		}
		return apperrors.ErrProgressEmpty
	}

	if opts.OutputIsTerminal {
		s.writeTree(opts.levelRange())
	}
	s.ticks++

	return s.flush(out)
}

func (s *State) flush(out io.Writer) error {
	if s.buf.Len() == 0 {
		return nil
	}
	_, err := out.Write(s.buf.Bytes())
	return err
}

func (s *State) writeMessages(opts Options) {
	for i, m := range s.messages {
		originWidth := runewidth.StringWidth(m.Origin)
		s.maxOriginWidth = max(s.maxOriginWidth, originWidth)

		start := s.buf.Len()
		s.buf.WriteByte(' ')
		if opts.Timestamp {
			s.buf.WriteString(s.palette.timestamp(m.Level).Sprint(m.Time.Format("15:04:05")))
			s.buf.WriteByte(' ')
		}
		s.buf.WriteString(s.palette.origin.Sprint(strings.Repeat(" ", s.maxOriginWidth-originWidth) + m.Origin))
		s.buf.WriteByte(' ')
		s.buf.WriteString(s.palette.message(m.Level).Sprint(m.Text))

		// Messages are written over the previous tree block. The block moves
		// down by the number of messages, so a tree line may sit on a row that
		// held a longer line and keep its tail until the next frame.
		if opts.OutputIsTerminal && i < len(s.widths) {
			written := ansi.StringWidth(s.buf.String()[start:])
			if pad := s.widths[i] - written; pad > 0 {
				s.buf.WriteString(strings.Repeat(" ", pad))
			}
		}
		s.buf.WriteByte('\n')
	}
}

func (s *State) writeTree(levels LevelRange) {
	visible := 0
	for _, e := range s.tree {
		if levels.Contains(e.Key.Level()) {
			visible++
		}
	}
	if len(s.widths) < visible {
		s.widths = append(s.widths, make([]int, visible-len(s.widths))...)
	}

	i := 0
	for _, e := range s.tree {
		if !levels.Contains(e.Key.Level()) {
			continue
		}
		start := s.buf.Len()
		s.writeTask(e)
		width := ansi.StringWidth(s.buf.String()[start:])

		if last := s.widths[i]; last > width {
			s.buf.WriteString(strings.Repeat(" ", last-width))
		}
		s.buf.WriteByte('\n')
		s.widths[i] = width
		i++
	}

	if len(s.widths) > visible {
		for _, last := range s.widths[visible:] {
			s.buf.WriteString(strings.Repeat(" ", last))
			s.buf.WriteByte('\n')
		}
		s.cursorUp(len(s.widths))
		s.widths = s.widths[:visible]
	} else {
		s.cursorUp(visible)
	}
}

func (s *State) writeTask(e tree.Entry) {
	s.buf.WriteString(strings.Repeat(" ", int(e.Key.Level())))
	s.buf.WriteString(s.palette.ticks.Sprint(strconv.Itoa(s.ticks)))
	s.buf.WriteByte(' ')
	s.buf.WriteString(s.palette.spinner.Sprint(spinnerFrames[s.ticks%len(spinnerFrames)]))
	s.buf.WriteByte(' ')
	s.buf.WriteString(s.palette.name.Sprint(e.Value.Name))
	if p := e.Value.Progress; p != nil {
		s.buf.WriteByte(' ')
		s.buf.WriteString(s.palette.progress(p.State.Kind).Sprint(p.String()))
	}
}

func (s *State) cursorUp(n int) {
	if n > 0 {
		s.buf.WriteString(ansi.CursorUp(n))
	}
}

// Finish moves the cursor below the block drawn by the last frame so that
// subsequent output does not overwrite it.
func (s *State) Finish(out io.Writer) error {
	if len(s.widths) == 0 {
		return nil
	}
	_, err := io.WriteString(out, strings.Repeat("\n", len(s.widths)))
	return err
}
