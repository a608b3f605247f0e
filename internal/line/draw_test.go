package line

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	apperrors "github.com/flashingpumpkin/progressdash/internal/errors"
	"github.com/flashingpumpkin/progressdash/internal/tree"
)

func terminalOptions() Options {
	return Options{OutputIsTerminal: true}
}

func taskLine(level tree.Level, ticks int, name string) string {
	return strings.Repeat(" ", int(level)) + strconv.Itoa(ticks) + " " + spinnerFrames[ticks%len(spinnerFrames)] + " " + name
}

func TestRenderDrawsTreeAndReturnsCursor(t *testing.T) {
	root := tree.New()
	a := root.AddChild("a")
	a.AddChild("child")

	var out bytes.Buffer
	state := NewState()
	require.NoError(t, Render(&out, root, state, terminalOptions()))

	exp := taskLine(1, 0, "a") + "\n" + taskLine(2, 0, "child") + "\n" + ansi.CursorUp(2)
	assert.Equal(t, exp, out.String())
	assert.Equal(t, 1, state.Ticks())
	assert.Equal(t, []int{ansi.StringWidth(taskLine(1, 0, "a")), ansi.StringWidth(taskLine(2, 0, "child"))}, state.LineWidths())
}

func TestRenderSameSnapshotTwiceOnlyRewritesLines(t *testing.T) {
	root := tree.New()
	root.AddChild("alpha")
	root.AddChild("beta")

	var out bytes.Buffer
	state := NewState()
	require.NoError(t, Render(&out, root, state, terminalOptions()))
	first := append([]int(nil), state.LineWidths()...)

	out.Reset()
	require.NoError(t, Render(&out, root, state, terminalOptions()))

	exp := taskLine(1, 1, "alpha") + "\n" + taskLine(1, 1, "beta") + "\n" + ansi.CursorUp(2)
	assert.Equal(t, exp, out.String(), "no padding is expected when widths are unchanged")
	assert.Equal(t, first, state.LineWidths())
}

func TestRenderShrinkingFrame(t *testing.T) {
	root := tree.New()
	root.AddChild("a")
	root.AddChild("b")

	var out bytes.Buffer
	state := NewState()
	state.widths = []int{5, 20, 3}

	require.NoError(t, Render(&out, root, state, terminalOptions()))

	lineA := taskLine(1, 0, "a")
	lineB := taskLine(1, 0, "b")
	wB := ansi.StringWidth(lineB)
	exp := lineA + "\n" +
		lineB + strings.Repeat(" ", 20-wB) + "\n" +
		"   \n" +
		ansi.CursorUp(3)
	assert.Equal(t, exp, out.String(), "the shorter line is padded, the unused line blanked and the cursor moved by the old line count")
	assert.Equal(t, []int{ansi.StringWidth(lineA), wB}, state.LineWidths())
}

func TestRenderEmptyTree(t *testing.T) {
	tests := map[string]struct {
		keepRunning bool
		expErr      error
		expTicks    int
	}{
		"An empty tree should stop the renderer.": {
			keepRunning: false,
			expErr:      apperrors.ErrProgressEmpty,
			expTicks:    0,
		},

		"An empty tree should be drawn when asked to keep running.": {
			keepRunning: true,
			expTicks:    1,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			root := tree.New()
			root.Message(tree.Info, "setup", "nothing to do")

			var out bytes.Buffer
			state := NewState()
			opts := terminalOptions()
			opts.KeepRunningIfProgressIsEmpty = test.keepRunning

			err := Render(&out, root, state, opts)
			if test.expErr != nil {
				assert.True(t, errors.Is(err, test.expErr))
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, " setup nothing to do\n", out.String(), "messages are printed but no tree section")
			assert.Equal(t, test.expTicks, state.Ticks())
		})
	}
}

func TestRenderRedirectedOutputOnlyAppendsMessages(t *testing.T) {
	root := tree.New()
	it := root.AddChild("download")
	it.Info("connecting")

	var out bytes.Buffer
	state := NewState()
	require.NoError(t, Render(&out, root, state, Options{}))
	it.Done("finished")
	require.NoError(t, Render(&out, root, state, Options{}))

	assert.Equal(t, " download connecting\n download finished\n", out.String())
	assert.Empty(t, state.LineWidths())
	assert.Equal(t, 2, state.Ticks())
}

func TestRenderOriginWidthIsMonotone(t *testing.T) {
	root := tree.New()
	root.AddChild("keep")

	state := NewState()
	var out bytes.Buffer
	var got []int
	for _, origin := range []string{"abc", "abcdefg", "abcd"} {
		root.Message(tree.Info, origin, "x")
		out.Reset()
		require.NoError(t, Render(&out, root, state, Options{}))
		got = append(got, state.MaxOriginWidth())
	}

	assert.Equal(t, []int{3, 7, 7}, got)
	assert.Equal(t, "    abcd x\n", out.String(), "origins are right aligned to the widest seen")
}

func TestRenderTimestamp(t *testing.T) {
	root := tree.New()
	root.AddChild("keep")
	root.Message(tree.Failure, "net", "timeout")

	var out bytes.Buffer
	require.NoError(t, Render(&out, root, NewState(), Options{Timestamp: true}))

	line := out.String()
	require.True(t, strings.HasSuffix(line, " net timeout\n"), line)
	assert.Len(t, strings.TrimPrefix(strings.TrimSuffix(line, " net timeout\n"), " "), len("15:04:05"))
}

func TestRenderColored(t *testing.T) {
	root := tree.New()
	root.AddChild("a")
	root.Message(tree.Success, "a", "ok")

	var out bytes.Buffer
	state := NewState()
	opts := terminalOptions()
	opts.Colored = true
	require.NoError(t, Render(&out, root, state, opts))

	assert.Contains(t, out.String(), "\x1b[")
	assert.Equal(t, " a ok", ansi.Strip(strings.SplitN(out.String(), "\n", 2)[0]))
	assert.Equal(t, ansi.StringWidth(taskLine(1, 0, "a")), state.LineWidths()[0], "styling is not counted in the line width")

	out.Reset()
	opts.Colored = false
	require.NoError(t, Render(&out, root, state, opts))
	assert.NotContains(t, strings.TrimSuffix(out.String(), ansi.CursorUp(1)), "\x1b[")
}

func TestRenderLevelFilter(t *testing.T) {
	root := tree.New()
	a := root.AddChild("a")
	b := a.AddChild("b")
	b.AddChild("c")

	var out bytes.Buffer
	opts := terminalOptions()
	opts.LevelFilter = &LevelRange{Min: 2, Max: 2}
	require.NoError(t, Render(&out, root, NewState(), opts))

	assert.Equal(t, taskLine(2, 0, "b")+"\n"+ansi.CursorUp(1), out.String())
}

func TestRenderPadsMessagesOverPreviousBlock(t *testing.T) {
	root := tree.New()
	root.AddChild("a-rather-long-task-name")

	var out bytes.Buffer
	state := NewState()
	require.NoError(t, Render(&out, root, state, terminalOptions()))
	width := state.LineWidths()[0]

	root.Message(tree.Info, "o", "m")
	out.Reset()
	require.NoError(t, Render(&out, root, state, terminalOptions()))

	first := strings.SplitN(out.String(), "\n", 2)[0]
	assert.Equal(t, width, ansi.StringWidth(first))
}

type writeError struct{}

func (writeError) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRenderPropagatesWriteErrors(t *testing.T) {
	root := tree.New()
	root.AddChild("a")

	err := Render(writeError{}, root, NewState(), terminalOptions())
	assert.EqualError(t, err, "broken pipe")
}

func TestRenderTracksLinesAcrossFrames(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := tree.New()
		state := NewState()
		opts := terminalOptions()
		opts.KeepRunningIfProgressIsEmpty = true

		var items []*tree.Item
		frames := rapid.IntRange(1, 8).Draw(t, "frames")
		for f := 0; f < frames; f++ {
			want := rapid.IntRange(0, 6).Draw(t, "visible")
			for len(items) < want {
				items = append(items, root.AddChild(strings.Repeat("x", rapid.IntRange(1, 30).Draw(t, "name"))))
			}
			for len(items) > want {
				items[len(items)-1].Close()
				items = items[:len(items)-1]
			}

			before := len(state.LineWidths())
			var out bytes.Buffer
			if err := Render(&out, root, state, opts); err != nil {
				t.Fatalf("Render: %v", err)
			}

			if got := len(state.LineWidths()); got != want {
				t.Fatalf("tracked %d lines, want %d", got, want)
			}
			up := max(before, want)
			if up > 0 && !strings.HasSuffix(out.String(), ansi.CursorUp(up)) {
				t.Fatalf("frame %d: expected cursor up by %d in %q", f, up, out.String())
			}
			if lines := strings.Count(out.String(), "\n"); lines != up {
				t.Fatalf("frame %d: wrote %d lines, want %d", f, lines, up)
			}
		}
	})
}
