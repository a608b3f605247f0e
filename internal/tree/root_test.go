package tree_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/flashingpumpkin/progressdash/internal/tree"
)

func names(entries []tree.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Value.Name)
	}
	return out
}

func TestSortedSnapshotOrdersDepthFirst(t *testing.T) {
	root := tree.New()
	a := root.AddChild("a")
	b := root.AddChild("b")
	a1 := a.AddChild("a1")
	b.AddChild("b1")
	a1.AddChild("a1x")
	a.AddChild("a2")

	snap := root.SortedSnapshot(nil)

	assert.Equal(t, []string{"a", "a1", "a1x", "a2", "b", "b1"}, names(snap))
	assert.Equal(t, tree.Level(1), snap[0].Key.Level())
	assert.Equal(t, tree.Level(3), snap[2].Key.Level())
}

func TestSortedSnapshotReusesBuffer(t *testing.T) {
	root := tree.New()
	root.AddChild("a")

	buf := make([]tree.Entry, 0, 8)
	snap := root.SortedSnapshot(buf)
	require.Len(t, snap, 1)
	assert.Equal(t, cap(buf), cap(snap))
}

func TestCloseRemovesSubtree(t *testing.T) {
	root := tree.New()
	a := root.AddChild("a")
	a.AddChild("a1").AddChild("a1x")
	root.AddChild("b")

	a.Close()

	assert.Equal(t, []string{"b"}, names(root.SortedSnapshot(nil)))
	assert.Equal(t, 1, root.NumTasks())

	// Closed items are inert.
	a.Set(3)
	a.Info("ignored")
	assert.Equal(t, 1, root.NumTasks())
	assert.Empty(t, root.CopyMessages(nil))
}

func TestIDsWrapWithoutReplacingLiveTasks(t *testing.T) {
	root := tree.New()
	long := root.AddChild("long-running")
	long.AddChild("long-child")

	for i := 0; i < 70000; i++ {
		if i%2 == 0 {
			long.AddChild("short").Close()
		} else {
			root.AddChild("short").Close()
		}
	}
	fresh := root.AddChild("fresh")
	nested := long.AddChild("nested")

	assert.NotEqual(t, long.Key(), fresh.Key())
	assert.ElementsMatch(t,
		[]string{"long-running", "long-child", "nested", "fresh"},
		names(root.SortedSnapshot(nil)))

	fresh.Close()
	nested.Close()
	assert.ElementsMatch(t, []string{"long-running", "long-child"}, names(root.SortedSnapshot(nil)))
}

func TestItemProgress(t *testing.T) {
	root := tree.New()
	it := root.AddChild("fetch")
	it.Init(10, tree.Items("files"))
	it.Inc()
	it.IncBy(2)
	it.Blocked("waiting for lock")

	snap := root.SortedSnapshot(nil)
	require.Len(t, snap, 1)
	p := snap[0].Value.Progress
	require.NotNil(t, p)
	assert.Equal(t, 3, p.Step)
	assert.Equal(t, "3/10 files [blocked: waiting for lock]", p.String())

	f, ok := p.Fraction()
	assert.True(t, ok)
	assert.InDelta(t, 0.3, f, 1e-9)
}

func TestProgressString(t *testing.T) {
	tests := map[string]struct {
		progress tree.Progress
		exp      string
	}{
		"Unbounded counters should print the step only.": {
			progress: tree.Progress{Step: 1234},
			exp:      "1,234",
		},
		"Byte counters should be humanized.": {
			progress: tree.Progress{Step: 1500, Done: 3000, Unit: tree.Bytes},
			exp:      "1.5 kB/3.0 kB",
		},
		"Halted tasks should show their state.": {
			progress: tree.Progress{Step: 1, Done: 2, State: tree.State{Kind: tree.Halted}},
			exp:      "1/2 [halted]",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.exp, test.progress.String())
		})
	}
}

func TestMessagesUseTaskNameAsOrigin(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	root := tree.New(tree.WithClock(func() time.Time { return now }))
	it := root.AddChild("build")
	it.Info("started")
	it.Done("finished")
	it.Fail("broken")

	msgs := root.CopyMessages(nil)
	require.Len(t, msgs, 3)
	assert.Equal(t, "build", msgs[0].Origin)
	assert.Equal(t, now, msgs[0].Time)
	assert.Equal(t, tree.Info, msgs[0].Level)
	assert.Equal(t, tree.Success, msgs[1].Level)
	assert.Equal(t, tree.Failure, msgs[2].Level)
}

func TestCopyNewMessages(t *testing.T) {
	root := tree.New(tree.WithMessagesCapacity(2))
	root.Message(tree.Info, "x", "1")

	out, state := root.CopyNewMessages(nil, nil)
	require.Len(t, out, 1)

	out, state = root.CopyNewMessages(out, &state)
	assert.Empty(t, out)

	root.Message(tree.Info, "x", "2")
	root.Message(tree.Info, "x", "3")
	root.Message(tree.Info, "x", "4")
	out, _ = root.CopyNewMessages(out, &state)
	require.Len(t, out, 2)
	assert.Equal(t, "3", out[0].Text)
	assert.Equal(t, "4", out[1].Text)
	assert.Equal(t, 2, root.MessagesCapacity())
}

func TestDeepCloneAndEqual(t *testing.T) {
	root := tree.New()
	it := root.AddChild("a")
	it.Init(5, tree.Unit{})

	clone := root.DeepClone()
	assert.True(t, root.DeepEqual(clone))

	it.Inc()
	assert.False(t, root.DeepEqual(clone), "clone must not share progress with the live tree")

	clone = root.DeepClone()
	assert.True(t, root.DeepEqual(clone))

	it.Info("hello")
	assert.False(t, root.DeepEqual(clone), "messages are part of the comparison")
	assert.False(t, root.DeepEqual(nil))
}

func TestCompareIsATotalOrder(t *testing.T) {
	genKey := rapid.Custom(func(t *rapid.T) tree.Key {
		var k tree.Key
		depth := rapid.IntRange(1, int(tree.MaxLevel)).Draw(t, "depth")
		for i := 0; i < depth; i++ {
			k = k.Add(rapid.Uint16Range(1, 4).Draw(t, "id"))
		}
		return k
	})

	rapid.Check(t, func(t *rapid.T) {
		a, b, c := genKey.Draw(t, "a"), genKey.Draw(t, "b"), genKey.Draw(t, "c")

		if tree.Compare(a, b) != -tree.Compare(b, a) {
			t.Fatalf("Compare is not antisymmetric for %v and %v", a, b)
		}
		if (tree.Compare(a, b) == 0) != (a == b) {
			t.Fatalf("Compare(%v, %v) == 0 disagrees with equality", a, b)
		}
		if tree.Compare(a, b) <= 0 && tree.Compare(b, c) <= 0 && tree.Compare(a, c) > 0 {
			t.Fatalf("Compare is not transitive for %v, %v, %v", a, b, c)
		}
		if a.Level() > 1 && tree.Compare(a.Parent(), a) >= 0 {
			t.Fatalf("parent %v must sort before child %v", a.Parent(), a)
		}
	})
}

func TestKeyAddAtMaxLevelStaysAtMaxLevel(t *testing.T) {
	var k tree.Key
	for i := 0; i < int(tree.MaxLevel); i++ {
		k = k.Add(1)
	}
	child := k.Add(2)

	assert.Equal(t, tree.MaxLevel, child.Level())
	assert.Equal(t, k.Parent(), child.Parent())
	assert.Equal(t, "1.1", k.Parent().Parent().Parent().Parent().String())
}
