// Package tree is the progress tree rendered by the line and dashboard renderers.
//
// A Root holds tasks addressed by Key and a bounded log of messages. Items are
// handles used by workers to update their task. Renderers only read from the tree
// through snapshots and copies.
package tree

import (
	"strconv"
	"strings"
)

// Level is the nesting depth of a task. Children of the root are at level 1.
type Level = uint8

// MaxLevel is the deepest level a task can be created at.
const MaxLevel Level = 6

// ID identifies a task among the tasks of a Root.
type ID = uint16

// Key is the position of a task in the tree.
// The zero Key is the root itself.
type Key struct {
	path  [MaxLevel]ID
	level Level
}

// Level returns the nesting depth of the key.
func (k Key) Level() Level {
	return k.level
}

// Add returns the key of a child of k with the given id.
// At MaxLevel the child is placed next to k, under k's parent.
func (k Key) Add(id ID) Key {
	if k.level == MaxLevel {
		k = k.Parent()
	}
	k.path[k.level] = id
	k.level++
	return k
}

// Parent returns the key of the parent task. The parent of the root is the root.
func (k Key) Parent() Key {
	if k.level == 0 {
		return k
	}
	k.level--
	k.path[k.level] = 0
	return k
}

// IsDescendantOf reports whether k is below ancestor in the tree.
func (k Key) IsDescendantOf(ancestor Key) bool {
	if k.level <= ancestor.level {
		return false
	}
	for i := Level(0); i < ancestor.level; i++ {
		if k.path[i] != ancestor.path[i] {
			return false
		}
	}
	return true
}

// Compare orders keys depth first: a parent sorts before its children and
// siblings sort by id. It returns -1, 0 or +1.
func Compare(a, b Key) int {
	n := min(a.level, b.level)
	for i := Level(0); i < n; i++ {
		switch {
		case a.path[i] < b.path[i]:
			return -1
		case a.path[i] > b.path[i]:
			return 1
		}
	}
	switch {
	case a.level < b.level:
		return -1
	case a.level > b.level:
		return 1
	}
	return 0
}

func (k Key) String() string {
	if k.level == 0 {
		return "root"
	}
	parts := make([]string, 0, k.level)
	for i := Level(0); i < k.level; i++ {
		parts = append(parts, strconv.Itoa(int(k.path[i])))
	}
	return strings.Join(parts, ".")
}
