package tui

import (
	"io"
	"sync"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyboardBridge reads key presses from a blocking reader on its own
// goroutine and hands them over one at a time. The channel has a capacity
// of one, so a slow consumer blocks the reader instead of losing keys.
type KeyboardBridge struct {
	keys chan tea.Key
	done chan struct{}
	stop sync.Once
	err  error
}

// StartKeyboardBridge starts reading r. The bridge owns r until it stops.
func StartKeyboardBridge(r io.Reader) *KeyboardBridge {
	b := &KeyboardBridge{
		keys: make(chan tea.Key, 1),
		done: make(chan struct{}),
	}
	go b.run(r)
	return b
}

// Keys returns the channel of key presses. It is closed when reading fails.
func (b *KeyboardBridge) Keys() <-chan tea.Key {
	return b.keys
}

// Err returns the read error that stopped the bridge. It is only valid once Keys is closed.
func (b *KeyboardBridge) Err() error {
	return b.err
}

// Stop releases a bridge blocked on delivering a key. A bridge blocked in
// Read stays there until the reader returns.
func (b *KeyboardBridge) Stop() {
	b.stop.Do(func() { close(b.done) })
}

func (b *KeyboardBridge) run(r io.Reader) {
	defer close(b.keys)

	buf := make([]byte, 256)
	var decoded []tea.Key
	for {
		n, err := r.Read(buf)
		decoded = decodeKeys(buf[:n], decoded[:0])
		for _, k := range decoded {
			select {
			case b.keys <- k:
			case <-b.done:
				return
			}
		}
		if err != nil {
			b.err = err
			return
		}
	}
}

// decodeKeys turns raw terminal input into key presses and appends them to out.
// Unknown escape sequences are dropped.
func decodeKeys(b []byte, out []tea.Key) []tea.Key {
	for len(b) > 0 {
		var k tea.Key
		var ok bool
		var n int
		switch c := b[0]; {
		case c == 0x1b:
			k, n, ok = decodeEscape(b)
		case c == ' ':
			k, n, ok = tea.Key{Type: tea.KeySpace, Runes: []rune{' '}}, 1, true
		case c < 0x20 || c == 0x7f:
			k, n, ok = tea.Key{Type: tea.KeyType(c)}, 1, true
		default:
			r, size := utf8.DecodeRune(b)
			k, n, ok = tea.Key{Type: tea.KeyRunes, Runes: []rune{r}}, size, r != utf8.RuneError
		}
		if ok {
			out = append(out, k)
		}
		b = b[n:]
	}
	return out
}

var csiKeys = map[string]tea.KeyType{
	"A":  tea.KeyUp,
	"B":  tea.KeyDown,
	"C":  tea.KeyRight,
	"D":  tea.KeyLeft,
	"H":  tea.KeyHome,
	"F":  tea.KeyEnd,
	"Z":  tea.KeyShiftTab,
	"2~": tea.KeyInsert,
	"3~": tea.KeyDelete,
	"5~": tea.KeyPgUp,
	"6~": tea.KeyPgDown,
}

func decodeEscape(b []byte) (tea.Key, int, bool) {
	if len(b) == 1 || b[1] == 0x1b {
		return tea.Key{Type: tea.KeyEsc}, 1, true
	}

	switch b[1] {
	case '[', 'O':
		// CSI and SS3 sequences end with a byte in 0x40-0x7e.
		for i := 2; i < len(b); i++ {
			if b[i] >= 0x40 && b[i] <= 0x7e {
				t, ok := csiKeys[string(b[2:i+1])]
				return tea.Key{Type: t}, i + 1, ok
			}
		}
		return tea.Key{}, len(b), false
	}

	// Escape followed by a key is that key with alt.
	size := 1
	if b[1] >= utf8.RuneSelf {
		_, size = utf8.DecodeRune(b[1:])
	}
	rest := decodeKeys(b[1:1+size], nil)
	if len(rest) != 1 {
		return tea.Key{}, 1 + size, false
	}
	rest[0].Alt = true
	return rest[0], 1 + size, true
}
