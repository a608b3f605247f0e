package tree

import (
	"math"
	"slices"
	"sync"
	"time"
)

// Root is a progress tree safe for concurrent use.
// Workers update it through Items while renderers read snapshots of it.
type Root struct {
	mu       sync.RWMutex
	tasks    map[Key]Value
	messages *MessageRingBuffer
	nextID   ID
	now      func() time.Time
}

// Option configures a Root.
type Option func(*Root)

// WithMessagesCapacity sets how many messages the Root retains.
func WithMessagesCapacity(n int) Option {
	return func(r *Root) {
		r.messages = NewMessageRingBuffer(n)
	}
}

// WithClock sets the clock used to timestamp messages.
func WithClock(now func() time.Time) Option {
	return func(r *Root) {
		r.now = now
	}
}

// New creates an empty tree.
func New(opts ...Option) *Root {
	r := &Root{
		tasks:    make(map[Key]Value),
		messages: NewMessageRingBuffer(DefaultMessagesCapacity),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddChild adds a top-level task.
func (r *Root) AddChild(name string) *Item {
	return r.add(Key{}, name)
}

func (r *Root) add(parent Key, name string) *Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.freeKey(parent)
	r.tasks[key] = Value{Name: name}
	return &Item{key: key, root: r}
}

// freeKey returns the next key below parent that no live task uses.
// IDs wrap around and never take the value zero. r.mu must be held.
func (r *Root) freeKey(parent Key) Key {
	for i := 0; i < math.MaxUint16; i++ {
		r.nextID++
		if r.nextID == 0 {
			r.nextID++
		}
		key := parent.Add(r.nextID)
		if _, used := r.tasks[key]; !used {
			return key
		}
	}
	// Every id below parent is taken.
	return parent.Add(r.nextID)
}

func (r *Root) update(key Key, fn func(v *Value)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.tasks[key]
	if !ok {
		return
	}
	fn(&v)
	r.tasks[key] = v
}

func (r *Root) remove(key Key) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k := range r.tasks {
		if k == key || k.IsDescendantOf(key) {
			delete(r.tasks, k)
		}
	}
}

// Message appends a message to the log.
func (r *Root) Message(level MessageLevel, origin, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages.Push(Message{
		Time:   r.now(),
		Level:  level,
		Origin: origin,
		Text:   text,
	})
}

// SortedSnapshot appends all tasks to out[:0], sorted by key, and returns it.
// Passing the previous result back in reuses its storage.
func (r *Root) SortedSnapshot(out []Entry) []Entry {
	out = out[:0]

	r.mu.RLock()
	for k, v := range r.tasks {
		out = append(out, Entry{Key: k, Value: v.clone()})
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b Entry) int {
		return Compare(a.Key, b.Key)
	})
	return out
}

// CopyMessages copies all retained messages, oldest first, into out[:0].
func (r *Root) CopyMessages(out []Message) []Message {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.messages.AppendTo(out[:0])
}

// CopyNewMessages copies the messages logged since prev into out[:0] and
// returns the state to pass on the next call. A nil prev copies everything.
func (r *Root) CopyNewMessages(out []Message, prev *CopyState) ([]Message, CopyState) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.messages.AppendNew(out[:0], prev)
}

// NumTasks returns the number of tasks currently in the tree.
func (r *Root) NumTasks() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tasks)
}

// MessagesCapacity returns the number of messages the tree retains.
func (r *Root) MessagesCapacity() int {
	return r.messages.Cap()
}

// DeepClone returns an independent copy of the tree and its messages.
func (r *Root) DeepClone() *Root {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := &Root{
		tasks:    make(map[Key]Value, len(r.tasks)),
		messages: r.messages.clone(),
		nextID:   r.nextID,
		now:      r.now,
	}
	for k, v := range r.tasks {
		c.tasks[k] = v.clone()
	}
	return c
}

// DeepEqual reports whether both trees hold the same tasks and messages.
func (r *Root) DeepEqual(o *Root) bool {
	if r == o {
		return true
	}
	if o == nil {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	o.mu.RLock()
	defer o.mu.RUnlock()

	if len(r.tasks) != len(o.tasks) {
		return false
	}
	for k, v := range r.tasks {
		ov, ok := o.tasks[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return r.messages.equal(o.messages)
}
