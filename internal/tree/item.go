package tree

// Item is a handle to one task of a Root.
// All methods are safe for concurrent use and do nothing once the item is closed.
type Item struct {
	key  Key
	root *Root
}

// Key returns the position of the item in the tree.
func (i *Item) Key() Key {
	return i.key
}

// AddChild adds a task below this one.
func (i *Item) AddChild(name string) *Item {
	return i.root.add(i.key, name)
}

// Init sets the expected final step and the unit, and resets the step to zero.
// A done of zero means the number of steps is unknown.
func (i *Item) Init(done int, unit Unit) {
	i.root.update(i.key, func(v *Value) {
		v.Progress = &Progress{Done: done, Unit: unit}
	})
}

// SetName renames the task.
func (i *Item) SetName(name string) {
	i.root.update(i.key, func(v *Value) {
		v.Name = name
	})
}

// Set sets the current step.
func (i *Item) Set(step int) {
	i.withProgress(func(p *Progress) {
		p.Step = step
	})
}

// Inc advances the step by one.
func (i *Item) Inc() {
	i.IncBy(1)
}

// IncBy advances the step by n.
func (i *Item) IncBy(n int) {
	i.withProgress(func(p *Progress) {
		p.Step += n
	})
}

// Blocked marks the task as waiting on something.
func (i *Item) Blocked(reason string) {
	i.setState(State{Kind: Blocked, Reason: reason})
}

// Halted marks the task as stopped.
func (i *Item) Halted(reason string) {
	i.setState(State{Kind: Halted, Reason: reason})
}

// Running clears a previous Blocked or Halted state.
func (i *Item) Running() {
	i.setState(State{Kind: Running})
}

func (i *Item) setState(s State) {
	i.withProgress(func(p *Progress) {
		p.State = s
	})
}

func (i *Item) withProgress(fn func(p *Progress)) {
	i.root.update(i.key, func(v *Value) {
		p := Progress{}
		if v.Progress != nil {
			p = *v.Progress
		}
		fn(&p)
		v.Progress = &p
	})
}

// Info logs an informational message originating from this task.
func (i *Item) Info(text string) {
	i.Message(Info, text)
}

// Done logs a success message originating from this task.
func (i *Item) Done(text string) {
	i.Message(Success, text)
}

// Fail logs a failure message originating from this task.
func (i *Item) Fail(text string) {
	i.Message(Failure, text)
}

// Message logs a message with the task name as origin.
func (i *Item) Message(level MessageLevel, text string) {
	i.root.mu.RLock()
	v, ok := i.root.tasks[i.key]
	i.root.mu.RUnlock()
	if !ok {
		return
	}
	i.root.Message(level, v.Name, text)
}

// Close removes the task and all tasks below it.
func (i *Item) Close() {
	i.root.remove(i.key)
}
