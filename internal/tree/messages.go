package tree

import "time"

// DefaultMessagesCapacity is the number of messages a Root retains by default.
const DefaultMessagesCapacity = 1000

// MessageLevel is the severity of a message.
type MessageLevel int

const (
	Info MessageLevel = iota
	Success
	Failure
)

func (l MessageLevel) String() string {
	switch l {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "info"
	}
}

// Message is one entry of the message log.
type Message struct {
	Time   time.Time
	Level  MessageLevel
	Origin string
	Text   string
}

// CopyState remembers how far a reader has consumed the message log.
// The zero value has consumed nothing.
type CopyState struct {
	total int
}

// MessageRingBuffer is a fixed-size circular buffer of messages.
// When capacity is reached, new messages overwrite the oldest ones.
type MessageRingBuffer struct {
	data  []Message
	head  int // index of the oldest message
	count int
	total int // messages pushed since creation
}

// NewMessageRingBuffer creates a buffer retaining up to capacity messages.
func NewMessageRingBuffer(capacity int) *MessageRingBuffer {
	if capacity <= 0 {
		capacity = DefaultMessagesCapacity
	}
	return &MessageRingBuffer{data: make([]Message, capacity)}
}

// Push adds a message, evicting the oldest if at capacity.
func (rb *MessageRingBuffer) Push(m Message) {
	rb.total++
	if rb.count < len(rb.data) {
		rb.data[(rb.head+rb.count)%len(rb.data)] = m
		rb.count++
		return
	}
	rb.data[rb.head] = m
	rb.head = (rb.head + 1) % len(rb.data)
}

// Len returns the number of retained messages.
func (rb *MessageRingBuffer) Len() int {
	return rb.count
}

// Cap returns the maximum number of retained messages.
func (rb *MessageRingBuffer) Cap() int {
	return len(rb.data)
}

// Get returns the message at index (0 = oldest) and false if out of range.
func (rb *MessageRingBuffer) Get(index int) (Message, bool) {
	if index < 0 || index >= rb.count {
		return Message{}, false
	}
	return rb.data[(rb.head+index)%len(rb.data)], true
}

// AppendTo appends the retained messages, oldest first, to out.
func (rb *MessageRingBuffer) AppendTo(out []Message) []Message {
	return rb.appendFrom(out, 0)
}

func (rb *MessageRingBuffer) appendFrom(out []Message, start int) []Message {
	for i := start; i < rb.count; i++ {
		out = append(out, rb.data[(rb.head+i)%len(rb.data)])
	}
	return out
}

// AppendNew appends the messages pushed since prev to out and returns the
// state to pass next time. If more messages than the capacity were pushed
// since prev, all retained messages are appended.
func (rb *MessageRingBuffer) AppendNew(out []Message, prev *CopyState) ([]Message, CopyState) {
	next := CopyState{total: rb.total}
	if prev == nil {
		return rb.appendFrom(out, 0), next
	}
	fresh := rb.total - prev.total
	switch {
	case fresh <= 0:
		return out, next
	case fresh >= rb.count:
		return rb.appendFrom(out, 0), next
	default:
		return rb.appendFrom(out, rb.count-fresh), next
	}
}

// Clear removes all messages. The total count is kept so that copy states stay valid.
func (rb *MessageRingBuffer) Clear() {
	rb.head = 0
	rb.count = 0
	clear(rb.data)
}

// Iterate calls fn for each message from oldest to newest until fn returns false.
func (rb *MessageRingBuffer) Iterate(fn func(index int, m Message) bool) {
	for i := 0; i < rb.count; i++ {
		if !fn(i, rb.data[(rb.head+i)%len(rb.data)]) {
			return
		}
	}
}

func (rb *MessageRingBuffer) clone() *MessageRingBuffer {
	c := &MessageRingBuffer{
		data:  make([]Message, len(rb.data)),
		head:  rb.head,
		count: rb.count,
		total: rb.total,
	}
	copy(c.data, rb.data)
	return c
}

func (rb *MessageRingBuffer) equal(o *MessageRingBuffer) bool {
	if rb.count != o.count || rb.total != o.total {
		return false
	}
	for i := 0; i < rb.count; i++ {
		a, _ := rb.Get(i)
		b, _ := o.Get(i)
		if !a.Time.Equal(b.Time) || a.Level != b.Level || a.Origin != b.Origin || a.Text != b.Text {
			return false
		}
	}
	return true
}
