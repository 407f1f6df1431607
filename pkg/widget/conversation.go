package widget

// Conversation is the append-only message store backing one widget
// instance. It has no delete or mutate operations: every state change
// in the widget is expressed as exactly one append.
//
// Conversation is not safe for concurrent use on its own; the owning
// Widget serializes access.
type Conversation struct {
	msgs []Message
}

// Append adds a message to the end of the conversation
func (c *Conversation) Append(msg Message) {
	c.msgs = append(c.msgs, msg)
}

// All returns a snapshot of the conversation in insertion order. The
// returned slice is the caller's to keep; later appends do not
// modify it.
func (c *Conversation) All() []Message {
	out := make([]Message, len(c.msgs))
	copy(out, c.msgs)
	return out
}

// Len returns the number of messages
func (c *Conversation) Len() int {
	return len(c.msgs)
}

// Last returns the most recent message and true, or a zero Message
// and false when the conversation is empty.
func (c *Conversation) Last() (Message, bool) {
	if len(c.msgs) == 0 {
		return Message{}, false
	}
	return c.msgs[len(c.msgs)-1], true
}
