/*
 * Copyright (c) 2019 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package parser

// Adapter turns tokenizer callbacks into queued parse events.
type Adapter struct {
	q      *Queue
	closed bool
}

// NewAdapter returns an adapter feeding q.
func NewAdapter(q *Queue) *Adapter {
	return &Adapter{q: q}
}

// TagStart satisfies Handler interface.
func (a *Adapter) TagStart(name string, attrs map[string]string) {
	a.push(Event{Kind: TagStartEvent, Name: name, Attributes: attrs})
}

// Text satisfies Handler interface.
func (a *Adapter) Text(content string) {
	a.push(Event{Kind: TextEvent, Content: content})
}

// TagEnd satisfies Handler interface.
func (a *Adapter) TagEnd(name string) {
	a.push(Event{Kind: TagEndEvent, Name: name})
}

// Run drives tk to completion and then pushes the connection closed sentinel.
// It returns the error that terminated the tokenizer, if any.
func (a *Adapter) Run(tk Tokenizer) error {
	err := tk.Tokenize(a)
	a.push(Event{Kind: ConnectionClosedEvent})
	a.closed = true
	return err
}

func (a *Adapter) push(e Event) {
	if a.closed {
		return
	}
	a.q.Push(e)
}
