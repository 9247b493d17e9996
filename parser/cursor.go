/*
 * Copyright (c) 2019 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package parser

import "context"

// Cursor provides single event lookahead over a queue
// along with recursive descent element matching helpers.
type Cursor struct {
	q        *Queue
	pending  Event
	buffered bool
}

// NewCursor returns a cursor reading from q.
func NewCursor(q *Queue) *Cursor {
	return &Cursor{q: q}
}

// Peek returns the next event without consuming it.
// ErrConnectionClosed is returned while the next event is the closed sentinel.
func (c *Cursor) Peek(ctx context.Context) (Event, error) {
	if !c.buffered {
		e, err := c.q.Pop(ctx)
		if err != nil {
			return Event{}, err
		}
		c.pending = e
		c.buffered = true
	}
	if c.pending.Kind == ConnectionClosedEvent {
		return c.pending, ErrConnectionClosed
	}
	return c.pending, nil
}

// Consume discards the previously peeked event.
func (c *Cursor) Consume() {
	if !c.buffered {
		panic("parser: consume called without a peeked event")
	}
	c.pending = Event{}
	c.buffered = false
}

// ExpectTag consumes a whole element.
// If name is not empty the element must be named after it.
// body, if not nil, is invoked after the start tag has been consumed and may consume
// the element content. Any error returned by body is returned unchanged.
func (c *Cursor) ExpectTag(ctx context.Context, name string, body func(name string, attrs map[string]string) error) error {
	start, err := c.Peek(ctx)
	if err != nil {
		return err
	}
	if start.Kind != TagStartEvent {
		return Faultf("expected tag start, got %s", start)
	}
	if len(name) > 0 && start.Name != name {
		return Faultf("expected <%s>, got %s", name, start)
	}
	c.Consume()

	if body != nil {
		if err := body(start.Name, start.Attributes); err != nil {
			return err
		}
	}
	end, err := c.Peek(ctx)
	if err != nil {
		return err
	}
	if end.Kind != TagEndEvent || end.Name != start.Name {
		return Faultf("expected </%s>, got %s", start.Name, end)
	}
	c.Consume()
	return nil
}

// ExpectText consumes a text event and returns its content.
func (c *Cursor) ExpectText(ctx context.Context) (string, error) {
	e, err := c.Peek(ctx)
	if err != nil {
		return "", err
	}
	if e.Kind != TextEvent {
		return "", Faultf("expected text, got %s", e)
	}
	c.Consume()
	return e.Content, nil
}

// IsNextTagEnd tells whether the next event is an element end.
func (c *Cursor) IsNextTagEnd(ctx context.Context) (bool, error) {
	e, err := c.Peek(ctx)
	if err != nil {
		return false, err
	}
	return e.Kind == TagEndEvent, nil
}

// IsNextText tells whether the next event is character data.
func (c *Cursor) IsNextText(ctx context.Context) (bool, error) {
	e, err := c.Peek(ctx)
	if err != nil {
		return false, err
	}
	return e.Kind == TextEvent, nil
}

// SkipContent consumes the remaining content of the current element,
// leaving its end tag as the next event.
func (c *Cursor) SkipContent(ctx context.Context) error {
	var depth int
	for {
		e, err := c.Peek(ctx)
		if err != nil {
			return err
		}
		switch e.Kind {
		case TagStartEvent:
			depth++
		case TagEndEvent:
			if depth == 0 {
				return nil
			}
			depth--
		}
		c.Consume()
	}
}
