/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const streamName = "stream:stream"

// ErrTooLargeStanza is returned by Tokenize when the size of
// the incoming stanza is too large.
var ErrTooLargeStanza = errors.New("parser: too large stanza")

// Handler receives tokenizer callbacks in document order.
type Handler interface {
	TagStart(name string, attrs map[string]string)
	Text(content string)
	TagEnd(name string)
}

// Tokenizer represents a push style XML tokenizer.
type Tokenizer interface {
	// Tokenize reports tokens to h until input is exhausted or an error occurs.
	Tokenize(h Handler) error
}

// XMLTokenizer is a Tokenizer built on top of encoding/xml raw tokens.
//
// Element nesting is not validated. Processing instructions, comments and
// directives are not reported. Adjacent character data is coalesced, and
// whitespace only character data is dropped unless it is the whole content
// of an element.
type XMLTokenizer struct {
	dec           *xml.Decoder
	maxStanzaSize int64

	depth        int
	streams      []int
	lastOffset   int64
	text         bytes.Buffer
	lastWasStart bool
}

// NewXMLTokenizer returns a tokenizer reading from r.
// A non positive maxStanzaSize disables the stanza size limit.
func NewXMLTokenizer(r io.Reader, maxStanzaSize int) *XMLTokenizer {
	return &XMLTokenizer{
		dec:           xml.NewDecoder(r),
		maxStanzaSize: int64(maxStanzaSize),
	}
}

// Tokenize satisfies Tokenizer interface.
// A clean end of input is not reported as an error.
func (t *XMLTokenizer) Tokenize(h Handler) error {
	for {
		tk, err := t.dec.RawToken()
		if err != nil {
			t.flushText(h, false)
			if err == io.EOF {
				return nil
			}
			return err
		}
		switch tk := tk.(type) {
		case xml.StartElement:
			t.flushText(h, false)

			name := xmlName(tk.Name.Space, tk.Name.Local)
			attrs := make(map[string]string, len(tk.Attr))
			for _, a := range tk.Attr {
				attrs[xmlName(a.Name.Space, a.Name.Local)] = a.Value
			}
			h.TagStart(name, attrs)

			t.depth++
			if name == streamName {
				t.streams = append(t.streams, t.depth)
			}
			t.lastWasStart = true

		case xml.CharData:
			t.text.Write(tk)

		case xml.EndElement:
			t.flushText(h, t.lastWasStart)

			name := xmlName(tk.Name.Space, tk.Name.Local)
			h.TagEnd(name)

			if n := len(t.streams); n > 0 && t.streams[n-1] == t.depth && name == streamName {
				t.streams = t.streams[:n-1]
			}
			t.depth--
			t.lastWasStart = false
		}
		if err := t.checkStanzaSize(); err != nil {
			return err
		}
	}
}

func (t *XMLTokenizer) checkStanzaSize() error {
	off := t.dec.InputOffset()
	if t.depth <= t.streamDepth() {
		t.lastOffset = off
		return nil
	}
	if t.maxStanzaSize > 0 && off-t.lastOffset > t.maxStanzaSize {
		return ErrTooLargeStanza
	}
	return nil
}

func (t *XMLTokenizer) streamDepth() int {
	if n := len(t.streams); n > 0 {
		return t.streams[n-1]
	}
	return 0
}

func (t *XMLTokenizer) flushText(h Handler, keepWhitespace bool) {
	if t.text.Len() == 0 {
		return
	}
	s := t.text.String()
	t.text.Reset()

	if keepWhitespace || len(strings.TrimSpace(s)) > 0 {
		h.Text(s)
	}
}

func xmlName(space, local string) string {
	if len(space) > 0 {
		return space + ":" + local
	}
	return local
}
