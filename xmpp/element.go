/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xmpp

import (
	"bytes"
	"encoding/xml"
	"io"
)

// Element represents a generic and mutable XML node element.
type Element struct {
	name     string
	text     string
	attrs    attributeSet
	elements elementSet
}

// NewElementName creates a mutable XML element instance with a given name.
func NewElementName(name string) *Element {
	return &Element{name: name}
}

// NewElementNamespace creates a mutable XML element instance with a given name and namespace.
func NewElementNamespace(name, namespace string) *Element {
	return &Element{
		name:  name,
		attrs: attributeSet{{Label: "xmlns", Value: namespace}},
	}
}

// Name returns XML node name.
func (e *Element) Name() string { return e.name }

// Attributes returns XML node attribute value.
func (e *Element) Attributes() AttributeSet { return e.attrs }

// Elements returns all instance's child elements.
func (e *Element) Elements() ElementSet { return e.elements }

// Text returns XML node text value.
// Returns an empty string if not set.
func (e *Element) Text() string { return e.text }

// Namespace returns 'xmlns' node attribute.
func (e *Element) Namespace() string { return e.attrs.Get("xmlns") }

// ID returns 'id' node attribute.
func (e *Element) ID() string { return e.attrs.Get("id") }

// Type returns 'type' node attribute.
func (e *Element) Type() string { return e.attrs.Get("type") }

// SetAttribute sets an XML node attribute (label=value)
func (e *Element) SetAttribute(label, value string) *Element {
	e.attrs.set(label, value)
	return e
}

// SetNamespace sets 'xmlns' node attribute.
func (e *Element) SetNamespace(namespace string) *Element {
	return e.SetAttribute("xmlns", namespace)
}

// SetText sets XML node text value.
func (e *Element) SetText(text string) *Element {
	e.text = text
	return e
}

// SetID sets 'id' node attribute.
func (e *Element) SetID(identifier string) *Element {
	return e.SetAttribute("id", identifier)
}

// SetType sets 'type' node attribute.
func (e *Element) SetType(tp string) *Element {
	return e.SetAttribute("type", tp)
}

// SetFrom sets 'from' node attribute.
func (e *Element) SetFrom(from string) *Element {
	return e.SetAttribute("from", from)
}

// SetTo sets 'to' node attribute.
func (e *Element) SetTo(to string) *Element {
	return e.SetAttribute("to", to)
}

// AppendElement appends a new sub element.
func (e *Element) AppendElement(child XElement) *Element {
	e.elements = append(e.elements, child)
	return e
}

// String returns a string representation of the element.
func (e *Element) String() string {
	buf := bytes.NewBuffer(nil)
	e.ToXML(buf, true)
	return buf.String()
}

// ToXML serializes element to a raw XML representation.
// includeClosing determines if closing tag should be attached.
// Attributes with empty value are omitted.
func (e *Element) ToXML(w io.Writer, includeClosing bool) {
	_, _ = io.WriteString(w, "<")
	_, _ = io.WriteString(w, e.name)

	for _, attr := range e.attrs {
		if len(attr.Value) == 0 {
			continue
		}
		_, _ = io.WriteString(w, " ")
		_, _ = io.WriteString(w, attr.Label)
		_, _ = io.WriteString(w, `="`)
		_ = xml.EscapeText(w, []byte(attr.Value))
		_, _ = io.WriteString(w, `"`)
	}
	if e.elements.Count() == 0 && len(e.text) == 0 {
		if includeClosing {
			_, _ = io.WriteString(w, "/>")
		} else {
			_, _ = io.WriteString(w, ">")
		}
		return
	}
	_, _ = io.WriteString(w, ">")

	if len(e.text) > 0 {
		_ = xml.EscapeText(w, []byte(e.text))
	}
	for _, elem := range e.elements {
		elem.ToXML(w, true)
	}
	if includeClosing {
		_, _ = io.WriteString(w, "</")
		_, _ = io.WriteString(w, e.name)
		_, _ = io.WriteString(w, ">")
	}
}
