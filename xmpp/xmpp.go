/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xmpp

import (
	"fmt"
	"io"
)

const (
	// StreamName represents the stream root element name.
	StreamName = "stream:stream"

	// IQName represents "iq" stanza name
	IQName = "iq"

	// PresenceName represents "presence" stanza name
	PresenceName = "presence"

	// MessageName represents "message" stanza name
	MessageName = "message"
)

const (
	// StreamNamespace represents the stream prefix namespace.
	StreamNamespace = "http://etherx.jabber.org/streams"

	// ClientNamespace represents the default client stream namespace.
	ClientNamespace = "jabber:client"

	// SASLNamespace represents SASL negotiation namespace.
	SASLNamespace = "urn:ietf:params:xml:ns:xmpp-sasl"

	// BindNamespace represents resource binding namespace.
	BindNamespace = "urn:ietf:params:xml:ns:xmpp-bind"

	// SessionNamespace represents session establishment namespace.
	SessionNamespace = "urn:ietf:params:xml:ns:xmpp-session"

	// IQAuthFeatureNamespace represents legacy authentication feature namespace.
	IQAuthFeatureNamespace = "http://jabber.org/features/iq-auth"

	// RosterNamespace represents roster namespace.
	RosterNamespace = "jabber:iq:roster"

	// StanzasNamespace represents stanza error conditions namespace.
	StanzasNamespace = "urn:ietf:params:xml:ns:xmpp-stanzas"
)

// XElement represents a generic XML node element.
type XElement interface {
	fmt.Stringer

	Name() string
	Attributes() AttributeSet
	Elements() ElementSet
	Text() string

	ToXML(w io.Writer, includeClosing bool)
}

// Attribute represents an XML node attribute (label=value).
type Attribute struct {
	Label string
	Value string
}

// AttributeSet interface represents a read-only set of XML attributes.
type AttributeSet interface {
	Get(label string) string
	Count() int
}

// ElementSet interface represents a read-only set of XML sub elements.
type ElementSet interface {
	// Count returns child elements count.
	Count() int
}

type attributeSet []Attribute

func (as attributeSet) Get(label string) string {
	for _, attr := range as {
		if attr.Label == label {
			return attr.Value
		}
	}
	return ""
}

func (as attributeSet) Count() int { return len(as) }

func (as *attributeSet) set(label, value string) {
	for i := range *as {
		if (*as)[i].Label == label {
			(*as)[i].Value = value
			return
		}
	}
	*as = append(*as, Attribute{Label: label, Value: value})
}

type elementSet []XElement

func (es elementSet) Count() int { return len(es) }
