/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package transport

import (
	"io"

	"github.com/ortuman/rabber/xmpp"
)

// Transport represents a stream transport mechanism.
type Transport interface {
	io.ReadWriteCloser

	// WriteString writes a raw string to the transport.
	WriteString(s string) error

	// WriteElement writes an XML element to the transport.
	// When includeClosing is false the element end tag is omitted.
	WriteElement(elem xmpp.XElement, includeClosing bool) error

	// RemoteAddress returns the peer network address.
	RemoteAddress() string
}
