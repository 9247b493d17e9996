/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xmpp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestElement_Build(t *testing.T) {
	e := NewElementNamespace("bind", BindNamespace)
	e.AppendElement(NewElementName("jid").SetText("alice@localhost/3"))

	require.Equal(t, "bind", e.Name())
	require.Equal(t, BindNamespace, e.Namespace())
	require.Equal(t, 1, e.Elements().Count())
	require.Equal(t, `<bind xmlns="urn:ietf:params:xml:ns:xmpp-bind"><jid>alice@localhost/3</jid></bind>`, e.String())

	e.SetNamespace("urn:other")
	require.Equal(t, 1, e.Attributes().Count())
	require.Equal(t, "urn:other", e.Attributes().Get("xmlns"))
}

func TestElement_ToXML(t *testing.T) {
	iq := NewIQType("b1", ResultType).SetTo("localhost/1")
	iq.AppendElement(
		NewElementNamespace("bind", BindNamespace).
			AppendElement(NewElementName("jid").SetText("alice@localhost/1")),
	)
	require.Equal(t, `<iq id="b1" type="result" to="localhost/1"><bind xmlns="urn:ietf:params:xml:ns:xmpp-bind"><jid>alice@localhost/1</jid></bind></iq>`, iq.String())

	// empty attribute values are omitted
	require.Equal(t, `<iq type="result"/>`, NewIQType("", ResultType).String())

	// open tag only
	buf := bytes.NewBuffer(nil)
	NewElementName(StreamName).SetAttribute("xmlns:stream", StreamNamespace).ToXML(buf, false)
	require.Equal(t, `<stream:stream xmlns:stream="http://etherx.jabber.org/streams">`, buf.String())
}

func TestElement_Escaping(t *testing.T) {
	e := NewElementName("body").SetID(`a"<b>`).SetText("x & y < z")
	require.Equal(t, `<body id="a&#34;&lt;b&gt;">x &amp; y &lt; z</body>`, e.String())
}

func TestStanzaError_Element(t *testing.T) {
	require.Equal(t, "service-unavailable", ErrServiceUnavailable.Error())
	require.Equal(t,
		`<error type="cancel"><service-unavailable xmlns="urn:ietf:params:xml:ns:xmpp-stanzas"/></error>`,
		ErrServiceUnavailable.Element().String(),
	)
	require.Equal(t,
		`<error type="modify"><bad-request xmlns="urn:ietf:params:xml:ns:xmpp-stanzas"/></error>`,
		ErrBadRequest.Element().String(),
	)
}

func TestIsIQType(t *testing.T) {
	require.True(t, IsIQType(GetType))
	require.True(t, IsIQType(ErrorType))
	require.False(t, IsIQType("normal"))
}
