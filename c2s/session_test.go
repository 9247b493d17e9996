/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package c2s

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/ortuman/rabber/model"
	"github.com/ortuman/rabber/parser"
	memorystorage "github.com/ortuman/rabber/storage/memory"
	"github.com/ortuman/rabber/storage/repository"
	"github.com/ortuman/rabber/xmpp"
	"github.com/stretchr/testify/require"
)

const (
	streamOpen   = `<?xml version='1.0'?>` + streamReopen
	streamReopen = `<stream:stream xmlns:stream="http://etherx.jabber.org/streams" xmlns="jabber:client" to="localhost" version="1.0">`
	streamClose  = `</stream:stream>`

	plainAuth = `<auth xmlns="urn:ietf:params:xml:ns:xmpp-sasl" mechanism="PLAIN">AGFsaWNlAHNlY3JldA==</auth>`

	serverHeader = `<?xml version="1.0" encoding="UTF-8"?>` +
		`<stream:stream xmlns:stream="http://etherx.jabber.org/streams" xmlns="jabber:client" from="localhost" id="%d" xml:lang="en" version="1.0">`

	unauthenticatedFeatures = `<stream:features>` +
		`<mechanisms xmlns="urn:ietf:params:xml:ns:xmpp-sasl"><mechanism>PLAIN</mechanism><mechanism>DIGEST-MD5</mechanism></mechanisms>` +
		`<auth xmlns="http://jabber.org/features/iq-auth"/>` +
		`</stream:features>`

	authenticatedFeatures = `<stream:features>` +
		`<bind xmlns="urn:ietf:params:xml:ns:xmpp-bind"/>` +
		`<session xmlns="urn:ietf:params:xml:ns:xmpp-session"/>` +
		`</stream:features>`
)

type fakeTransport struct {
	r      io.Reader
	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

func newFakeTransport(input string) *fakeTransport {
	return &fakeTransport{r: strings.NewReader(input)}
}

func (t *fakeTransport) Read(p []byte) (int, error) { return t.r.Read(p) }

func (t *fakeTransport) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.Write(p)
}

func (t *fakeTransport) WriteString(s string) error {
	_, err := t.Write([]byte(s))
	return err
}

func (t *fakeTransport) WriteElement(elem xmpp.XElement, includeClosing bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	elem.ToXML(&t.buf, includeClosing)
	return nil
}

func (t *fakeTransport) RemoteAddress() string { return "fake" }

func (t *fakeTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

func (t *fakeTransport) output() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.String()
}

func newTestStorage(t *testing.T) repository.Container {
	rep, err := memorystorage.New()
	require.Nil(t, err)
	require.Nil(t, rep.User().UpsertUser(context.Background(), &model.User{Username: "alice", Password: "secret"}))
	return rep
}

func runTestSession(t *testing.T, rep repository.Container, input string) (*Session, string, error) {
	tr := newFakeTransport(input)
	cfg := DefaultConfig()
	sess := NewSession("c2s:test", tr, &cfg, rep)

	err := sess.Run(context.Background())
	require.True(t, tr.closed)
	return sess, tr.output(), err
}

func header(streamID int) string {
	return fmt.Sprintf(serverHeader, streamID)
}

func TestSession_UnauthenticatedFeatures(t *testing.T) {
	sess, out, err := runTestSession(t, newTestStorage(t), streamOpen+streamClose)
	require.Nil(t, err)
	require.Equal(t, header(0)+unauthenticatedFeatures+streamClose, out)
	require.Equal(t, "", sess.Username())
	require.NotContains(t, out, "<bind")
	require.NotContains(t, out, "<session")
}

func TestSession_ConnectionClosed(t *testing.T) {
	// peer went away without closing the stream
	_, out, err := runTestSession(t, newTestStorage(t), streamOpen)
	require.Nil(t, err)
	require.Equal(t, header(0)+unauthenticatedFeatures, out)

	// nothing received at all
	_, out, err = runTestSession(t, newTestStorage(t), "")
	require.Nil(t, err)
	require.Equal(t, "", out)
}

func TestSession_StreamRestart(t *testing.T) {
	input := streamOpen + plainAuth + streamReopen + streamClose + streamClose

	sess, out, err := runTestSession(t, newTestStorage(t), input)
	require.Nil(t, err)
	require.Equal(t, "alice", sess.Username())

	expected := header(0) + unauthenticatedFeatures +
		`<success xmlns="urn:ietf:params:xml:ns:xmpp-sasl"/>` +
		header(1) + authenticatedFeatures + streamClose +
		streamClose
	require.Equal(t, expected, out)
}

func TestSession_ProtocolFaults(t *testing.T) {
	inputs := []string{
		`<presence/>`, // stream not opened
		streamOpen + `<unknown/>`,
		streamOpen + `<iq type="set" id="1"><bind xmlns="urn:ietf:params:xml:ns:xmpp-bind"/></iq>`, // not authenticated
		streamOpen + plainAuth + plainAuth,
		streamOpen + `<auth xmlns="urn:ietf:params:xml:ns:xmpp-sasl" mechanism="SCRAM-SHA-1"/>`,
		streamOpen + `<auth xmlns="urn:ietf:params:xml:ns:xmpp-sasl" mechanism="PLAIN"/>`,
		streamOpen + `<iq type="unknown" id="1"/>`,
		streamOpen + `text`,
	}
	for _, input := range inputs {
		_, _, err := runTestSession(t, newTestStorage(t), input)
		require.NotNil(t, err, input)

		_, ok := err.(*parser.ProtocolFault)
		require.True(t, ok, input)
	}
}

func TestSession_Canceled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	tr := &fakeTransport{r: pr}
	cfg := DefaultConfig()
	sess := NewSession("c2s:test", tr, &cfg, newTestStorage(t))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- sess.Run(ctx) }()

	cancel()
	require.Equal(t, context.Canceled, <-errCh)
}
