/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package c2s

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/ortuman/rabber/model"
	"github.com/ortuman/rabber/parser"
	memorystorage "github.com/ortuman/rabber/storage/memory"
	"github.com/ortuman/rabber/transport"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const (
	notAuthorizedFailure = `<failure xmlns="urn:ietf:params:xml:ns:xmpp-sasl"><not-authorized/></failure>`
	temporaryFailure     = `<failure xmlns="urn:ietf:params:xml:ns:xmpp-sasl"><temporary-auth-failure/></failure>`

	// nc=00000002 response for alice/secret, nonce N and cnonce C
	subsequentDigestMD5Response = "dXNlcm5hbWU9ImFsaWNlIixyZWFsbT0ibG9jYWxob3N0Iixub25jZT0iTiIsY25vbmNlPSJDIixuYz0wMDAwMDAwMixxb3A9YXV0aCxkaWdlc3QtdXJpPSJ4bXBwL2xvY2FsaG9zdCIscmVzcG9uc2U9OTQ2NTAzMDFiMGExMTFkNmQ3MzhkMmIzMjM0MzYxYzIsY2hhcnNldD11dGYtOA=="
	subsequentDigestMD5RspAuth  = "cnNwYXV0aD01NzFiNWU1NWMzMmY0NzdhNDNmMjgzMGRlMDc3NTM5OA=="
)

var challengeRe = regexp.MustCompile(`<challenge xmlns="urn:ietf:params:xml:ns:xmpp-sasl">([^<]+)</challenge>`)

func digestMD5Response(username, password, nonce, cnonce, nc, digestURI string) string {
	x := md5.Sum([]byte(username + ":localhost:" + password))
	a1 := md5.Sum(append(x[:], []byte(":"+nonce+":"+cnonce)...))
	a2 := md5.Sum([]byte("AUTHENTICATE:" + digestURI))
	kd := md5.Sum([]byte(hex.EncodeToString(a1[:]) + ":" + nonce + ":" + nc + ":" + cnonce + ":auth:" + hex.EncodeToString(a2[:])))
	return hex.EncodeToString(kd[:])
}

func digestMD5Payload(username, password, nonce, nc string) string {
	s := fmt.Sprintf(`username="%s",realm="localhost",nonce="%s",cnonce="C",nc=%s,qop=auth,digest-uri="xmpp/localhost",response=%s,charset=utf-8`,
		username, nonce, nc, digestMD5Response(username, password, nonce, "C", nc, "xmpp/localhost"))
	return base64.StdEncoding.EncodeToString([]byte(s))
}

type pipeClient struct {
	t    *testing.T
	conn net.Conn
	buf  bytes.Buffer
}

func (c *pipeClient) send(s string) {
	_, err := c.conn.Write([]byte(s))
	require.Nil(c.t, err)
}

// readUntil reads server output until marker shows up and returns everything read so far.
func (c *pipeClient) readUntil(marker string) string {
	b := make([]byte, 1024)
	for !strings.Contains(c.buf.String(), marker) {
		require.Nil(c.t, c.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		n, err := c.conn.Read(b)
		require.Nil(c.t, err)
		c.buf.Write(b[:n])
	}
	return c.buf.String()
}

func startPipeSession(t *testing.T, sess func(tr transport.Transport) *Session) (*pipeClient, chan error) {
	srvConn, cliConn := net.Pipe()

	cfg := transport.DefaultConfig()
	s := sess(transport.NewSocketTransport(srvConn, &cfg))

	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(context.Background()) }()

	return &pipeClient{t: t, conn: cliConn}, errCh
}

func TestSession_PlainSuccess(t *testing.T) {
	labels := prometheus.Labels{"mechanism": "PLAIN", "result": "success"}
	before := testutil.ToFloat64(c2sAuthentications.With(labels))

	sess, out, err := runTestSession(t, newTestStorage(t), streamOpen+plainAuth)
	require.Nil(t, err)
	require.Equal(t, "alice", sess.Username())
	require.Equal(t, header(0)+unauthenticatedFeatures+`<success xmlns="urn:ietf:params:xml:ns:xmpp-sasl"/>`, out)

	require.Equal(t, before+1, testutil.ToFloat64(c2sAuthentications.With(labels)))
}

func TestSession_PlainFailure(t *testing.T) {
	input := streamOpen +
		`<auth xmlns="urn:ietf:params:xml:ns:xmpp-sasl" mechanism="PLAIN">AGFsaWNlAHdyb25n</auth>` +
		streamReopen

	sess, out, err := runTestSession(t, newTestStorage(t), input)
	require.Nil(t, err)
	require.Equal(t, "", sess.Username())

	expected := header(0) + unauthenticatedFeatures + notAuthorizedFailure + header(1) + unauthenticatedFeatures
	require.Equal(t, expected, out)

	// malformed payloads keep the session alive as well
	input = streamOpen +
		`<auth xmlns="urn:ietf:params:xml:ns:xmpp-sasl" mechanism="PLAIN">!!!</auth>` +
		`<auth xmlns="urn:ietf:params:xml:ns:xmpp-sasl" mechanism="PLAIN">` + base64.StdEncoding.EncodeToString([]byte("alice")) + `</auth>` +
		plainAuth
	sess, out, err = runTestSession(t, newTestStorage(t), input)
	require.Nil(t, err)
	require.Equal(t, "alice", sess.Username())
	require.Contains(t, out, `<failure xmlns="urn:ietf:params:xml:ns:xmpp-sasl"><incorrect-encoding/></failure>`)
	require.Contains(t, out, `<failure xmlns="urn:ietf:params:xml:ns:xmpp-sasl"><malformed-request/></failure>`)
}

func TestSession_DigestMD5(t *testing.T) {
	rep := newTestStorage(t)

	cl, errCh := startPipeSession(t, func(tr transport.Transport) *Session {
		cfg := DefaultConfig()
		return NewSession("c2s:test", tr, &cfg, rep)
	})
	cl.send(streamOpen)
	cl.readUntil("</stream:features>")

	cl.send(`<auth xmlns="urn:ietf:params:xml:ns:xmpp-sasl" mechanism="DIGEST-MD5"/>`)
	out := cl.readUntil("</challenge>")

	m := challengeRe.FindStringSubmatch(out)
	require.Len(t, m, 2)
	b, err := base64.StdEncoding.DecodeString(m[1])
	require.Nil(t, err)

	nonce := regexp.MustCompile(`nonce="([^"]+)"`).FindStringSubmatch(string(b))[1]
	require.Equal(t, fmt.Sprintf(`realm="localhost",nonce="%s",qop="auth",charset=utf-8,algorithm=md5-sess`, nonce), string(b))

	// wrong password
	cl.send(`<response xmlns="urn:ietf:params:xml:ns:xmpp-sasl">` + digestMD5Payload("alice", "guess", nonce, "00000001") + `</response>`)
	cl.readUntil(notAuthorizedFailure)

	response := `<response xmlns="urn:ietf:params:xml:ns:xmpp-sasl">` + digestMD5Payload("alice", "secret", nonce, "00000001") + `</response>`
	cl.send(response)
	out = cl.readUntil("</success>")
	require.Contains(t, out, `<success xmlns="urn:ietf:params:xml:ns:xmpp-sasl">`)

	// the challenge is consumed on success
	cl.send(response)
	cl.readUntil(notAuthorizedFailure)

	cl.send(streamReopen)
	out = cl.readUntil(authenticatedFeatures)
	require.Contains(t, out, header(1))

	cl.send(streamClose + streamClose)
	out = cl.readUntil(streamClose + streamClose)
	require.True(t, strings.HasSuffix(out, streamClose+streamClose))
	require.Nil(t, <-errCh)

	usr, err := rep.User().FetchUser(context.Background(), "alice")
	require.Nil(t, err)
	require.Equal(t, nonce, usr.DigestMD5Nonce)
	require.Equal(t, 1, usr.DigestMD5NC)
}

func TestSession_DigestMD5Subsequent(t *testing.T) {
	rep := newTestStorage(t)
	require.Nil(t, rep.User().UpsertUser(context.Background(), &model.User{
		Username:       "alice",
		Password:       "secret",
		DigestMD5Nonce: "N",
		DigestMD5NC:    1,
	}))
	input := streamOpen + `<auth xmlns="urn:ietf:params:xml:ns:xmpp-sasl" mechanism="DIGEST-MD5">` + subsequentDigestMD5Response + `</auth>`

	sess, out, err := runTestSession(t, rep, input)
	require.Nil(t, err)
	require.Equal(t, "alice", sess.Username())
	require.True(t, strings.HasSuffix(out, `<success xmlns="urn:ietf:params:xml:ns:xmpp-sasl">`+subsequentDigestMD5RspAuth+`</success>`))

	usr, _ := rep.User().FetchUser(context.Background(), "alice")
	require.Equal(t, 2, usr.DigestMD5NC)

	// replayed count falls back to a fresh challenge
	sess, out, err = runTestSession(t, rep, input)
	require.Nil(t, err)
	require.Equal(t, "", sess.Username())
	require.Regexp(t, challengeRe, out)
	require.NotContains(t, out, "<failure")
}

func TestSession_AuthStorageFailure(t *testing.T) {
	rep := newTestStorage(t)

	memorystorage.EnableMockedError()
	defer memorystorage.DisableMockedError()

	sess, out, err := runTestSession(t, rep, streamOpen+plainAuth+streamClose)
	require.Nil(t, err)
	require.Equal(t, "", sess.Username())
	require.Equal(t, header(0)+unauthenticatedFeatures+temporaryFailure+streamClose, out)

	// digest-md5 response whose user lookup fails
	input := streamOpen +
		`<auth xmlns="urn:ietf:params:xml:ns:xmpp-sasl" mechanism="DIGEST-MD5"/>` +
		`<response xmlns="urn:ietf:params:xml:ns:xmpp-sasl">` + digestMD5Payload("alice", "secret", "N", "00000001") + `</response>` +
		streamClose
	sess, out, err = runTestSession(t, rep, input)
	require.Nil(t, err)
	require.Equal(t, "", sess.Username())
	require.True(t, strings.HasSuffix(out, temporaryFailure+streamClose))
}

func TestSession_DigestMD5Response(t *testing.T) {
	// no outstanding challenge
	input := streamOpen + `<response xmlns="urn:ietf:params:xml:ns:xmpp-sasl">` + digestMD5Payload("alice", "secret", "N", "00000001") + `</response>`
	sess, out, err := runTestSession(t, newTestStorage(t), input)
	require.Nil(t, err)
	require.Equal(t, "", sess.Username())
	require.True(t, strings.HasSuffix(out, notAuthorizedFailure))

	// duplicated directives
	input = streamOpen + `<response xmlns="urn:ietf:params:xml:ns:xmpp-sasl">dXNlcm5hbWU9ImFsaWNlIix1c2VybmFtZT0iYm9iIg==</response>`
	_, _, err = runTestSession(t, newTestStorage(t), input)
	_, ok := err.(*parser.ProtocolFault)
	require.True(t, ok)
}

func TestDigestMD5ResponseHelper(t *testing.T) {
	require.Equal(t, "3f690ca8f723b17bb1ded2141622d6ba", digestMD5Response("alice", "secret", "N", "C", "00000001", "xmpp/localhost"))
}
