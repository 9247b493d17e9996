/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package transport

import (
	"bufio"
	"io"
	"net"
	"time"

	"github.com/ortuman/rabber/xmpp"
	"github.com/pkg/errors"
)

const socketBuffSize = 4096

type socketTransport struct {
	conn      net.Conn
	br        *bufio.Reader
	bw        *bufio.Writer
	keepAlive time.Duration
}

// NewSocketTransport creates a socket class stream transport.
func NewSocketTransport(conn net.Conn, cfg *Config) Transport {
	addr := conn.RemoteAddr().String()

	var r io.Reader = conn
	var w io.Writer = conn
	if cfg.DebugTee {
		r = &teeReader{r: r, addr: addr}
		w = &teeWriter{w: w, addr: addr}
	}
	r = newRateLimitedReader(r, cfg.RateLimit)

	return &socketTransport{
		conn:      conn,
		br:        bufio.NewReaderSize(r, socketBuffSize),
		bw:        bufio.NewWriterSize(w, socketBuffSize),
		keepAlive: cfg.KeepAlive,
	}
}

func (s *socketTransport) Read(p []byte) (n int, err error) {
	if s.keepAlive > 0 {
		if err := s.conn.SetReadDeadline(time.Now().Add(s.keepAlive)); err != nil {
			return 0, errors.Wrap(err, "transport: set read deadline")
		}
	}
	return s.br.Read(p)
}

func (s *socketTransport) Write(p []byte) (n int, err error) {
	n, err = s.bw.Write(p)
	if err != nil {
		return n, err
	}
	return n, s.bw.Flush()
}

func (s *socketTransport) WriteString(str string) error {
	if _, err := s.bw.WriteString(str); err != nil {
		return err
	}
	return s.bw.Flush()
}

func (s *socketTransport) WriteElement(elem xmpp.XElement, includeClosing bool) error {
	elem.ToXML(s.bw, includeClosing)
	return s.bw.Flush()
}

func (s *socketTransport) RemoteAddress() string {
	return s.conn.RemoteAddr().String()
}

func (s *socketTransport) Close() error {
	return s.conn.Close()
}
