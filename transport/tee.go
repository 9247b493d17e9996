/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package transport

import (
	"io"

	"github.com/ortuman/rabber/log"
)

type teeReader struct {
	r    io.Reader
	addr string
}

func (t *teeReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if n > 0 {
		log.Debugf("RECV(%s): %s", t.addr, p[:n])
	}
	return n, err
}

type teeWriter struct {
	w    io.Writer
	addr string
}

func (t *teeWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if n > 0 {
		log.Debugf("SEND(%s): %s", t.addr, p[:n])
	}
	return n, err
}
