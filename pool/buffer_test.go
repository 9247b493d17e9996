/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package pool

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferPool_GetAndPut(t *testing.T) {
	p := NewBufferPool()

	buf := p.Get()
	require.Equal(t, "*bytes.Buffer", reflect.ValueOf(buf).Type().String())

	buf.WriteString("<presence/>")
	p.Put(buf)
	require.Equal(t, 0, buf.Len())

	buf = p.Get()
	require.Equal(t, 0, buf.Len())
}

func TestBufferPool_LargeBuffer(t *testing.T) {
	p := NewBufferPool()

	buf := p.Get()
	buf.Grow(maxRecycledCap * 2)
	p.Put(buf)
	require.Equal(t, 0, buf.Len())
}
