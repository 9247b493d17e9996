/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package jid_test

import (
	"strings"
	"testing"

	"github.com/ortuman/rabber/xmpp/jid"
	"github.com/stretchr/testify/require"
)

func TestBadJID(t *testing.T) {
	_, err := jid.NewWithString("alice@", false)
	require.NotNil(t, err)

	_, err = jid.NewWithString("alice@localhost/", false)
	require.NotNil(t, err)

	longStr := strings.Repeat("a", 1074)
	_, err = jid.New(longStr, "localhost", "res", false)
	require.NotNil(t, err)
	_, err = jid.New("alice", longStr, "res", false)
	require.NotNil(t, err)
	_, err = jid.New("alice", "localhost", longStr, false)
	require.NotNil(t, err)

	_, err = jid.New("al:ice", "localhost", "", false)
	require.NotNil(t, err)

	_, err = jid.New("alice", "[127.0.0.1]", "", false)
	require.NotNil(t, err)
}

func TestNewJID(t *testing.T) {
	j1, err := jid.New("Alice", "localhost", "3", false)
	require.Nil(t, err)
	require.Equal(t, "alice", j1.Node())
	require.Equal(t, "localhost", j1.Domain())
	require.Equal(t, "3", j1.Resource())
	require.True(t, j1.IsFullWithUser())

	j2, err := jid.New("Alice", "localhost", "3", true)
	require.Nil(t, err)
	require.Equal(t, "Alice", j2.Node())
}

func TestNewJIDString(t *testing.T) {
	j, err := jid.NewWithString("alice@localhost/res", false)
	require.Nil(t, err)
	require.Equal(t, "alice", j.Node())
	require.Equal(t, "localhost", j.Domain())
	require.Equal(t, "res", j.Resource())
	require.Equal(t, "alice@localhost", j.ToBareJID().String())
	require.Equal(t, "alice@localhost/res", j.String())

	j, err = jid.NewWithString("localhost/res@x", false)
	require.Nil(t, err)
	require.Equal(t, "", j.Node())
	require.Equal(t, "res@x", j.Resource())
	require.False(t, j.IsFullWithUser())
}
