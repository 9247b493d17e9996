/*
 * Copyright (c) 2019 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package parser

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueue_Ordering(t *testing.T) {
	q := NewQueue()

	const count = 1000
	go func() {
		for i := 0; i < count; i++ {
			q.Push(Event{Kind: TextEvent, Content: strconv.Itoa(i)})
		}
	}()
	for i := 0; i < count; i++ {
		e, err := q.Pop(context.Background())
		require.Nil(t, err)
		require.Equal(t, strconv.Itoa(i), e.Content)
	}
	require.Equal(t, 0, q.Len())
}

func TestQueue_BlockingPop(t *testing.T) {
	q := NewQueue()

	popped := make(chan Event, 1)
	go func() {
		e, _ := q.Pop(context.Background())
		popped <- e
	}()
	select {
	case <-popped:
		require.Fail(t, "pop returned on empty queue")
	case <-time.After(time.Millisecond * 50):
	}
	q.Push(Event{Kind: TagEndEvent, Name: "iq"})

	select {
	case e := <-popped:
		require.Equal(t, "iq", e.Name)
	case <-time.After(time.Second):
		require.Fail(t, "pop timeout")
	}
}

func TestQueue_CanceledPop(t *testing.T) {
	q := NewQueue()

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*20)
	defer cancel()

	_, err := q.Pop(ctx)
	require.Equal(t, context.DeadlineExceeded, err)
}
