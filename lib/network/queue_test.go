package network

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueue(t *testing.T) {
	q := NewQueue()

	for i := 0; i < 10; i++ {
		require.True(t, q.Push(i))
	}
	require.Equal(t, 10, q.Len())

	for i := 0; i < 10; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		require.Equal(t, i, v.(int))
	}
	require.Equal(t, 0, q.Len())
}

func TestQueuePopWaits(t *testing.T) {
	q := NewQueue()

	popped := make(chan interface{})
	go func() {
		v, _ := q.Pop()
		popped <- v
	}()

	select {
	case <-popped:
		require.Fail(t, "popped from empty queue")
	case <-time.After(30 * time.Millisecond):
	}

	q.Push("showtime")
	require.Equal(t, "showtime", <-popped)
}

func TestQueueClose(t *testing.T) {
	q := NewQueue()
	q.Push(1)

	done := make(chan bool)
	go func() {
		// drains the pushed item, then waits
		q.Pop()
		_, ok := q.Pop()
		done <- ok
	}()

	time.Sleep(30 * time.Millisecond)
	q.Close()
	require.False(t, <-done)

	require.False(t, q.Push(2))
	_, ok := q.Pop()
	require.False(t, ok)

	// closing twice is fine
	q.Close()
}
