package supervisor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReadinessBarrier(t *testing.T) {
	b := NewReadinessBarrier(3)
	require.False(t, b.IsReady())

	b.MarkReady(0)
	b.MarkReady(0)
	b.MarkReady(5)
	b.MarkReady(-1)
	require.Equal(t, 1, b.CountReady())
	require.False(t, b.IsReady())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.Equal(t, context.DeadlineExceeded, b.Wait(ctx))

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-b.Ready()
		}()
	}

	b.MarkReady(2)
	b.MarkReady(1)
	wg.Wait()

	require.True(t, b.IsReady())
	require.NoError(t, b.Wait(context.Background()))

	// no panic once closed
	b.MarkReady(1)
}

func TestReadinessBarrierEmpty(t *testing.T) {
	require.True(t, NewReadinessBarrier(0).IsReady())
}
