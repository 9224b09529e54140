package supervisor

import (
	"context"
	"sync"
)

// ReadinessBarrier is closed once every node is marked as ready.
type ReadinessBarrier struct {
	sync.Mutex

	total int
	ready map[int]bool
	ch    chan struct{}
}

func NewReadinessBarrier(total int) *ReadinessBarrier {
	b := &ReadinessBarrier{
		total: total,
		ready: map[int]bool{},
		ch:    make(chan struct{}),
	}
	if total < 1 {
		close(b.ch)
	}

	return b
}

// MarkReady can be called more than once for the same index; unknown
// indexes are ignored.
func (b *ReadinessBarrier) MarkReady(index int) {
	b.Lock()
	defer b.Unlock()

	if index < 0 || index >= b.total || b.ready[index] {
		return
	}

	b.ready[index] = true
	if len(b.ready) == b.total {
		close(b.ch)
	}
}

func (b *ReadinessBarrier) Ready() <-chan struct{} {
	return b.ch
}

func (b *ReadinessBarrier) IsReady() bool {
	select {
	case <-b.ch:
		return true
	default:
		return false
	}
}

func (b *ReadinessBarrier) CountReady() int {
	b.Lock()
	defer b.Unlock()

	return len(b.ready)
}

func (b *ReadinessBarrier) Wait(ctx context.Context) error {
	select {
	case <-b.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
