package network

import "sync"

// Queue is an unbounded FIFO queue. `Push` never blocks; `Pop` blocks until
// an item is available or the queue is closed.
type Queue struct {
	sync.Mutex

	items  []interface{}
	notify chan struct{}
	closed bool
}

func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Push returns false if the queue is already closed.
func (q *Queue) Push(v interface{}) bool {
	q.Lock()
	defer q.Unlock()

	if q.closed {
		return false
	}

	q.items = append(q.items, v)
	select {
	case q.notify <- struct{}{}:
	default:
	}

	return true
}

// Pop returns false once the queue is closed, even if items are left.
func (q *Queue) Pop() (interface{}, bool) {
	for {
		q.Lock()
		if q.closed {
			q.Unlock()
			return nil, false
		}
		if len(q.items) > 0 {
			v := q.items[0]
			q.items[0] = nil
			q.items = q.items[1:]
			q.Unlock()
			return v, true
		}
		q.Unlock()

		<-q.notify
	}
}

func (q *Queue) Len() int {
	q.Lock()
	defer q.Unlock()

	return len(q.items)
}

func (q *Queue) Close() {
	q.Lock()
	defer q.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.items = nil
	close(q.notify)
}
