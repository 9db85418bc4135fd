package application

import "sync"

// keyedQueue runs work for the same key one at a time, in enqueue order.
type keyedQueue struct {
	mu    sync.Mutex
	tails map[string]chan struct{}
}

func newKeyedQueue() *keyedQueue {
	return &keyedQueue{tails: map[string]chan struct{}{}}
}

// enqueue reserves the next slot for key. The caller waits on the returned
// channel before running and must call release exactly once afterwards.
func (q *keyedQueue) enqueue(key string) (wait <-chan struct{}, release func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	prev, ok := q.tails[key]
	mine := make(chan struct{})
	q.tails[key] = mine

	release = func() {
		q.mu.Lock()
		if q.tails[key] == mine {
			delete(q.tails, key)
		}
		q.mu.Unlock()

		close(mine)
	}

	if !ok {
		ready := make(chan struct{})
		close(ready)
		return ready, release
	}

	return prev, release
}

func (q *keyedQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.tails)
}
