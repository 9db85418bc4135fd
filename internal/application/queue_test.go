package application

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedQueueRunsSameKeyInOrder(t *testing.T) {
	q := newKeyedQueue()

	var (
		mu    sync.Mutex
		order []int
		wg    sync.WaitGroup
	)

	firstWait, firstRelease := q.enqueue("u-1")
	<-firstWait

	for i := 1; i <= 3; i++ {
		wait, release := q.enqueue("u-1")
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			<-wait
			defer release()
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
		}(i)
	}

	mu.Lock()
	assert.Empty(t, order)
	mu.Unlock()

	firstRelease()
	wg.Wait()

	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Zero(t, q.len())
}

func TestKeyedQueueKeysAreIndependent(t *testing.T) {
	q := newKeyedQueue()

	_, releaseA := q.enqueue("u-1")
	waitB, releaseB := q.enqueue("u-2")

	select {
	case <-waitB:
	default:
		require.Fail(t, "second key should not wait on the first")
	}

	releaseA()
	releaseB()
	assert.Zero(t, q.len())
}
