package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPopOrder(t *testing.T) {
	q := New[int]()
	for i := 0; i < 10; i++ {
		q.Push(i)
	}
	assert.Equal(t, 10, q.Len())

	got := q.Pop(nil)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Pop(nil))
}

func TestWaitAndPopDrainsWholeBacklog(t *testing.T) {
	q := New[string]()
	q.Push("a")
	q.Push("b")
	q.Push("c")

	batch, ok := q.WaitAndPop(nil)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, batch)
	assert.Equal(t, 0, q.Len())
}

func TestWaitAndPopBlocksUntilPush(t *testing.T) {
	q := New[int]()
	result := make(chan []int, 1)

	go func() {
		batch, ok := q.WaitAndPop(nil)
		if ok {
			result <- batch
		}
		close(result)
	}()

	select {
	case <-result:
		t.Fatal("WaitAndPop returned on an empty queue")
	case <-time.After(20 * time.Millisecond):
	}

	q.Push(42)
	select {
	case batch := <-result:
		assert.Equal(t, []int{42}, batch)
	case <-time.After(time.Second):
		t.Fatal("consumer was not woken by Push")
	}
}

func TestShutdownWakesAllWaiters(t *testing.T) {
	q := New[int]()
	const waiters = 8

	var wg sync.WaitGroup
	var mu sync.Mutex
	exited := 0
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := q.WaitAndPop(nil)
			if !ok {
				mu.Lock()
				exited++
				mu.Unlock()
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	q.Shutdown()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("not every waiter observed shutdown")
	}
	assert.Equal(t, waiters, exited)
	assert.True(t, q.Closed())
}

func TestShutdownLeavesItemsForFinalPop(t *testing.T) {
	q := New[int]()
	q.Push(1)
	q.Shutdown()
	q.Push(2)

	_, ok := q.WaitAndPop(nil)
	assert.False(t, ok)
	assert.Equal(t, []int{1, 2}, q.Pop(nil))
}

func TestReopen(t *testing.T) {
	q := New[int]()
	q.Shutdown()
	q.Push(7)
	q.Reopen()
	assert.False(t, q.Closed())

	batch, ok := q.WaitAndPop(nil)
	require.True(t, ok)
	assert.Equal(t, []int{7}, batch)
}

// Each producer's items must come out in that producer's program order
func TestPerProducerOrder(t *testing.T) {
	type item struct{ producer, seq int }
	q := New[item]()
	const producers, perProducer = 4, 500

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(item{p, i})
			}
		}(p)
	}

	got := make([]item, 0, producers*perProducer)
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		var batch []item
		for {
			var ok bool
			batch, ok = q.WaitAndPop(batch[:0])
			if !ok {
				return
			}
			got = append(got, batch...)
		}
	}()

	wg.Wait()
	for q.Len() > 0 {
		time.Sleep(time.Millisecond)
	}
	q.Shutdown()
	<-consumerDone
	got = q.Pop(got)

	require.Len(t, got, producers*perProducer)
	next := make([]int, producers)
	for _, it := range got {
		assert.Equal(t, next[it.producer], it.seq)
		next[it.producer]++
	}
}
