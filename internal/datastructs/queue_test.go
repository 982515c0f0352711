package queue_test

import (
	"sync"
	"testing"
	"time"

	queue "github.com/XJIeI5/evaluation/internal/datastructs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFIFO(t *testing.T) {
	q := queue.NewCQueue[int]()
	for i := 0; i < 5; i++ {
		assert.True(t, q.Enqueue(i))
	}
	assert.Equal(t, 5, q.Len())

	for i := 0; i < 5; i++ {
		v, ok := q.Dequeue()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestDequeueBlocks(t *testing.T) {
	q := queue.NewCQueue[string]()
	got := make(chan string)
	go func() {
		v, _ := q.Dequeue()
		got <- v
	}()

	select {
	case <-got:
		t.Fatal("dequeue returned on empty queue")
	case <-time.After(20 * time.Millisecond):
	}

	q.Enqueue("1 2 +")
	select {
	case v := <-got:
		assert.Equal(t, "1 2 +", v)
	case <-time.After(time.Second):
		t.Fatal("dequeue was not woken")
	}
}

func TestClose(t *testing.T) {
	q := queue.NewCQueue[int]()
	q.Enqueue(1)

	var wg sync.WaitGroup
	results := make(chan bool, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := q.Dequeue()
			results <- ok
		}()
	}
	time.Sleep(10 * time.Millisecond)
	q.Close()
	wg.Wait()
	close(results)

	var delivered int
	for ok := range results {
		if ok {
			delivered++
		}
	}
	assert.Equal(t, 1, delivered)

	assert.True(t, q.Closed())
	assert.False(t, q.Enqueue(2))
	_, ok := q.Dequeue()
	assert.False(t, ok)
}
