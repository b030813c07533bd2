package scan

import (
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/maps"
)

func TestQueueDeliversEachTaskExactlyOnce(t *testing.T) {
	// Test plan:
	// 1. Start 8 consumers popping concurrently
	// 2. Push 1000 tasks, then close the queue
	// 3. Expect every task observed exactly once across all consumers

	q := NewTaskQueue()

	const consumers = 8
	const tasks = 1000

	var mu sync.Mutex
	seen := map[string]int{}

	wg := sync.WaitGroup{}
	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				path, ok := q.Pop()
				if !ok {
					return
				}
				mu.Lock()
				seen[path]++
				mu.Unlock()
			}
		}()
	}

	expected := make([]string, 0, tasks)
	for i := 0; i < tasks; i++ {
		path := fmt.Sprintf("file-%04d", i)
		expected = append(expected, path)
		q.Push(path)
	}
	q.Close()
	wg.Wait()

	actual := maps.Keys(seen)
	slices.Sort(actual)
	slices.Sort(expected)
	require.EqualValues(t, expected, actual)
	for path, n := range seen {
		require.Equalf(t, 1, n, "task %s popped %d times", path, n)
	}
}

func TestPopBlocksOnEmptyQueueUntilPush(t *testing.T) {
	// Test plan:
	// 1. Pop on an empty, unclosed queue from another goroutine
	// 2. Confirm it stays blocked
	// 3. Push a task and expect the pop to return it promptly

	q := NewTaskQueue()

	got := make(chan string, 1)
	go func() {
		path, ok := q.Pop()
		if ok {
			got <- path
		}
	}()

	select {
	case path := <-got:
		t.Fatalf("pop returned %q from an empty queue", path)
	case <-time.After(50 * time.Millisecond):
		// still blocked, as it should be
	}

	q.Push("a")

	select {
	case path := <-got:
		require.Equal(t, "a", path)
	case <-time.After(time.Second):
		t.Fatal("pop did not wake up after push")
	}
}

func TestCloseWakesAllBlockedConsumers(t *testing.T) {
	// Test plan:
	// 1. Block 5 consumers on an empty queue
	// 2. Close it once
	// 3. Expect every consumer to observe the end of input

	q := NewTaskQueue()

	const consumers = 5
	done := make(chan bool, consumers)
	for i := 0; i < consumers; i++ {
		go func() {
			_, ok := q.Pop()
			done <- ok
		}()
	}

	// let the consumers reach the wait
	time.Sleep(50 * time.Millisecond)
	q.Close()

	for i := 0; i < consumers; i++ {
		select {
		case ok := <-done:
			require.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("a blocked consumer never observed the close")
		}
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	q := NewTaskQueue()
	q.Close()
	q.Close() // must be a no-op

	_, ok := q.Pop()
	require.False(t, ok)
}

func TestClosedQueueDrainsRemainingTasks(t *testing.T) {
	// Closing must not discard pending tasks: consumers drain the queue
	// to completion and only then see the end of input.

	q := NewTaskQueue()
	q.Push("a")
	q.Push("b")
	q.Push("c")
	q.Close()

	for _, expected := range []string{"a", "b", "c"} {
		path, ok := q.Pop()
		require.True(t, ok)
		require.Equal(t, expected, path)
	}

	_, ok := q.Pop()
	require.False(t, ok)
}
