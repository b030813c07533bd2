package scan

import "sync"

// TaskQueue hands file paths from the walker to the pool workers.
// It is unbounded: Push never blocks, so the single-threaded walker is
// never throttled by slow consumers.
//
// Closing does not discard pending tasks. Consumers drain whatever is
// queued and only then observe the end of input.
type TaskQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	tasks  []string
	closed bool
}

func NewTaskQueue() *TaskQueue {
	q := &TaskQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends a task and wakes one waiting consumer.
func (q *TaskQueue) Push(path string) {
	q.mu.Lock()
	q.tasks = append(q.tasks, path)
	q.mu.Unlock()
	q.cond.Signal()
}

// Pop blocks until a task is available or the queue is closed and empty.
// It returns false only when no task will ever arrive again.
func (q *TaskQueue) Pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	// The closed flag is tested under the same lock as emptiness,
	// otherwise a Close between the check and the wait loses the wakeup.
	for !q.closed && len(q.tasks) == 0 {
		q.cond.Wait()
	}

	if len(q.tasks) == 0 {
		return "", false
	}

	path := q.tasks[0]
	q.tasks = q.tasks[1:]
	return path, true
}

// Close marks the end of input and wakes every waiting consumer,
// so each idle worker can observe the shutdown. Idempotent.
func (q *TaskQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}
