package render

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Queue serializes page materialization: at most one task runs at a time and
// waiting tasks are served in call order. The semaphore's FIFO waiter queue
// provides the ordering guarantee without a dedicated worker goroutine.
type Queue struct {
	sem *semaphore.Weighted
}

// NewQueue creates a queue with a single execution slot.
func NewQueue() *Queue {
	return &Queue{sem: semaphore.NewWeighted(1)}
}

// Do runs task once the slot is free, blocking until the task completes or
// ctx is cancelled while waiting. A task that has started is not cancelled.
func (q *Queue) Do(ctx context.Context, task func() error) error {
	if err := q.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer q.sem.Release(1)
	return task()
}
