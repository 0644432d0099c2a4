// Package cart keeps a reactive cart snapshot per order form and runs every
// checkout mutation through a single serial queue.
package cart

import (
	"context"
	"errors"
	"sync"

	"vtex-storefront/internal/domain/model"
)

var ErrQueueClosed = errors.New("cart queue closed")

// Mutation runs on the queue goroutine, one at a time.
type Mutation func(ctx context.Context) (model.Cart, error)

type result struct {
	cart model.Cart
	err  error
}

type job struct {
	ctx    context.Context
	run    Mutation
	result chan result
}

// Queue runs mutations in the order they were enqueued.
type Queue struct {
	mu      sync.Mutex
	pending []*job
	closed  bool
	wake    chan struct{}
	done    chan struct{}
}

func NewQueue() *Queue {
	q := &Queue{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go q.loop()
	return q
}

// Enqueue waits for m to run and returns its result. A cancelled ctx stops
// the wait; a mutation that has not started yet is then skipped.
func (q *Queue) Enqueue(ctx context.Context, m Mutation) (model.Cart, error) {
	if err := ctx.Err(); err != nil {
		return model.Cart{}, err
	}

	j := &job{ctx: ctx, run: m, result: make(chan result, 1)}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return model.Cart{}, ErrQueueClosed
	}
	q.pending = append(q.pending, j)
	q.mu.Unlock()
	q.signal()

	select {
	case r := <-j.result:
		return r.cart, r.err
	case <-ctx.Done():
		return model.Cart{}, ctx.Err()
	}
}

// Close rejects new mutations, lets the queued ones finish and stops the
// worker. It is safe to call more than once.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
	<-q.done
}

func (q *Queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) loop() {
	defer close(q.done)
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			closed := q.closed
			q.mu.Unlock()
			if closed {
				return
			}
			<-q.wake
			continue
		}
		j := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.mu.Unlock()

		if err := j.ctx.Err(); err != nil {
			j.result <- result{err: err}
			continue
		}
		cart, err := j.run(j.ctx)
		j.result <- result{cart: cart, err: err}
	}
}
