// Package workerpool provides a bounded pool of fetch workers. Paginated
// endpoints are pulled page-by-page; the pool caps how many page fetches
// run against the backend at once.
package workerpool

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/odai307/gagoforge-client/internal/logger"
)

// Task is one unit of fetch work. A non-nil error is logged by the
// worker; tasks that need their error propagated must capture it.
type Task func(ctx context.Context) error

type Pool struct {
	workers    []*Worker
	numWorkers int
	tasks      chan Task
	pending    sync.WaitGroup
}

func NewPool(numWorkers, queueSize int) *Pool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if queueSize < numWorkers {
		queueSize = numWorkers
	}
	return &Pool{
		workers:    make([]*Worker, numWorkers),
		numWorkers: numWorkers,
		tasks:      make(chan Task, queueSize),
	}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.numWorkers; i++ {
		worker := NewWorker(
			fmt.Sprintf("Worker-%d", i+1),
			p.tasks,
			p.pending.Done,
		)
		worker.Start(ctx)
		p.workers[i] = worker
	}
	logger.Log.Debug("Worker pool started",
		zap.Int("num_workers", p.numWorkers))
}

// Submit queues a task. The queue is sized by the caller at construction;
// submitting more than queueSize unfinished tasks blocks.
func (p *Pool) Submit(task Task) {
	p.pending.Add(1)
	p.tasks <- task
}

// Wait blocks until every submitted task has finished.
func (p *Pool) Wait() {
	p.pending.Wait()
}

// Stop waits for queued tasks to drain and terminates all workers.
func (p *Pool) Stop() {
	p.pending.Wait()
	for _, worker := range p.workers {
		worker.Stop()
	}
}
