package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Pool manages a fixed number of workers that execute jobs concurrently.
// Results come back in submission order no matter which worker finished
// first, so a batch report always lists claims the way the input did.
type Pool struct {
	workers   int
	jobs      chan indexedJob
	mu        sync.Mutex
	slots     []Result
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

type indexedJob struct {
	idx int
	job Job
}

// NewPool creates a new worker pool with the specified number of workers
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers: workers,
		jobs:    make(chan indexedJob, workers*2), // Buffered to prevent blocking
	}
}

// Start launches the workers. The context bounds every job: cancelling it
// stops the pool the same way Shutdown does. Call Start before Submit.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker is the worker goroutine that processes jobs
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case ij, ok := <-p.jobs:
			if !ok {
				return
			}
			result := ij.job.Execute(p.ctx)
			p.mu.Lock()
			p.slots[ij.idx] = result
			p.mu.Unlock()
		}
	}
}

// Submit queues a job for execution and reserves its place in the output.
func (p *Pool) Submit(job Job) {
	p.mu.Lock()
	idx := len(p.slots)
	p.slots = append(p.slots, nil)
	p.mu.Unlock()

	select {
	case <-p.ctx.Done():
	case p.jobs <- indexedJob{idx: idx, job: job}:
	}
}

// Wait closes the queue, waits for the workers to drain it, and returns
// the results in submission order. Jobs the pool never ran (cancelled or
// shut down early) leave no result.
func (p *Pool) Wait() []Result {
	p.closeOnce.Do(func() {
		close(p.jobs)
	})
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	results := make([]Result, 0, len(p.slots))
	for _, r := range p.slots {
		if r != nil {
			results = append(results, r)
		}
	}
	return results
}

// Shutdown stops the pool immediately, interrupting running jobs.
func (p *Pool) Shutdown() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}
