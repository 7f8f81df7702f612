// Package parallel runs batches of independent jobs on a fixed set of
// goroutines.
//
// Each worker owns a queue and steals from its neighbours when that queue
// runs dry, so a few slow jobs do not leave the other workers idle.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned by ExecuteAll after Close.
var ErrClosed = errors.New("parallel: pool closed")

// WorkerPool is a pool of goroutines for batch jobs such as brush decoding.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int

	// workQueues holds per-worker work queues.
	workQueues []chan func()

	done chan struct{}
	wg   sync.WaitGroup

	running atomic.Bool
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.workQueues[id]
	for {
		select {
		case <-p.done:
			p.drainQueue(own)
			return
		case work := <-own:
			work()
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drainQueue(own)
				return
			case work := <-own:
				work()
			}
		}
	}
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal takes one item from another worker's queue, or returns nil.
func (p *WorkerPool) steal(self int) func() {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work across workers and waits for every submitted
// item to finish.
//
// Items that have not started when ctx is canceled are skipped, and
// ExecuteAll returns ctx.Err(). Items already running are not interrupted.
// It returns nil only when every item ran. A closed pool runs nothing and
// returns ErrClosed.
func (p *WorkerPool) ExecuteAll(ctx context.Context, work []func()) error {
	if !p.running.Load() {
		return ErrClosed
	}
	if len(work) == 0 {
		return ctx.Err()
	}

	var (
		pending sync.WaitGroup
		skipped atomic.Bool
	)

	for i, fn := range work {
		if ctx.Err() != nil {
			skipped.Store(true)
			break
		}
		pending.Add(1)
		wrapped := func() {
			defer pending.Done()
			if ctx.Err() != nil {
				skipped.Store(true)
				return
			}
			fn()
		}

		select {
		case p.workQueues[i%p.workers] <- wrapped:
		case <-ctx.Done():
			pending.Done()
			skipped.Store(true)
		case <-p.done:
			pending.Done()
			skipped.Store(true)
		}
	}

	pending.Wait()
	if skipped.Load() {
		if err := ctx.Err(); err != nil {
			return err
		}
		return ErrClosed
	}
	return nil
}

// Close stops accepting new work, waits for queued work to complete and
// stops all workers. Close is safe to call multiple times, but must not
// race with a running ExecuteAll.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
