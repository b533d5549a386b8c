// Package parallel provides the worker pool that pixel membership
// queries fan out on.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs independent tasks across a fixed set of goroutines.
//
// Each worker owns a queue and primarily pulls from it, stealing from
// the other queues when its own runs dry. Stealing keeps the workers
// busy when rectangle tasks resolve at very different speeds, which is
// the norm: a quadrant deep inside the annotation finishes after one
// difference while a boundary quadrant keeps subdividing.
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int

	// queues holds one buffered task queue per worker.
	queues []chan func()

	// stop signals workers to drain and exit.
	stop chan struct{}

	wg sync.WaitGroup

	// running gates task submission after Close.
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers, or
// GOMAXPROCS when workers is zero or negative. Workers begin waiting
// for tasks immediately.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Queue capacity beyond the worker count lets a burst of submitted
	// tasks land without blocking the submitter.
	capacity := workers * 4
	if capacity < 8 {
		capacity = 8
	}

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		stop:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), capacity)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range p.queues {
		go p.worker(i)
	}
	return p
}

// worker is the loop of one worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.stop:
			p.drain(own)
			return

		case task := <-own:
			if task != nil {
				task()
			}

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			// Nothing to steal either: block on the own queue until
			// work or shutdown arrives.
			select {
			case <-p.stop:
				p.drain(own)
				return
			case task := <-own:
				if task != nil {
					task()
				}
			}
		}
	}
}

// drain runs whatever is still queued so shutdown never abandons
// accepted tasks.
func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case task := <-queue:
			if task != nil {
				task()
			}
		default:
			return
		}
	}
}

// steal takes one task from some other worker's queue, or returns nil.
func (p *WorkerPool) steal(self int) func() {
	for i := range p.queues {
		if i == self {
			continue
		}
		select {
		case task := <-p.queues[i]:
			return task
		default:
		}
	}
	return nil
}

// ExecuteAll distributes the tasks round-robin across the workers and
// blocks until every one of them has run. A closed pool ignores the
// call.
func (p *WorkerPool) ExecuteAll(tasks []func()) {
	if len(tasks) == 0 || !p.running.Load() {
		return
	}

	var done sync.WaitGroup
	done.Add(len(tasks))

	for i, fn := range tasks {
		task := fn
		wrapped := func() {
			defer done.Done()
			task()
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.stop:
			done.Done()
		}
	}
	done.Wait()
}

// Close stops the pool: no new work is accepted, queued tasks finish,
// workers exit. Safe to call more than once.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.stop)
	p.wg.Wait()
}

// Workers returns the pool size.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
