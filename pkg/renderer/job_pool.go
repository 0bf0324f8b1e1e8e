package renderer

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// JobPool runs the jobs of a tile on a fixed set of goroutines.
//
// Every worker owns a queue and steals from the other queues when its own
// runs dry. Idle workers are woken whenever work is queued anywhere, so a
// worker stuck on an expensive job does not hold up the jobs behind it.
type JobPool struct {
	workers int
	queues  []chan func()
	wake    chan struct{} // one token per queued item, capped at workers
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewJobPool creates a started pool. If workers is 0 or negative, GOMAXPROCS is used.
func NewJobPool(workers int) *JobPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &JobPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		wake:    make(chan struct{}, workers),
		done:    make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}
	return p
}

func (p *JobPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
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
				p.drain(own)
				return
			case work := <-own:
				work()
			case <-p.wake:
			}
		}
	}
}

// notify wakes one idle worker so it can steal newly queued work
func (p *JobPool) notify() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *JobPool) drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal takes one item from another worker's queue, nil if all are empty
func (p *JobPool) steal(self int) func() {
	for i := 0; i < p.workers; i++ {
		if i == self {
			continue
		}
		select {
		case work := <-p.queues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work round-robin and waits until every item has
// run. On a closed pool the work runs on the calling goroutine.
func (p *JobPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	if !p.running.Load() {
		for _, fn := range work {
			fn()
		}
		return
	}

	var pending sync.WaitGroup
	pending.Add(len(work))
	for i, fn := range work {
		fn := fn
		wrapped := func() {
			defer pending.Done()
			fn()
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
			p.notify()
		case <-p.done:
			wrapped()
		}
	}
	pending.Wait()
}

// Close stops the pool after the queued work has run. Close is safe to call multiple times.
func (p *JobPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool
func (p *JobPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool accepts work
func (p *JobPool) IsRunning() bool {
	return p.running.Load()
}
