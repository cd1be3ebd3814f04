package pool

import (
	"sync"

	"go.uber.org/zap"

	kvserrors "github.com/iamNilotpal/kvsd/pkg/errors"
)

// SharedQueue is a fixed-size pool of workers draining one unbounded queue.
// It is the Go shape of the original's SharedQueueThreadPool, backed by
// crossbeam::channel::unbounded() there: a Go channel alone can't grow
// without bound, so the queue itself is a plain slice guarded by a mutex and
// a sync.Cond, and Spawn only ever blocks on that mutex, never on worker
// availability. The panic-resilience story is the same as the original's:
// there the receiver half of the channel lived inside a wrapper whose Drop
// implementation, invoked while the thread was unwinding from a panic,
// spawned a replacement worker on the same channel. Go has no destructors,
// but a deferred recover at the same place in the worker loop gives the
// identical guarantee - the live worker count never drops because of a
// panicking task.
type SharedQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Job
	closed bool
	logger *zap.SugaredLogger
}

// NewSharedQueue spawns workers goroutines, each draining the shared queue.
// workers must be at least 1.
func NewSharedQueue(workers uint, logger *zap.SugaredLogger) (*SharedQueue, error) {
	if workers == 0 {
		return nil, kvserrors.NewEngineError(nil, kvserrors.ErrorCodeInvalidInput, "worker count must be at least 1").
			WithComponent("pool")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	p := &SharedQueue{logger: logger}
	p.cond = sync.NewCond(&p.mu)
	for range workers {
		go p.runWorker()
	}
	return p, nil
}

// Spawn appends job to the unbounded queue and wakes one waiting worker. It
// never blocks beyond the queue push itself.
func (p *SharedQueue) Spawn(job Job) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.queue = append(p.queue, job)
	p.cond.Signal()
}

// Close stops accepting new jobs. Workers drain whatever is still queued,
// then exit quietly once the queue is empty and closed is set - the "pool is
// dropped, all senders gone" case from the design notes.
func (p *SharedQueue) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
}

// runWorker executes queued jobs until the queue is closed and drained. If a
// job panics, the deferred recover logs it and spawns a replacement worker
// before this goroutine returns, so the pool's steady-state worker count
// never drops because of a panicking task.
func (p *SharedQueue) runWorker() {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorw("pool worker panicked, spawning replacement", "panic", r)
			go p.runWorker()
		}
	}()

	for {
		job, ok := p.next()
		if !ok {
			return
		}
		job()
	}
}

// next blocks until a job is available or the queue is closed and drained.
func (p *SharedQueue) next() (Job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) == 0 && !p.closed {
		p.cond.Wait()
	}
	if len(p.queue) == 0 {
		return nil, false
	}

	job := p.queue[0]
	p.queue = p.queue[1:]
	return job, true
}
