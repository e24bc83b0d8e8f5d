package async

import (
	"context"
	"runtime"
	"sync"
)

// Scheduler decides how loads are spread over goroutines.
type Scheduler interface {
	// Schedule work, blocking while the scheduler is at capacity. It fails
	// only if ctx is done before the work is accepted.
	Schedule(ctx context.Context, work func()) error
}

// FixedWorkerPool runs work on a fixed number of long lived goroutines,
// trading idle memory for scheduling latency.
type FixedWorkerPool struct {
	// Workers is the number of goroutines. Defaults to NumCPU.
	Workers int
	// queue is unbuffered: Schedule blocks while every worker is busy.
	queue chan func()
	once  sync.Once
}

func (p *FixedWorkerPool) start() {
	p.queue = make(chan func())
	if p.Workers <= 0 {
		p.Workers = runtime.NumCPU()
	}
	for ii := 0; ii < p.Workers; ii++ {
		go func() {
			for w := range p.queue {
				w()
			}
		}()
	}
}

// Schedule work on the next free worker.
func (p *FixedWorkerPool) Schedule(ctx context.Context, work func()) error {
	if work == nil {
		return nil
	}
	p.once.Do(p.start)
	select {
	case p.queue <- work:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Inline runs work on the scheduling goroutine. It suits tests and loads
// that are known to be quick.
type Inline struct{}

func (Inline) Schedule(ctx context.Context, work func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if work != nil {
		work()
	}
	return nil
}
