// Package async loads values off the layout goroutine and hands them back to
// layout code frame by frame.
//
// The loader design follows Egon's https://github.com/egonelbre/expgio.
package async

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"gioui.org/layout"
	"go.uber.org/zap"
)

// ErrPanic wraps the value of a load function that panicked.
var ErrPanic = errors.New("async: load panicked")

// Tag identifies a resource. It must be comparable.
type Tag interface{}

// LoadFunc performs the blocking load of a value.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// State of a resource.
type State byte

const (
	Queued State = iota
	Loading
	Loaded
	// Failed resources hold the error returned by their load.
	Failed
)

func (s State) String() string {
	switch s {
	case Queued:
		return "queued"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", byte(s))
}

// Resource is a snapshot of an asynchronously loaded value.
type Resource[T any] struct {
	State State
	// Value is the zero value until the state is Loaded.
	Value T
	// Err is set when the state is Failed.
	Err error
}

// DefaultMaxLoaded is used when MaxLoaded is zero.
const DefaultMaxLoaded = 10

// Loader loads resources in the background.
//
// Call Schedule every frame a resource is needed, and wrap the layout using
// it in Frame: resources not scheduled during the last finished frame are
// dropped, unstarted ones are never loaded. Select on Updated in the event
// loop to redraw when loads progress.
//
// The zero value is ready to use; Close stops it.
type Loader[T any] struct {
	// Scheduler runs the loads. Defaults to a FixedWorkerPool of MaxLoaded
	// workers.
	Scheduler Scheduler
	// MaxLoaded is the number of resources kept before old ones are
	// dropped.
	MaxLoaded int
	// Logger reports failed loads. Defaults to a no-op logger.
	Logger *zap.Logger

	// active is the frame being laid out, finished the last one done.
	active, finished atomic.Int64

	updated chan struct{}
	cancel  context.CancelFunc
	init    sync.Once

	mu sync.Mutex
	// refresh wakes the run loop when a frame ends, a resource is
	// scheduled or the loader closes.
	refresh sync.Cond
	lookup  map[Tag]*resource[T]
	queue   []*resource[T]
}

// LoaderStats counts the resources of a loader.
type LoaderStats struct {
	Lookup int
	Queued int
}

func (l *Loader[T]) initialize() {
	if l.MaxLoaded <= 0 {
		l.MaxLoaded = DefaultMaxLoaded
	}
	if l.Logger == nil {
		l.Logger = zap.NewNop()
	}
	if l.Scheduler == nil {
		l.Scheduler = &FixedWorkerPool{Workers: l.MaxLoaded}
	}
	l.updated = make(chan struct{}, 1)
	l.lookup = make(map[Tag]*resource[T])
	l.refresh.L = &l.mu
	var ctx context.Context
	ctx, l.cancel = context.WithCancel(context.Background())
	go l.run(ctx)
}

// Updated reports that some resource changed state.
//
//	case <-loader.Updated():
//		w.Invalidate()
func (l *Loader[T]) Updated() <-chan struct{} {
	l.init.Do(l.initialize)
	return l.updated
}

// Frame lays out w as one frame of resource use.
func (l *Loader[T]) Frame(gtx layout.Context, w layout.Widget) layout.Dimensions {
	l.init.Do(l.initialize)
	l.active.Add(1)
	dims := w(gtx)
	l.finished.Store(l.active.Load())
	l.refresh.Signal()
	return dims
}

// Schedule returns the resource of tag, queueing load the first time the
// tag is seen.
func (l *Loader[T]) Schedule(tag Tag, load LoadFunc[T]) Resource[T] {
	l.init.Do(l.initialize)
	l.mu.Lock()
	r, ok := l.lookup[tag]
	if !ok {
		r = &resource[T]{tag: tag, load: load}
		l.lookup[tag] = r
		l.queue = append(l.queue, r)
		l.refresh.Signal()
	}
	l.mu.Unlock()
	r.frame.Store(l.active.Load())
	return r.get()
}

// Stats reports the number of known and queued resources.
func (l *Loader[T]) Stats() LoaderStats {
	l.init.Do(l.initialize)
	l.mu.Lock()
	defer l.mu.Unlock()
	return LoaderStats{Lookup: len(l.lookup), Queued: len(l.queue)}
}

// Close cancels running loads and stops the loader.
func (l *Loader[T]) Close() {
	l.init.Do(l.initialize)
	l.cancel()
	l.mu.Lock()
	l.refresh.Signal()
	l.mu.Unlock()
}

func (l *Loader[T]) update() {
	select {
	case l.updated <- struct{}{}:
	default:
	}
}

// run hands queued resources to the scheduler until ctx is done.
func (l *Loader[T]) run(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for {
		if ctx.Err() != nil {
			return
		}
		l.purge()
		for r := l.next(); r != nil; r = l.next() {
			if l.isOld(r) {
				delete(l.lookup, r.tag)
				continue
			}
			l.mu.Unlock()
			l.update()
			r := r
			err := l.Scheduler.Schedule(ctx, func() {
				r.run(ctx, l.Logger)
				l.update()
			})
			l.mu.Lock()
			if err != nil {
				return
			}
		}
		l.refresh.Wait()
	}
}

// isOld reports whether r was last scheduled before the last finished
// frame.
func (l *Loader[T]) isOld(r *resource[T]) bool {
	return r.frame.Load() < l.finished.Load()
}

// next pops the queue. The lock must be held.
func (l *Loader[T]) next() *resource[T] {
	if len(l.queue) == 0 {
		return nil
	}
	r := l.queue[0]
	l.queue = l.queue[1:]
	return r
}

// purge drops old resources while more than MaxLoaded are known. The lock
// must be held.
func (l *Loader[T]) purge() {
	for tag, r := range l.lookup {
		if len(l.lookup) < l.MaxLoaded {
			return
		}
		if l.isOld(r) {
			delete(l.lookup, tag)
		}
	}
}

// resource is the shared state behind a Resource. tag and load never
// change, frame is atomic, the rest is guarded by mu.
type resource[T any] struct {
	mu    sync.Mutex
	frame atomic.Int64
	state State
	value T
	err   error
	tag   Tag
	load  LoadFunc[T]
}

func (r *resource[T]) get() Resource[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Resource[T]{State: r.state, Value: r.value, Err: r.err}
}

func (r *resource[T]) set(s State, v T, err error) {
	r.mu.Lock()
	r.state, r.value, r.err = s, v, err
	r.mu.Unlock()
}

func (r *resource[T]) run(ctx context.Context, logger *zap.Logger) {
	var zero T
	r.set(Loading, zero, nil)
	v, err := r.call(ctx)
	if err != nil {
		logger.Warn("async load failed", zap.Any("tag", r.tag), zap.Error(err))
		r.set(Failed, zero, err)
		return
	}
	r.set(Loaded, v, nil)
}

func (r *resource[T]) call(ctx context.Context) (v T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, p)
		}
	}()
	return r.load(ctx)
}
