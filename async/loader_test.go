package async

import (
	"context"
	"errors"
	"testing"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wait = 5 * time.Second

// settle polls tag until its load is over.
func settle[T any](t *testing.T, l *Loader[T], tag Tag, load LoadFunc[T]) Resource[T] {
	t.Helper()
	var r Resource[T]
	require.Eventually(t, func() bool {
		r = l.Schedule(tag, load)
		return r.State == Loaded || r.State == Failed
	}, wait, time.Millisecond)
	return r
}

func TestLoaderLoads(t *testing.T) {
	for _, s := range []Scheduler{Inline{}, &FixedWorkerPool{Workers: 2}} {
		l := &Loader[int]{Scheduler: s}
		calls := 0
		load := func(context.Context) (int, error) {
			calls++
			return 42, nil
		}
		r := settle(t, l, "answer", load)
		assert.Equal(t, Loaded, r.State)
		assert.Equal(t, 42, r.Value)
		assert.NoError(t, r.Err)

		r = l.Schedule("answer", load)
		assert.Equal(t, 42, r.Value)
		assert.Equal(t, 1, calls, "a tag loads once")
		l.Close()
	}
}

func TestLoaderFailures(t *testing.T) {
	l := &Loader[string]{Scheduler: Inline{}}
	defer l.Close()

	boom := errors.New("boom")
	r := settle(t, l, 1, func(context.Context) (string, error) {
		return "", boom
	})
	assert.Equal(t, Failed, r.State)
	assert.ErrorIs(t, r.Err, boom)

	r = settle(t, l, 2, func(context.Context) (string, error) {
		panic("kaboom")
	})
	assert.Equal(t, Failed, r.State)
	assert.ErrorIs(t, r.Err, ErrPanic)
	assert.Contains(t, r.Err.Error(), "kaboom")
}

func TestLoaderUpdated(t *testing.T) {
	l := &Loader[int]{Scheduler: Inline{}}
	defer l.Close()
	l.Schedule("x", func(context.Context) (int, error) { return 1, nil })
	select {
	case <-l.Updated():
	case <-time.After(wait):
		t.Fatal("no update reported")
	}
}

func TestLoaderPurgesOldResources(t *testing.T) {
	l := &Loader[int]{Scheduler: Inline{}, MaxLoaded: 1}
	defer l.Close()
	settle(t, l, "a", func(context.Context) (int, error) { return 1, nil })

	var ops op.Ops
	gtx := layout.Context{Ops: &ops}
	l.Frame(gtx, func(gtx layout.Context) layout.Dimensions {
		l.Schedule("b", func(context.Context) (int, error) { return 2, nil })
		return layout.Dimensions{}
	})
	settle(t, l, "b", func(context.Context) (int, error) { return 2, nil })
	assert.Eventually(t, func() bool {
		return l.Stats().Lookup == 1
	}, wait, time.Millisecond)
}

func TestFixedWorkerPoolCancelled(t *testing.T) {
	p := &FixedWorkerPool{Workers: 1}
	block := make(chan struct{})
	defer close(block)
	require.NoError(t, p.Schedule(context.Background(), func() { <-block }))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := p.Schedule(ctx, func() {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "State(9)", State(9).String())
}
