package debounce

import (
	"context"
	"sync/atomic"
	"time"
)

const defaultDelay = 300 * time.Millisecond

type RequestFunc[T any] func(ctx context.Context, query string) (T, error)

type DeliverFunc[T any] func(query string, v T, err error)

// Debouncer collapses bursts of queries into a single request and
// discards stale responses. Every call to Search advances a
// generation counter; the request fires only if no newer call
// arrived within the delay, and the response is delivered only if
// it is still the newest generation when it resolves.
type Debouncer[T any] struct {
	delay   time.Duration
	gen     atomic.Uint64
	request RequestFunc[T]
	deliver DeliverFunc[T]
}

func New[T any](
	delay time.Duration, request RequestFunc[T], deliver DeliverFunc[T],
) *Debouncer[T] {
	if delay <= 0 {
		delay = defaultDelay
	}
	return &Debouncer[T]{delay: delay, request: request, deliver: deliver}
}

// Search schedules a request for query. It returns immediately;
// the result arrives through the deliver callback.
func (d *Debouncer[T]) Search(ctx context.Context, query string) {
	gen := d.gen.Add(1)

	go func() {
		timer := time.NewTimer(d.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if d.gen.Load() != gen {
			return
		}

		v, err := d.request(ctx, query)

		if d.gen.Load() != gen {
			return
		}
		d.deliver(query, v, err)
	}()
}

// Cancel invalidates any in-flight generation without issuing a
// new request.
func (d *Debouncer[T]) Cancel() {
	d.gen.Add(1)
}
