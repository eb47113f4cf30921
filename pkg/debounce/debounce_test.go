package debounce_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/peakgear/storefront/pkg/debounce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delay = 30 * time.Millisecond

type recorder struct {
	mu        sync.Mutex
	requested []string
	delivered []string
}

func (r *recorder) request(_ context.Context, q string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requested = append(r.requested, q)
	return "result:" + q, nil
}

func (r *recorder) deliver(q, v string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delivered = append(r.delivered, v)
}

func (r *recorder) snapshot() (requested, delivered []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.requested...),
		append([]string(nil), r.delivered...)
}

func TestDebouncer(t *testing.T) {

	t.Run("BurstCollapsesToFinalQuery", func(t *testing.T) {
		rec := &recorder{}
		d := debounce.New(delay, rec.request, rec.deliver)

		d.Search(t.Context(), "b")
		d.Search(t.Context(), "bo")
		d.Search(t.Context(), "boards")

		time.Sleep(4 * delay)

		requested, delivered := rec.snapshot()
		require.Equal(t, []string{"boards"}, requested)
		assert.Equal(t, []string{"result:boards"}, delivered)
	})

	t.Run("SpacedQueriesAllFire", func(t *testing.T) {
		rec := &recorder{}
		d := debounce.New(delay, rec.request, rec.deliver)

		d.Search(t.Context(), "first")
		time.Sleep(3 * delay)
		d.Search(t.Context(), "second")
		time.Sleep(3 * delay)

		requested, _ := rec.snapshot()
		assert.Equal(t, []string{"first", "second"}, requested)
	})

	t.Run("StaleResponseDiscarded", func(t *testing.T) {
		block := make(chan struct{})
		var mu sync.Mutex
		var delivered []string

		d := debounce.New(delay,
			func(_ context.Context, q string) (string, error) {
				if q == "slow" {
					<-block
				}
				return q, nil
			},
			func(q, v string, err error) {
				mu.Lock()
				delivered = append(delivered, v)
				mu.Unlock()
			},
		)

		d.Search(t.Context(), "slow")
		time.Sleep(2 * delay) // let the slow request start
		d.Search(t.Context(), "fast")
		time.Sleep(2 * delay)
		close(block) // slow resolves after fast superseded it
		time.Sleep(2 * delay)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"fast"}, delivered)
	})

	t.Run("CancelDropsPending", func(t *testing.T) {
		rec := &recorder{}
		d := debounce.New(delay, rec.request, rec.deliver)

		d.Search(t.Context(), "boards")
		d.Cancel()
		time.Sleep(3 * delay)

		requested, delivered := rec.snapshot()
		assert.Empty(t, requested)
		assert.Empty(t, delivered)
	})

	t.Run("ContextCancelStopsTimer", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		rec := &recorder{}
		d := debounce.New(delay, rec.request, rec.deliver)

		d.Search(ctx, "boards")
		cancel()
		time.Sleep(3 * delay)

		requested, _ := rec.snapshot()
		assert.Empty(t, requested)
	})
}
