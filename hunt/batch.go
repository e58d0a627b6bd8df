package hunt

import (
	"context"
	"time"

	"github.com/hhaeri/HydroAgent"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultConcurrency is the default number of queries in flight.
const DefaultConcurrency = 2

// Batch runs many queries on independent pages. One query's failure is
// recorded on its Hunt and never stops the others.
type Batch struct {
	hunter      hydroagent.Hunter
	limiter     *rate.Limiter
	concurrency int
	now         func() time.Time
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithConcurrency sets the number of queries in flight. Values below one are
// ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithRateLimit spaces query starts to at most rps per second. Zero disables
// limiting.
func WithRateLimit(rps float64) BatchOption {
	return func(b *Batch) {
		if rps > 0 {
			b.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			b.limiter = nil
		}
	}
}

// WithClock sets the time source used for HuntedAt.
func WithClock(now func() time.Time) BatchOption {
	return func(b *Batch) {
		b.now = now
	}
}

// NewBatch returns a Batch running queries through hunter.
func NewBatch(hunter hydroagent.Hunter, opts ...BatchOption) *Batch {
	b := &Batch{
		hunter:      hunter,
		concurrency: DefaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run queries every identifier and returns one Hunt per identifier in input
// order. It returns an error only when ctx is canceled; the hunts gathered so
// far are returned alongside it.
func (b *Batch) Run(ctx context.Context, identifiers []string) ([]*hydroagent.Hunt, error) {
	hunts := make([]*hydroagent.Hunt, len(identifiers))

	var g errgroup.Group
	g.SetLimit(b.concurrency)

	for i, identifier := range identifiers {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			hunts[i] = b.hunt(ctx, identifier)
			return nil
		})
	}

	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return compact(hunts), err
	}
	return hunts, nil
}

func (b *Batch) hunt(ctx context.Context, identifier string) *hydroagent.Hunt {
	hunt := &hydroagent.Hunt{Identifier: identifier}

	var err error
	if b.limiter != nil {
		err = b.limiter.Wait(ctx)
	}
	if err == nil {
		hunt.Result, err = b.hunter.GetBasinDocuments(ctx, identifier)
	}
	if hunt.Result == nil {
		hunt.Result = hydroagent.NewHuntResult(nil, nil)
	}
	if err != nil {
		hunt.Error = err.Error()
	}
	hunt.HuntedAt = b.now().UTC()
	return hunt
}

func compact(hunts []*hydroagent.Hunt) []*hydroagent.Hunt {
	out := hunts[:0:0]
	for _, h := range hunts {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
