package fetch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Outcome is the settled result of one fan-out call.
type Outcome[I, T any] struct {
	Input I
	Value T
	Err   error
}

// SettleAll calls fn for every input concurrently, at most limit at a time
// (limit <= 0 means unbounded), and waits for all of them. A failure never
// cancels the others. Outcomes are returned in input order, independent of
// completion order.
func SettleAll[I, T any](ctx context.Context, inputs []I, limit int, fn func(context.Context, I) (T, error)) []Outcome[I, T] {
	outcomes := make([]Outcome[I, T], len(inputs))
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, input := range inputs {
		g.Go(func() error {
			outcomes[i].Input = input
			if err := ctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}
			outcomes[i].Value, outcomes[i].Err = fn(ctx, input)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

// Partition splits settled outcomes into successes and failures, keeping order.
func Partition[I, T any](outcomes []Outcome[I, T]) (ok, failed []Outcome[I, T]) {
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
			continue
		}
		ok = append(ok, o)
	}
	return ok, failed
}
