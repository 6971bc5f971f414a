package adapter

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/errgroup"
)

// Call is one request of a [Transport.Batch].
type Call struct {
	Method  string
	Path    string
	Body    any
	Options []RequestOption
}

// Batch runs calls concurrently. The first failure cancels the remaining
// calls and is returned; on success the data members come back in the order
// of calls.
func (t *Transport) Batch(ctx context.Context, calls ...Call) ([]json.RawMessage, error) {
	results := make([]json.RawMessage, len(calls))

	g, gctx := errgroup.WithContext(ctx)
	for i, call := range calls {
		g.Go(func() error {
			data, err := t.Request(gctx, call.Method, call.Path, call.Body, call.Options...)
			if err != nil {
				return err
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
