// Package concurrency provides the bounded fan-out primitive used
// throughout the resource handlers and identity component: a fixed
// window of in-flight operations with early-failure cancellation.
// Generalizes the sync.WaitGroup + buffered error channel pattern from
// the teacher's UpdateAccounts handler
// (components/ledger/internal/adapters/grpc/in/account.go) into a
// reusable primitive instead of re-deriving it per call site.
package concurrency

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// DefaultWindow is the fan-out window spec.md §4.3/§4.4/§5 specifies
// everywhere it says "fan out with window 100".
const DefaultWindow = 100

// FanOut runs fn once per item in items, with at most window invocations
// in flight at any time. The first error cancels ctx so remaining
// in-flight operations can unblock early; all errors observed before
// cancellation are aggregated and returned via go-multierror.
func FanOut[T any](ctx context.Context, window int, items []T, fn func(ctx context.Context, item T) error) error {
	if window <= 0 {
		window = DefaultWindow
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, window)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		combined *multierror.Error
	)

	for _, item := range items {
		select {
		case <-ctx.Done():
		case sem <- struct{}{}:
		}

		if ctx.Err() != nil {
			break
		}

		wg.Add(1)

		go func(item T) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := fn(ctx, item); err != nil {
				mu.Lock()
				combined = multierror.Append(combined, err)
				mu.Unlock()

				cancel()
			}
		}(item)
	}

	wg.Wait()

	if combined != nil {
		return combined.ErrorOrNil()
	}

	return nil
}
