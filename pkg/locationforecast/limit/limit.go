// Package limit provides composable decorators around a
// locationforecast.Fetcher. The origin's terms of use cap clients at 20
// requests per second; the client itself enforces nothing, so callers
// wrap it:
//
//	fetcher := limit.ConcurrencyLimited(
//		limit.RateLimited(client, rate.Limit(20), 1),
//		4,
//	)
//
// Every decorator implements locationforecast.Fetcher, so order and
// selection are up to the caller.
package limit

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"nordcast/pkg/locationforecast"
)

// ErrCircuitOpen is returned while the circuit breaker holds requests off
// a failing origin.
var ErrCircuitOpen = errors.New("limit: circuit breaker open")

type rateLimited struct {
	next    locationforecast.Fetcher
	limiter *rate.Limiter
}

// RateLimited wraps next so that fetches pass through a token bucket of r
// requests per second with the given burst. Waiting respects context
// cancellation.
func RateLimited(next locationforecast.Fetcher, r rate.Limit, burst int) locationforecast.Fetcher {
	return &rateLimited{
		next:    next,
		limiter: rate.NewLimiter(r, burst),
	}
}

func (l *rateLimited) Fetch(ctx context.Context, params locationforecast.Params) (*locationforecast.Response, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, &locationforecast.TransportError{Err: err}
	}
	return l.next.Fetch(ctx, params)
}

type concurrencyLimited struct {
	next locationforecast.Fetcher
	sem  *semaphore.Weighted
}

// ConcurrencyLimited wraps next so that at most n fetches are in flight at
// the same time. Further calls block until a slot frees up or their
// context is cancelled.
func ConcurrencyLimited(next locationforecast.Fetcher, n int64) locationforecast.Fetcher {
	return &concurrencyLimited{
		next: next,
		sem:  semaphore.NewWeighted(n),
	}
}

func (l *concurrencyLimited) Fetch(ctx context.Context, params locationforecast.Params) (*locationforecast.Response, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, &locationforecast.TransportError{Err: err}
	}
	defer l.sem.Release(1)
	return l.next.Fetch(ctx, params)
}

type breaking struct {
	next    locationforecast.Fetcher
	circuit *gobreaker.CircuitBreaker
}

// Breaking wraps next with a circuit breaker that opens after consecutive
// failures, shielding a struggling origin from further traffic for a
// cool-down period.
func Breaking(next locationforecast.Fetcher, name string) locationforecast.Fetcher {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 2,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 4
		},
	})

	return &breaking{next: next, circuit: cb}
}

func (l *breaking) Fetch(ctx context.Context, params locationforecast.Params) (*locationforecast.Response, error) {
	result, err := l.circuit.Execute(func() (interface{}, error) {
		return l.next.Fetch(ctx, params)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrCircuitOpen
		}
		return nil, err
	}
	return result.(*locationforecast.Response), nil
}
