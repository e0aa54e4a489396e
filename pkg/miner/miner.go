// Package miner coordinates the parallel vanity search: it owns the worker
// pool, drains the progress channel, aggregates attempt counts and enforces
// the single-winner rule.
package miner

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/screa/eth-vanity-miner/pkg/pattern"
	"github.com/screa/eth-vanity-miner/pkg/stats"
	"github.com/screa/eth-vanity-miner/pkg/types"
	"github.com/screa/eth-vanity-miner/pkg/worker"
)

// snapshotInterval is the minimum time between progress reports to the
// Reporter, regardless of how fast ticks arrive.
const snapshotInterval = 100 * time.Millisecond

// Reporter receives progress and result events. Implementations own all
// formatting and display; the miner never renders anything itself.
type Reporter interface {
	OnProgress(speed float64, scanned uint64, probability float64)
	OnFound(address, privateKey string, elapsed time.Duration, totalScanned uint64)
}

// Miner runs the search. All mutable aggregation state (total attempts,
// the winner) is confined to the single goroutine draining the channel in
// Run, so it needs no locking even though producers run in parallel.
type Miner struct {
	spec     *pattern.Spec
	provider worker.Provider
	reporter Reporter
	workers  int
	batch    int // per-worker tick batch, 0 for the worker default
}

// New creates a miner. workers <= 0 defaults to the number of CPU cores.
func New(spec *pattern.Spec, provider worker.Provider, reporter Reporter, workers int) *Miner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Miner{
		spec:     spec,
		provider: provider,
		reporter: reporter,
		workers:  workers,
	}
}

// Run blocks until one worker finds a match, a worker reports a fatal
// provider error, or ctx is cancelled. There is no timeout: a brute-force
// search is unbounded by nature, so any deadline belongs on the caller's
// context.
//
// The first terminal event drained from the channel wins; terminal events
// from other workers arriving later are discarded. On return all workers
// have been cancelled and have stopped.
func (m *Miner) Run(ctx context.Context) (*types.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered so producers rarely stall; a blocked producer still honors
	// cancellation in its send.
	events := make(chan types.Event, m.workers*4)

	var wg sync.WaitGroup
	for i := 0; i < m.workers; i++ {
		w := worker.New(m.spec, m.provider, events, m.batch)
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Run(ctx)
		}()
	}

	start := time.Now()
	lastSnapshot := start
	difficulty := m.spec.Difficulty()
	var total uint64

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()

		case ev := <-events:
			switch {
			case ev.Err != nil:
				cancel()
				wg.Wait()
				return nil, ev.Err

			case ev.Match != nil:
				total += ev.Match.AttemptsByWinner
				elapsed := time.Since(start)
				cancel()
				wg.Wait()
				if m.reporter != nil {
					m.reporter.OnFound(ev.Match.Address, ev.Match.PrivateKey, elapsed, total)
				}
				return &types.Result{
					Match:         *ev.Match,
					TotalAttempts: total,
					Elapsed:       elapsed,
				}, nil

			default:
				total += ev.Count
				if now := time.Now(); now.Sub(lastSnapshot) >= snapshotInterval {
					if m.reporter != nil {
						elapsed := now.Sub(start)
						m.reporter.OnProgress(
							stats.Speed(total, elapsed),
							total,
							stats.Probability(total, difficulty),
						)
					}
					lastSnapshot = now
				}
			}
		}
	}
}
