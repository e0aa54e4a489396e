// Package worker implements a single unit of parallel key search: generate
// a keypair, test the address against the pattern, report batched progress
// ticks and the eventual match over the coordinator's channel.
package worker

import (
	"context"
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/screa/eth-vanity-miner/internal/keygen"
	"github.com/screa/eth-vanity-miner/pkg/pattern"
	"github.com/screa/eth-vanity-miner/pkg/types"
)

// DefaultBatchSize is the number of attempts accumulated before a progress
// tick is emitted, decoupling reporting frequency from per-iteration cost.
const DefaultBatchSize = 2000

// Provider supplies fresh keypairs. Implementations must draw from a
// cryptographically secure entropy source and must be safe for concurrent
// use by multiple workers.
type Provider interface {
	GenerateKeypair() (types.Keypair, error)
}

// Worker repeatedly generates keypairs and evaluates them against a shared
// read-only pattern Spec. It holds no state shared with other workers; all
// coordination happens through the events channel.
type Worker struct {
	spec     *pattern.Spec
	provider Provider
	events   chan<- types.Event
	batch    uint64

	// Pre-allocated for the hot loop
	hexBuf [40]byte
	hasher hash.Hash
}

// New creates a worker. batch <= 0 selects DefaultBatchSize.
func New(spec *pattern.Spec, provider Provider, events chan<- types.Event, batch int) *Worker {
	w := &Worker{
		spec:     spec,
		provider: provider,
		events:   events,
		batch:    DefaultBatchSize,
	}
	if batch > 0 {
		w.batch = uint64(batch)
	}
	if spec.CaseSensitive() {
		w.hasher = keygen.NewKeccak()
	}
	return w
}

// Run loops until it finds a match, the provider fails, or ctx is
// cancelled. A match or a provider error is terminal for this worker: it
// emits exactly one Match or Err event and returns, never both and never a
// further tick.
func (w *Worker) Run(ctx context.Context) {
	var local uint64

	for {
		// Observe cancellation before starting another iteration.
		select {
		case <-ctx.Done():
			return
		default:
		}

		kp, err := w.provider.GenerateKeypair()
		if err != nil {
			w.send(ctx, types.Event{Err: fmt.Errorf("worker: %w", err)})
			return
		}
		local++

		keygen.HexLower(w.hexBuf[:], kp.Address)
		if w.spec.CaseSensitive() {
			keygen.ChecksumInPlace(w.hasher, w.hexBuf[:])
		}

		if w.spec.Matches(w.hexBuf[:]) {
			match := &types.MatchResult{
				Address:          keygen.ChecksumAddress(kp.Address),
				PrivateKey:       hex.EncodeToString(kp.PrivateKey),
				AttemptsByWinner: local,
			}
			kp.Wipe()
			w.send(ctx, types.Event{Match: match})
			return
		}

		// Non-matching key material is dropped immediately.
		kp.Wipe()

		if local == w.batch {
			if !w.send(ctx, types.Event{Count: local}) {
				return
			}
			local = 0
		}
	}
}

// send enqueues an event unless the run has been cancelled. A false return
// means the coordinator is gone and the worker must stop.
func (w *Worker) send(ctx context.Context, ev types.Event) bool {
	select {
	case w.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
