package miner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screa/eth-vanity-miner/pkg/pattern"
	"github.com/screa/eth-vanity-miner/pkg/types"
)

// fixedProvider always returns the same address. Safe for concurrent use.
type fixedProvider struct {
	addr  [20]byte
	calls atomic.Uint64
	err   error
}

func (p *fixedProvider) GenerateKeypair() (types.Keypair, error) {
	if p.err != nil {
		return types.Keypair{}, p.err
	}
	p.calls.Add(1)
	return types.Keypair{
		PrivateKey: make([]byte, 32),
		Address:    p.addr,
	}, nil
}

// countingReporter records how often each callback fires.
type countingReporter struct {
	mu       sync.Mutex
	progress int
	found    int
	lastAddr string
	lastScan uint64
}

func (r *countingReporter) OnProgress(speed float64, scanned uint64, probability float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress++
	r.lastScan = scanned
}

func (r *countingReporter) OnFound(address, privateKey string, elapsed time.Duration, totalScanned uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.found++
	r.lastAddr = address
	r.lastScan = totalScanned
}

func (r *countingReporter) snapshot() (progress, found int, addr string, scanned uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.progress, r.found, r.lastAddr, r.lastScan
}

func matchingAddr() [20]byte {
	var a [20]byte // hex: 40 zeros, matches prefix "00"
	return a
}

func missAddr() [20]byte {
	var a [20]byte
	for i := range a {
		a[i] = 0xff
	}
	return a
}

func mustSpec(t *testing.T, prefix, suffix string, caseSensitive bool) *pattern.Spec {
	t.Helper()
	spec, err := pattern.Build(prefix, suffix, caseSensitive)
	require.NoError(t, err)
	return spec
}

func TestRunFindsMatch(t *testing.T) {
	spec := mustSpec(t, "00", "", false)
	provider := &fixedProvider{addr: matchingAddr()}
	reporter := &countingReporter{}

	m := New(spec, provider, reporter, 1)
	result, err := m.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)

	// Single worker, first attempt matches
	assert.Equal(t, uint64(1), result.Match.AttemptsByWinner)
	assert.Equal(t, uint64(1), result.TotalAttempts)
	assert.Equal(t, "0x0000000000000000000000000000000000000000", result.Match.Address)
	assert.Len(t, result.Match.PrivateKey, 64)

	_, found, addr, scanned := reporter.snapshot()
	assert.Equal(t, 1, found, "OnFound must fire exactly once")
	assert.Equal(t, result.Match.Address, addr)
	assert.Equal(t, result.TotalAttempts, scanned)
}

func TestExactlyOneWinner(t *testing.T) {
	// Every worker finds a match on its first attempt; the coordinator
	// must accept only the first terminal event it drains.
	spec := mustSpec(t, "00", "", false)
	provider := &fixedProvider{addr: matchingAddr()}
	reporter := &countingReporter{}

	m := New(spec, provider, reporter, 8)
	result, err := m.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)

	_, found, _, _ := reporter.snapshot()
	assert.Equal(t, 1, found, "OnFound must fire exactly once despite concurrent matches")
	assert.GreaterOrEqual(t, result.TotalAttempts, result.Match.AttemptsByWinner)
}

func TestNoMatchKeepsTicking(t *testing.T) {
	// Suffix "00" can never match addresses ending in 0xff. The search
	// must keep producing progress snapshots and never report a match
	// within the test's budget.
	spec := mustSpec(t, "", "00", true)
	provider := &fixedProvider{addr: missAddr()}
	reporter := &countingReporter{}

	m := New(spec, provider, reporter, 2)
	m.batch = 64 // small batches so ticks flow quickly

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var result *types.Result
	var runErr error
	go func() {
		defer close(done)
		result, runErr = m.Run(ctx)
	}()

	// Let several snapshot intervals elapse
	time.Sleep(350 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("miner did not shut down after cancellation")
	}

	assert.Nil(t, result)
	assert.ErrorIs(t, runErr, context.Canceled)

	progress, found, _, scanned := reporter.snapshot()
	assert.GreaterOrEqual(t, progress, 1, "expected at least one progress snapshot")
	assert.Zero(t, found, "no match may be reported")
	assert.Greater(t, scanned, uint64(0))
}

func TestProviderErrorIsFatal(t *testing.T) {
	sentinel := errors.New("entropy exhausted")
	spec := mustSpec(t, "00", "", false)
	provider := &fixedProvider{err: sentinel}
	reporter := &countingReporter{}

	m := New(spec, provider, reporter, 4)
	result, err := m.Run(context.Background())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, sentinel)

	_, found, _, _ := reporter.snapshot()
	assert.Zero(t, found)
}

func TestWorkersStopAfterWin(t *testing.T) {
	spec := mustSpec(t, "00", "", false)
	provider := &fixedProvider{addr: matchingAddr()}

	m := New(spec, provider, nil, 4)
	_, err := m.Run(context.Background())
	require.NoError(t, err)

	// Run returned, so every worker has exited; the call count must be
	// stable from here on.
	calls := provider.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, provider.calls.Load(), "workers kept generating after Run returned")
}

func TestDefaultWorkerCount(t *testing.T) {
	spec := mustSpec(t, "00", "", false)
	m := New(spec, &fixedProvider{addr: matchingAddr()}, nil, 0)
	assert.Greater(t, m.workers, 0)
}
