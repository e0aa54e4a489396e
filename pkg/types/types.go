package types

import "time"

// Keypair is a freshly generated secp256k1 private key and its derived
// Ethereum address. Instances are worker-local and short-lived; call Wipe
// as soon as the key is known not to be needed.
type Keypair struct {
	PrivateKey []byte // 32-byte secret
	Address    [20]byte
}

// Wipe overwrites the private key material in place.
func (k *Keypair) Wipe() {
	for i := range k.PrivateKey {
		k.PrivateKey[i] = 0
	}
}

// MatchResult is the terminal message produced by the winning worker.
// Exactly one is accepted per search run.
type MatchResult struct {
	Address          string // EIP-55 checksummed, 0x-prefixed
	PrivateKey       string // hex encoded
	AttemptsByWinner uint64 // attempts since the winner's previous tick
}

// Event is a single message on the progress channel from a worker to the
// coordinator. Exactly one of the fields is meaningful: Match and Err are
// terminal for the sending worker, otherwise Count carries a batched tick.
type Event struct {
	Count uint64
	Match *MatchResult
	Err   error
}

// Result is the final outcome of a search run as returned by the coordinator.
type Result struct {
	Match         MatchResult
	TotalAttempts uint64
	Elapsed       time.Duration
}
