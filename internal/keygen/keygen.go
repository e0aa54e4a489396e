// Package keygen is the cryptographic provider for the search: secp256k1
// keypair generation and hex/EIP-55 rendering of the derived address.
package keygen

import (
	"fmt"
	"hash"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"

	"github.com/screa/eth-vanity-miner/pkg/types"
)

// Secp256k1 generates keypairs from the process CSPRNG via go-ethereum.
// The zero value is ready to use and safe for concurrent use; each call is
// independent.
type Secp256k1 struct{}

// GenerateKeypair returns a fresh private key and its derived address.
// Uniform, independent sampling of the key space is what makes the
// difficulty model valid, so any failure of the entropy source is an error,
// never silently retried here.
func (Secp256k1) GenerateKeypair() (types.Keypair, error) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		return types.Keypair{}, fmt.Errorf("secp256k1 key generation: %w", err)
	}

	kp := types.Keypair{PrivateKey: crypto.FromECDSA(priv)}
	copy(kp.Address[:], crypto.PubkeyToAddress(priv.PublicKey).Bytes())
	return kp, nil
}

const hextable = "0123456789abcdef"

// HexLower encodes a 20-byte address into dst as lowercase hex.
// dst must be at least 40 bytes. Avoids the overhead of hex.Encode in the
// hot loop.
func HexLower(dst []byte, addr [20]byte) {
	for i, v := range addr {
		dst[i*2] = hextable[v>>4]
		dst[i*2+1] = hextable[v&0x0f]
	}
}

// NewKeccak returns a keccak256 hasher for use with ChecksumInPlace.
// Hold one per worker to avoid per-iteration allocations.
func NewKeccak() hash.Hash {
	return sha3.NewLegacyKeccak256()
}

// ChecksumInPlace applies EIP-55 casing to a 40-char lowercase hex address
// in place. Each nibble of keccak256(lowercase hex) decides the case of the
// corresponding hex char. The hasher is reset and reused.
func ChecksumInPlace(h hash.Hash, hexLower []byte) {
	h.Reset()
	h.Write(hexLower)
	var sumBuf [32]byte
	sum := h.Sum(sumBuf[:0])

	for i, c := range hexLower {
		if c < 'a' {
			continue // digit, no case
		}
		n := (sum[i/2] >> uint(4*(1-i%2))) & 0xF
		if n >= 8 {
			hexLower[i] = c - ('a' - 'A')
		}
	}
}

// ChecksumAddress renders a 20-byte address as a 0x-prefixed EIP-55
// checksummed string. For result output, not the hot loop.
func ChecksumAddress(addr [20]byte) string {
	var buf [40]byte
	HexLower(buf[:], addr)
	ChecksumInPlace(NewKeccak(), buf[:])
	return "0x" + string(buf[:])
}
