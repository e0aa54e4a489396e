// Package pattern holds the validated, normalized description of what
// constitutes a vanity match: an address prefix and/or suffix in hex,
// optionally case-sensitive against the EIP-55 checksummed form.
package pattern

import (
	"errors"
	"math"
	"strings"
)

// Errors
var (
	ErrEmptyPattern = errors.New("must specify a prefix or a suffix")
	ErrInvalidHex   = errors.New("pattern must contain only hex characters (0-9, a-f, A-F)")
)

// Spec is immutable after Build and safe to share across workers without
// synchronization.
type Spec struct {
	prefix        []byte // hex chars, normalized
	suffix        []byte
	caseSensitive bool
}

// Build validates and normalizes the raw prefix/suffix into a Spec.
// A leading "0x" is stripped from the prefix only. When caseSensitive is
// false both patterns are stored lower-cased, since matching will also
// lower-case the address.
func Build(prefix, suffix string, caseSensitive bool) (*Spec, error) {
	if len(prefix) >= 2 && (prefix[:2] == "0x" || prefix[:2] == "0X") {
		prefix = prefix[2:]
	}

	if prefix == "" && suffix == "" {
		return nil, ErrEmptyPattern
	}
	if !isHex(prefix) || !isHex(suffix) {
		return nil, ErrInvalidHex
	}

	if !caseSensitive {
		prefix = strings.ToLower(prefix)
		suffix = strings.ToLower(suffix)
	}

	s := &Spec{caseSensitive: caseSensitive}
	if prefix != "" {
		s.prefix = []byte(prefix)
	}
	if suffix != "" {
		s.suffix = []byte(suffix)
	}
	return s, nil
}

// Prefix returns the normalized prefix pattern.
func (s *Spec) Prefix() string { return string(s.prefix) }

// Suffix returns the normalized suffix pattern.
func (s *Spec) Suffix() string { return string(s.suffix) }

// CaseSensitive reports whether matching is against the checksummed address.
func (s *Spec) CaseSensitive() bool { return s.caseSensitive }

// Difficulty returns the expected number of attempts for one match,
// 16^n for n combined pattern characters. float64 because long patterns
// overflow uint64.
func (s *Spec) Difficulty() float64 {
	return math.Pow(16, float64(len(s.prefix)+len(s.suffix)))
}

// Matches checks a 40-char hex address (no 0x) against the pattern.
// The caller must have normalized the address to the Spec's case convention:
// lower-case for case-insensitive specs, EIP-55 checksummed otherwise.
// Allocation-free; safe for concurrent use.
func (s *Spec) Matches(hexAddr []byte) bool {
	if len(s.prefix) > 0 {
		if len(s.prefix) > len(hexAddr) {
			return false
		}
		for i, c := range s.prefix {
			if hexAddr[i] != c {
				return false
			}
		}
	}

	if len(s.suffix) > 0 {
		if len(s.suffix) > len(hexAddr) {
			return false
		}
		start := len(hexAddr) - len(s.suffix)
		for i, c := range s.suffix {
			if hexAddr[start+i] != c {
				return false
			}
		}
	}

	return true
}

func isHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
