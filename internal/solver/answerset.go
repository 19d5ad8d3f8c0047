package solver

import (
	"encoding/hex"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/crypto/blake2b"
)

// AnswerSet is the set of potential answers still consistent with the
// feedback received, stored as a bitset over answer dictionary indices.
// Sets are values: refinement returns a new set and never mutates its input.
type AnswerSet struct {
	bits *bitset.BitSet
}

func fullSet(n int) *AnswerSet {
	return &AnswerSet{bits: bitset.New(uint(n)).Complement()}
}

func emptySet(n int) *AnswerSet {
	return &AnswerSet{bits: bitset.New(uint(n))}
}

// Len returns the number of potential answers.
func (s *AnswerSet) Len() int { return int(s.bits.Count()) }

// Contains reports whether answer index i is still possible.
func (s *AnswerSet) Contains(i int) bool { return i >= 0 && s.bits.Test(uint(i)) }

// Indices returns the answer indices in ascending order.
func (s *AnswerSet) Indices() []int {
	out := make([]int, 0, s.Len())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// SubsetOf reports whether every member of s is also in other.
func (s *AnswerSet) SubsetOf(other *AnswerSet) bool {
	return other.bits.IsSuperSet(s.bits)
}

// Clone returns an independent copy.
func (s *AnswerSet) Clone() *AnswerSet { return &AnswerSet{bits: s.bits.Clone()} }

// Fingerprint identifies the membership of s; equal sets over the same
// dictionary share a fingerprint.
func (s *AnswerSet) Fingerprint() string {
	b, err := s.bits.MarshalBinary()
	if err != nil {
		// MarshalBinary writes to an in-memory buffer.
		panic(err)
	}
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:16])
}
