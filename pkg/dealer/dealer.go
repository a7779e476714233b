// Package dealer implements the trusted-dealer ceremony (spec §4
// component (4)): the one-time, offline generation of all the
// correlated randomness the online distance protocols consume. Nothing
// in this package ever sees a party's actual input vector; it only
// produces blinding material and sign-gate keys ahead of time.
package dealer

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/luxfi/funshade/pkg/fss"
	"github.com/luxfi/funshade/pkg/pool"
	"github.com/luxfi/funshade/pkg/ring"
)

// Triple is one party's additive share of a Beaver multiplication
// triple (a, b, c=a*b), used to secret-share-multiply one coordinate of
// the two parties' vectors without revealing either operand.
type Triple[T ring.Elem] struct {
	A, B, C T
}

// Instance is the correlated randomness for one precomputed distance
// comparison: l Beaver triples (one per vector coordinate) plus the
// sign-gate key and r_in mask share this party needs to turn the
// opened inner product into a share of "distance > theta".
type Instance[T ring.Elem] struct {
	Triples []Triple[T]
	Gate    *fss.Key[T]
	RMask   T
}

// PartyMaterial is the full batch of K precomputed instances handed to
// one party after a Setup run. Each instance is good for exactly one
// EvalDist call; instances are independent and safe to consume in any
// order or in parallel (see pkg/pool).
type PartyMaterial[T ring.Elem] struct {
	Instances []Instance[T]
}

type tripleRow[T ring.Elem] struct {
	triples0, triples1 []Triple[T]
}

// Setup runs the Beaver-variant dealer ceremony (spec §4.2): K
// independent instances, each comparing an l-dimensional inner product
// against the fixed threshold theta. Returns the two parties' shares of
// every instance; nothing here is a function of either party's actual
// data. The K instances are independent, so their Beaver triples are
// generated concurrently via pkg/pool.
func Setup[T ring.Elem](K, l int, theta T, rnd io.Reader) (p0, p1 PartyMaterial[T], err error) {
	if K <= 0 || l <= 0 {
		return p0, p1, fmt.Errorf("dealer: Setup: K and l must be positive, got K=%d l=%d: %w", K, l, ring.ErrPreconditionViolation)
	}

	gates, rin0, rin1, err := fss.FssGenSign[T](K, theta, rnd)
	if err != nil {
		return p0, p1, fmt.Errorf("dealer: Setup: %w", err)
	}

	seeds, err := deriveRowSeeds(K, rnd)
	if err != nil {
		return p0, p1, fmt.Errorf("dealer: Setup: %w", err)
	}
	rows, err := pool.Map(context.Background(), seeds, func(_ context.Context, _ int, seed [32]byte) (tripleRow[T], error) {
		return generateTripleRow[T](l, rowReader(seed, "dealer-triple-row"))
	})
	if err != nil {
		return p0, p1, fmt.Errorf("dealer: Setup: %w", err)
	}

	p0.Instances = make([]Instance[T], K)
	p1.Instances = make([]Instance[T], K)
	for i := 0; i < K; i++ {
		p0.Instances[i] = Instance[T]{Triples: rows[i].triples0, Gate: gates[i].Key0, RMask: rin0[i]}
		p1.Instances[i] = Instance[T]{Triples: rows[i].triples1, Gate: gates[i].Key1, RMask: rin1[i]}
	}

	return p0, p1, nil
}

// deriveRowSeeds draws K independent 32-byte seeds from rnd, sequentially
// and in index order, so each row's subsequent random generation can run
// on its own independent reader inside pool.Map without the goroutines
// racing (or nondeterministically interleaving) reads against a single
// shared source.
func deriveRowSeeds(n int, rnd io.Reader) ([][32]byte, error) {
	seeds := make([][32]byte, n)
	for i := range seeds {
		if _, err := io.ReadFull(rnd, seeds[i][:]); err != nil {
			return nil, fmt.Errorf("deriveRowSeeds: row %d: %w: %w", i, ring.ErrRandomnessFailure, err)
		}
	}
	return seeds, nil
}

// rowReader expands a row seed into an independent randomness stream via
// HKDF, domain-separated by label so Setup and SetupSS never reuse the
// same stream for a given seed.
func rowReader(seed [32]byte, label string) io.Reader {
	return hkdf.New(sha256.New, seed[:], nil, []byte(label))
}

func generateTripleRow[T ring.Elem](l int, rnd io.Reader) (tripleRow[T], error) {
	triples0 := make([]Triple[T], l)
	triples1 := make([]Triple[T], l)
	for coord := 0; coord < l; coord++ {
		a, err := ring.Random[T](rnd)
		if err != nil {
			return tripleRow[T]{}, fmt.Errorf("generateTripleRow: %w", err)
		}
		b, err := ring.Random[T](rnd)
		if err != nil {
			return tripleRow[T]{}, fmt.Errorf("generateTripleRow: %w", err)
		}
		c0, err := ring.Random[T](rnd)
		if err != nil {
			return tripleRow[T]{}, fmt.Errorf("generateTripleRow: %w", err)
		}
		a0, err := ring.Random[T](rnd)
		if err != nil {
			return tripleRow[T]{}, fmt.Errorf("generateTripleRow: %w", err)
		}
		b0, err := ring.Random[T](rnd)
		if err != nil {
			return tripleRow[T]{}, fmt.Errorf("generateTripleRow: %w", err)
		}
		a1 := ring.Sub(a, a0)
		b1 := ring.Sub(b, b0)
		c := ring.Mul(a, b)
		c1 := ring.Sub(c, c0)

		triples0[coord] = Triple[T]{A: a0, B: b0, C: c0}
		triples1[coord] = Triple[T]{A: a1, B: b1, C: c1}
	}
	return tripleRow[T]{triples0: triples0, triples1: triples1}, nil
}

// Reconstruct sums a value split across two additive shares. Callers of
// the _ss online protocol (protocols/ass; see recombineSS in its tests)
// use it to open a blinded vector:
// each party's own-share masking plus the peer's zero-vector
// contribution against the same mask reconstructs the fully-opened
// blind — see SPEC_FULL.md §D.
func Reconstruct[T ring.Elem](share0, share1 T) T {
	return ring.Add(share0, share1)
}
