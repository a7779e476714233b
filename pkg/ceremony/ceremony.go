// Package ceremony is audit tooling for the trusted-dealer ceremony
// (spec §1): it lets a dealer commit, before revealing any correlated
// randomness, to exactly the seed it is about to consume, so an auditor
// can later check the dealer didn't substitute different randomness
// after the fact. This is not part of the protocol's security
// argument — the dealer is trusted per spec §1 regardless — it is a
// transparency aid layered on top.
package ceremony

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/zeebo/blake3"
)

// Commitment is a Pedersen commitment C = seed*G + blind*H to a
// ceremony's random seed, plus the blinding factor needed to open it.
// Publish Commitment.Point before the ceremony runs; reveal Seed and
// Blind afterward so anyone can recompute Point and confirm it matches.
type Commitment struct {
	Point *secp256k1.JacobianPoint
	Seed  [32]byte
	Blind [32]byte
}

// auxGenerator derives a second generator H (independent of the curve's
// standard base point G) by hashing G's encoding, the standard
// nothing-up-my-sleeve construction for Pedersen commitments.
func auxGenerator() *secp256k1.JacobianPoint {
	gx, gy := secp256k1.S256().Params().Gx, secp256k1.S256().Params().Gy
	h := blake3.Sum256(append(gx.Bytes(), gy.Bytes()...))

	// Try-and-increment: rehash until the digest is the x coordinate of a
	// curve point, so H's discrete log relative to G is unknown.
	for {
		var x, y secp256k1.FieldVal
		if !x.SetByteSlice(h[:]) && secp256k1.DecompressY(&x, false, &y) {
			var hPoint secp256k1.JacobianPoint
			hPoint.X, hPoint.Y = x, y
			hPoint.Z.SetInt(1)
			return &hPoint
		}
		h = blake3.Sum256(h[:])
	}
}

// Commit produces a commitment to a freshly drawn 32-byte seed. rnd
// defaults to crypto/rand.Reader.
func Commit(rnd io.Reader) (*Commitment, error) {
	if rnd == nil {
		rnd = rand.Reader
	}

	var seed, blind [32]byte
	if _, err := io.ReadFull(rnd, seed[:]); err != nil {
		return nil, fmt.Errorf("ceremony: Commit: %w", err)
	}
	if _, err := io.ReadFull(rnd, blind[:]); err != nil {
		return nil, fmt.Errorf("ceremony: Commit: %w", err)
	}

	point := commitmentPoint(seed, blind)
	return &Commitment{Point: point, Seed: seed, Blind: blind}, nil
}

func commitmentPoint(seed, blind [32]byte) *secp256k1.JacobianPoint {
	var seedScalar, blindScalar secp256k1.ModNScalar
	seedScalar.SetByteSlice(seed[:])
	blindScalar.SetByteSlice(blind[:])

	var sG, bH, sum secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&seedScalar, &sG)

	h := auxGenerator()
	secp256k1.ScalarMultNonConst(&blindScalar, h, &bH)

	secp256k1.AddNonConst(&sG, &bH, &sum)
	sum.ToAffine()
	return &sum
}

// Verify checks that c.Point is indeed the Pedersen commitment to
// c.Seed and c.Blind, i.e. that the dealer didn't change its mind about
// which randomness it used after publishing the commitment.
func Verify(c *Commitment) bool {
	recomputed := commitmentPoint(c.Seed, c.Blind)
	return recomputed.X.Equals(&c.Point.X) && recomputed.Y.Equals(&c.Point.Y)
}

// TranscriptHash hashes an ordered sequence of wire-format byte strings
// (e.g. packed FSS keys) into a single 32-byte digest, letting an
// auditor confirm two ceremony outputs are byte-identical without
// diffing the full transcript.
func TranscriptHash(parts ...[]byte) [32]byte {
	h := blake3.New()
	for _, p := range parts {
		var lenBuf [8]byte
		ln := uint64(len(p))
		for i := 0; i < 8; i++ {
			lenBuf[i] = byte(ln >> (56 - 8*i))
		}
		h.Write(lenBuf[:])
		h.Write(p)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
