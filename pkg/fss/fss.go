// Package fss implements the distributed comparison function (DCF) that
// backs the sign gate: given a threshold alpha and output value beta
// known only to the dealer, Gen produces two keys such that, for any x,
// Eval(0,k0,x) + Eval(1,k1,x) == beta if x < alpha (as signed
// two's-complement values; ring.Bit applies the sign-bias transform) and
// 0 otherwise.
//
// The construction is the standard Boyle-Gilboa-Ishai tree-based DPF,
// extended per level with two ring-valued corrections (one per child)
// rather than a single leaf correction, so the "less than" predicate's
// output can be produced at whichever tree level x first diverges from
// alpha, rather than only at a fixed-depth leaf.
package fss

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/luxfi/funshade/pkg/prg"
	"github.com/luxfi/funshade/pkg/ring"
)

// CorrectionWord is the public (non-secret) per-level correction both
// parties' keys carry identically. SCW corrects the child seeds, TCWLeft
// and TCWRight correct the child control bits, VCWLeft and VCWRight
// correct the ring-valued output accumulated along each child branch.
type CorrectionWord[T ring.Elem] struct {
	SCW      prg.Seed
	TCWLeft  int
	TCWRight int
	VCWLeft  T
	VCWRight T
}

// Key is one party's share of a DCF. N is the bit width of the domain
// (32 or 64); CW has exactly N entries, one per tree level.
type Key[T ring.Elem] struct {
	Party int
	N     int
	S0    prg.Seed
	CW    []CorrectionWord[T]
}

func seedToElem[T ring.Elem](out [16]byte, n int) T {
	if n == 32 {
		return T(binary.BigEndian.Uint32(out[:4]))
	}
	return T(binary.BigEndian.Uint64(out[:8]))
}

// Gen runs the trusted-dealer key generation for the DCF "x < alpha ->
// beta, else 0" over the n-bit domain of T, consuming randomness from
// rnd (crypto/rand.Reader if nil).
func Gen[T ring.Elem](alpha, beta T, rnd io.Reader) (k0, k1 *Key[T], err error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	n := ring.Width[T]()

	var s0, s1 prg.Seed
	if _, err := io.ReadFull(rnd, s0[:]); err != nil {
		return nil, nil, fmt.Errorf("fss: gen: %w: %w", ring.ErrRandomnessFailure, err)
	}
	if _, err := io.ReadFull(rnd, s1[:]); err != nil {
		return nil, nil, fmt.Errorf("fss: gen: %w: %w", ring.ErrRandomnessFailure, err)
	}
	cw := make([]CorrectionWord[T], n)

	curr0, curr1 := s0, s1
	t0, t1 := 0, 1
	for i := 0; i < n; i++ {
		alphaI := ring.Bit(alpha, i)

		sL0, sR0, tL0, tR0 := prg.Expand(curr0)
		sL1, sR1, tL1, tR1 := prg.Expand(curr1)

		loseLeft := alphaI == 1 // when alpha's bit is 1, the left child is the "less than" branch that diverges from alpha's path
		var sCW prg.Seed
		if loseLeft {
			sCW = prg.XorSeed(sL0, sL1)
		} else {
			sCW = prg.XorSeed(sR0, sR1)
		}

		tCWLeft := tL0 ^ tL1 ^ alphaI ^ 1
		tCWRight := tR0 ^ tR1 ^ alphaI

		// Apply the corrections exactly as Eval does: only the party whose
		// current control bit is 1 corrects its children.
		if t0 == 1 {
			sL0, sR0, tL0, tR0 = prg.XorSeed(sL0, sCW), prg.XorSeed(sR0, sCW), tL0^tCWLeft, tR0^tCWRight
		}
		if t1 == 1 {
			sL1, sR1, tL1, tR1 = prg.XorSeed(sL1, sCW), prg.XorSeed(sR1, sCW), tL1^tCWLeft, tR1^tCWRight
		}

		var targetL T
		if alphaI == 1 {
			targetL = beta
		}
		vcwL := ring.Sub(ring.Sub(seedToElem[T](prg.Convert(sL0), n), seedToElem[T](prg.Convert(sL1), n)), targetL)
		vcwR := ring.Sub(seedToElem[T](prg.Convert(sR0), n), seedToElem[T](prg.Convert(sR1), n))
		if t0 == 1 {
			// party 0 adds the correction and party 1 subtracts it
			vcwL, vcwR = ring.Neg(vcwL), ring.Neg(vcwR)
		}

		cw[i] = CorrectionWord[T]{SCW: sCW, TCWLeft: tCWLeft, TCWRight: tCWRight, VCWLeft: vcwL, VCWRight: vcwR}

		if alphaI == 0 {
			curr0, curr1, t0, t1 = sL0, sL1, tL0, tL1
		} else {
			curr0, curr1, t0, t1 = sR0, sR1, tR0, tR1
		}
	}

	k0 = &Key[T]{Party: 0, N: n, S0: s0, CW: cw}
	k1 = &Key[T]{Party: 1, N: n, S0: s1, CW: cw}
	return k0, k1, nil
}

// Eval evaluates party j's share of the DCF at x. Summing Eval(0,...)
// and Eval(1,...) over the ring recovers beta when x < alpha and 0
// otherwise. j must be 0 or 1.
func Eval[T ring.Elem](j int, k *Key[T], x T) (T, error) {
	var zero T
	if err := ring.ValidateParty(j); err != nil {
		return zero, fmt.Errorf("fss: Eval: %w", err)
	}

	s := k.S0
	t := j
	var acc T

	for i := 0; i < k.N; i++ {
		xi := ring.Bit(x, i)
		sL, sR, tL, tR := prg.Expand(s)

		if t == 1 {
			sL = prg.XorSeed(sL, k.CW[i].SCW)
			sR = prg.XorSeed(sR, k.CW[i].SCW)
			tL ^= k.CW[i].TCWLeft
			tR ^= k.CW[i].TCWRight
		}

		var branchSeed prg.Seed
		var branchT int
		var vcw T
		if xi == 0 {
			branchSeed, branchT, vcw = sL, tL, k.CW[i].VCWLeft
		} else {
			branchSeed, branchT, vcw = sR, tR, k.CW[i].VCWRight
		}

		val := seedToElem[T](prg.Convert(branchSeed), k.N)
		if t == 1 {
			val = ring.Add(val, vcw)
		}
		if j == 1 {
			val = ring.Neg(val)
		}
		acc = ring.Add(acc, val)

		s, t = branchSeed, branchT
	}

	return acc, nil
}
