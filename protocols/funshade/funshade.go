// Package funshade implements the Beaver-variant online distance
// protocol (spec §4, component (5)): given a precomputed dealer.Instance,
// the data holder's vector x and the template holder's vector y, the two
// parties jointly learn additive shares of "sum(x_i*y_i) > theta"
// without learning anything else about each other's vector.
//
// The protocol runs in two message rounds, matched by the three
// functions below:
//
//  1. Share: each party blinds its own vector coordinate-wise with its
//     Beaver triple share (x-a or y-b) and sends the result to the
//     other party, who sums the two shares to recover the opened
//     blinding vector.
//  2. LocalProduct: each party locally recombines the Beaver triple
//     shares against the opened blinding vectors to get its share of
//     the inner product, masked by its r_in share, and sends that
//     scalar to the other party.
//  3. EvalDist: each party sums the two masked-product shares to
//     recover zhat and evaluates its half of the sign gate on it.
package funshade

import (
	"fmt"

	"github.com/luxfi/funshade/pkg/dealer"
	"github.com/luxfi/funshade/pkg/fss"
	"github.com/luxfi/funshade/pkg/ring"
)

// Share blinds v (this party's private vector, length l matching the
// instance) against its Beaver triple shares. isX selects which
// multiplicand slot v occupies: true for the data holder's x, false for
// the template holder's y.
func Share[T ring.Elem](isX bool, inst dealer.Instance[T], v []T) []T {
	out := make([]T, len(v))
	for i, val := range v {
		if isX {
			out[i] = ring.Sub(val, inst.Triples[i].A)
		} else {
			out[i] = ring.Sub(val, inst.Triples[i].B)
		}
	}
	return out
}

// LocalProduct recombines this party's Beaver triple shares against the
// fully opened blinding vectors d (=x-a) and e (=y-b) to produce this
// party's share of sum_i x_i*y_i, already folded together with this
// party's r_in mask share so the result is ready to exchange for
// EvalDist. party must be 0 or 1.
func LocalProduct[T ring.Elem](party int, inst dealer.Instance[T], d, e []T) (T, error) {
	var zero T
	if err := ring.ValidateParty(party); err != nil {
		return zero, fmt.Errorf("funshade: LocalProduct: %w", err)
	}

	var sigma T
	for i, tr := range inst.Triples {
		term := ring.Add(tr.C, ring.Add(ring.Mul(d[i], tr.B), ring.Mul(e[i], tr.A)))
		if party == 0 {
			term = ring.Add(term, ring.Mul(d[i], e[i]))
		}
		sigma = ring.Add(sigma, term)
	}
	return ring.Add(sigma, inst.RMask), nil
}

// EvalDist takes this party's own LocalProduct output and the peer's,
// sums them to recover zhat = sum(x_i*y_i) + r_in, and returns this
// party's share of the sign bit: 1 if the inner product exceeded theta,
// 0 otherwise. Summing both parties' returned shares in R reveals the
// outcome and nothing else. party must be 0 or 1.
func EvalDist[T ring.Elem](party int, inst dealer.Instance[T], ownMasked, peerMasked T) (T, error) {
	var zero T
	if err := ring.ValidateParty(party); err != nil {
		return zero, fmt.Errorf("funshade: EvalDist: %w", err)
	}

	zhat := ring.Add(ownMasked, peerMasked)
	out, err := fss.FssEvalSign(party, inst.Gate, zhat)
	if err != nil {
		return zero, fmt.Errorf("funshade: EvalDist: %w", err)
	}
	return out, nil
}
