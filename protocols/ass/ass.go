// Package ass implements the additive-share-variant online protocol
// (spec §4.4-4.5, the "_ss" family): an alternative correlated-
// randomness shape for the same distance-then-threshold computation as
// protocols/funshade, trading l independent per-coordinate Beaver
// triples for one pair of length-l mask vectors (A, B) plus a single
// aggregate cross-term share C per row.
//
// Spec §4.5 requires each operand to be secret-shared against *both*
// mask vectors: the data holder produces d_y=Y-a, e_y=Y-b, and the
// template holder produces d_x=x-a, e_x=x-b, matching the two
// `share_ss` calls per vector in
// `original_source/funshade/py/test_ass.py`. Opening d_x/e_x and
// d_y/e_y (summing both parties' contributions, exactly as
// protocols/funshade opens its D_x/D_y) yields two independent, fully
// interchangeable pairings of fully-opened blinds:
//
//	primary:   D_x = x-A (opened via A), E_y = Y-B (opened via B)
//	secondary: E_x = x-B (opened via B), D_y = Y-A (opened via A)
//
// Both satisfy the same Beaver-style identity against the shared
// cross-term C=A*B (x*Y = D*E + D*mask_of_E + E*mask_of_D + C for
// either pairing), so LocalProductSS recombines the primary pairing
// into the protocol's actual output and CrossCheckSS recombines the
// secondary pairing as an independent check that must agree — genuine
// use of the second masking each operand produces, rather than leaving
// it an unconsumed side artifact.
package ass

import (
	"fmt"

	"github.com/luxfi/funshade/pkg/dealer"
	"github.com/luxfi/funshade/pkg/fss"
	"github.com/luxfi/funshade/pkg/ring"
)

// ShareSS blinds a length-l vector v against one of the instance's two
// mask vectors, coordinate-wise. isB selects B over A, mirroring
// funshade.Share's isX selector.
func ShareSS[T ring.Elem](isB bool, inst dealer.InstanceSS[T], v []T) []T {
	mask := inst.A
	if isB {
		mask = inst.B
	}
	out := make([]T, len(v))
	for i := range v {
		out[i] = ring.Sub(v[i], mask[i])
	}
	return out
}

// ShareBothSS blinds v against both of the instance's mask vectors in
// one call — the "two independent shares" spec §4.5 requires per
// operand. The data holder calls this once for Y, the template holder
// once for x; each sends both returned vectors to the peer, who
// combines them with its own zero-vector contribution (ShareSS against
// the same mask) to open the full D/E pairing.
func ShareBothSS[T ring.Elem](inst dealer.InstanceSS[T], v []T) (d, e []T) {
	return ShareSS(false, inst, v), ShareSS(true, inst, v)
}

// LocalProductSS recombines this party's mask-vector shares against the
// primary opened pairing — d (=x-A) and e (=Y-B) — to produce this
// party's share of sum_i x_i*Y_i, folded with this party's r_in mask
// share. It is the _ss counterpart of funshade.LocalProduct: the same
// per-coordinate d_i*B_i + e_i*A_i cross terms, summed over the row,
// plus the row's single C share in place of l separate Triple.C
// shares. party must be 0 or 1.
func LocalProductSS[T ring.Elem](party int, inst dealer.InstanceSS[T], d, e []T) (T, error) {
	var zero T
	if err := ring.ValidateParty(party); err != nil {
		return zero, fmt.Errorf("ass: LocalProductSS: %w", err)
	}

	sigma := inst.C
	for i := range d {
		sigma = ring.Add(sigma, ring.Add(ring.Mul(d[i], inst.B[i]), ring.Mul(e[i], inst.A[i])))
		if party == 0 {
			sigma = ring.Add(sigma, ring.Mul(d[i], e[i]))
		}
	}
	return ring.Add(sigma, inst.RMask), nil
}

// CrossCheckSS recombines this party's mask-vector shares against the
// secondary opened pairing — altD (=x-B) and altE (=Y-A), the mirror
// image of LocalProductSS's pairing with A and B swapped — producing
// the same share of sum_i x_i*Y_i via the independent identity
// x*Y = altD*altE + altD*A + altE*B + C. A caller that opens both
// pairings can use this to confirm the dealer's shares and the masked
// vectors are consistent before trusting LocalProductSS's result: both
// calls must recombine (summed across parties) to the same value.
// party must be 0 or 1.
func CrossCheckSS[T ring.Elem](party int, inst dealer.InstanceSS[T], altD, altE []T) (T, error) {
	var zero T
	if err := ring.ValidateParty(party); err != nil {
		return zero, fmt.Errorf("ass: CrossCheckSS: %w", err)
	}

	sigma := inst.C
	for i := range altD {
		sigma = ring.Add(sigma, ring.Add(ring.Mul(altD[i], inst.A[i]), ring.Mul(altE[i], inst.B[i])))
		if party == 0 {
			sigma = ring.Add(sigma, ring.Mul(altD[i], altE[i]))
		}
	}
	return ring.Add(sigma, inst.RMask), nil
}

// EvalDistSS takes this party's own LocalProductSS output and the
// peer's, sums them to recover zhat, and returns this party's share of
// "<x,Y> > theta". Summing both parties' returned shares in R reveals
// the outcome and nothing else. party must be 0 or 1.
func EvalDistSS[T ring.Elem](party int, inst dealer.InstanceSS[T], ownMasked, peerMasked T) (T, error) {
	var zero T
	if err := ring.ValidateParty(party); err != nil {
		return zero, fmt.Errorf("ass: EvalDistSS: %w", err)
	}

	zhat := ring.Add(ownMasked, peerMasked)
	out, err := fss.FssEvalSign(party, inst.Gate, zhat)
	if err != nil {
		return zero, fmt.Errorf("ass: EvalDistSS: %w", err)
	}
	return out, nil
}
