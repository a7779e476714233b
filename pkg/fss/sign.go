// This file builds the ">θ" sign gate (spec §4.3) on top of the raw DCF
// in fss.go.
//
// The DCF primitive natively evaluates "x < alpha -> beta, else 0". The
// sign gate needs "z > theta -> 1, else 0" for a value z that is only
// ever seen by the parties in masked form, zhat = z + r_in, with r_in a
// value only the dealer knows.
//
// Rewriting the predicate: z > theta  <=>  NOT(z <= theta)
//                                     <=>  NOT(z < theta+1)
//                                     <=>  NOT(zhat < theta+1+r_in)
// so FssGenSign builds a DCF around alpha = theta + r_in + 1, beta = 1,
// and FssEvalSign flips the recombined DCF output: since the two DCF
// shares g_0, g_1 satisfy g_0+g_1 = 1 when zhat < alpha and 0 otherwise,
// returning o_0 = 1-g_0 and o_1 = -g_1 makes o_0+o_1 sum to 1 exactly
// when z > theta, and 0 otherwise — party 0 carries the "+1", party 1
// just negates, so no party needs to know the other's share to apply it.
package fss

import (
	"fmt"
	"io"

	"github.com/luxfi/funshade/pkg/ring"
)

// Gate is one row's pair of sign-gate DCF keys, handed one each to the
// two evaluating parties.
type Gate[T ring.Elem] struct {
	Key0 *Key[T]
	Key1 *Key[T]
}

// FssGenSign is the dealer-side operation of spec §4 component (3): it
// produces K independent sign gates and the additive shares of each
// gate's private mask r_in, which the online distance protocol folds
// into its own masking before opening.
func FssGenSign[T ring.Elem](K int, theta T, rnd io.Reader) (gates []Gate[T], rin0, rin1 []T, err error) {
	if K <= 0 {
		return nil, nil, nil, fmt.Errorf("fss: FssGenSign: K must be positive, got %d: %w", K, ring.ErrPreconditionViolation)
	}

	gates = make([]Gate[T], K)
	rin0 = make([]T, K)
	rin1 = make([]T, K)

	for i := 0; i < K; i++ {
		rin, err := ring.Random[T](rnd)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("fss: FssGenSign: %w", err)
		}
		share0, err := ring.Random[T](rnd)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("fss: FssGenSign: %w", err)
		}
		share1 := ring.Sub(rin, share0)

		alpha := ring.Add(ring.Add(theta, rin), one[T]())
		var beta T = one[T]()

		k0, k1, err := Gen(alpha, beta, rnd)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("fss: FssGenSign: %w", err)
		}

		gates[i] = Gate[T]{Key0: k0, Key1: k1}
		rin0[i] = share0
		rin1[i] = share1
	}

	return gates, rin0, rin1, nil
}

func one[T ring.Elem]() T {
	return ring.FromInt64[T](1)
}

// FssEvalSign is the online-side operation of spec §4 component (3):
// party j evaluates its half of the gate (the single key it was handed,
// never the other party's) at the opened masked value zhat, returning
// its additive share of the sign bit (1 if the underlying z exceeded
// theta, 0 otherwise). j must be 0 or 1.
func FssEvalSign[T ring.Elem](j int, key *Key[T], zhat T) (T, error) {
	var zero T
	if err := ring.ValidateParty(j); err != nil {
		return zero, fmt.Errorf("fss: FssEvalSign: %w", err)
	}

	if j == 0 {
		g0, err := Eval(0, key, zhat)
		if err != nil {
			return zero, fmt.Errorf("fss: FssEvalSign: %w", err)
		}
		return ring.Sub(one[T](), g0), nil
	}
	g1, err := Eval(1, key, zhat)
	if err != nil {
		return zero, fmt.Errorf("fss: FssEvalSign: %w", err)
	}
	return ring.Neg(g1), nil
}
