package main

import (
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/luxfi/funshade/pkg/dealer"
	"github.com/luxfi/funshade/pkg/ring"
	"github.com/luxfi/funshade/protocols/funshade"
)

const demoMaxEl = 1 << 12

func runDemo(cmd *cobra.Command, args []string) error {
	switch widthFlag {
	case 32:
		return demoWidth[ring.Elem32]()
	case 64:
		return demoWidth[ring.Elem64]()
	default:
		return fmt.Errorf("funshade-cli: unsupported width %d (want 32 or 64)", widthFlag)
	}
}

// demoWidth runs a single-comparison version of the biometric-match
// fixture from the original test suite (scenario S3): one pair of
// vectors drawn uniformly from [-1,1] and fixed-point encoded with
// max_el=2^12 (the vectors are not L2-normalized, and only K=1 instance
// is dealt), a threshold at theta=0.4 scaled by max_el^2, and a check that the
// 2PC-computed sign matches a plaintext reference computed the same
// way a verifier would. Both parties are played in this single process
// since the library has no networking layer of its own; a real
// deployment exchanges the same values over a channel instead.
func demoWidth[T ring.Elem]() error {
	src := rand.NewPCG(uint64(seedFlag), uint64(seedFlag)^0x9e3779b97f4a7c15)
	rng := rand.New(src)

	x := make([]float64, lDim)
	y := make([]float64, lDim)
	for i := range x {
		x[i] = rng.Float64()*2 - 1
		y[i] = rng.Float64()*2 - 1
	}

	xFixed := make([]T, lDim)
	yFixed := make([]T, lDim)
	var plainDot int64
	for i := range x {
		xi := int64(x[i] * demoMaxEl)
		yi := int64(y[i] * demoMaxEl)
		xFixed[i] = ring.FromInt64[T](xi)
		yFixed[i] = ring.FromInt64[T](yi)
		plainDot += xi * yi
	}

	thetaFrac := 0.4
	theta := ring.FromInt64[T](int64(thetaFrac * demoMaxEl * demoMaxEl))

	p0, p1, err := dealer.Setup[T](1, lDim, theta, crand.Reader)
	if err != nil {
		return fmt.Errorf("funshade-cli: demo: %w", err)
	}
	inst0, inst1 := p0.Instances[0], p1.Instances[0]

	// Round 1: each party blinds its own vector and the two shares are
	// opened (summed) coordinate-wise.
	d0 := funshade.Share[T](true, inst0, xFixed)
	d1Peer := make([]T, lDim) // party 1 contributes 0 - a1 per coordinate
	for i := range d1Peer {
		d1Peer[i] = ring.Neg(inst1.Triples[i].A)
	}
	e1 := funshade.Share[T](false, inst1, yFixed)
	e0Peer := make([]T, lDim) // party 0 contributes 0 - b0 per coordinate
	for i := range e0Peer {
		e0Peer[i] = ring.Neg(inst0.Triples[i].B)
	}

	dOpen := make([]T, lDim)
	eOpen := make([]T, lDim)
	for i := 0; i < lDim; i++ {
		dOpen[i] = ring.Add(d0[i], d1Peer[i])
		eOpen[i] = ring.Add(e0Peer[i], e1[i])
	}

	// Round 2: each party locally recombines, producing a masked share
	// of the inner product, then exchanges and evaluates the sign gate.
	sigma0, err := funshade.LocalProduct[T](0, inst0, dOpen, eOpen)
	if err != nil {
		return fmt.Errorf("funshade-cli: demo: %w", err)
	}
	sigma1, err := funshade.LocalProduct[T](1, inst1, dOpen, eOpen)
	if err != nil {
		return fmt.Errorf("funshade-cli: demo: %w", err)
	}

	out0, err := funshade.EvalDist[T](0, inst0, sigma0, sigma1)
	if err != nil {
		return fmt.Errorf("funshade-cli: demo: %w", err)
	}
	out1, err := funshade.EvalDist[T](1, inst1, sigma0, sigma1)
	if err != nil {
		return fmt.Errorf("funshade-cli: demo: %w", err)
	}

	sign := ring.ToInt64[T](ring.Add(out0, out1))
	wantSign := int64(0)
	if plainDot > int64(thetaFrac*demoMaxEl*demoMaxEl) {
		wantSign = 1
	}

	fmt.Printf("plaintext dot product: %d, theta: %d\n", plainDot, ring.ToInt64[T](theta))
	fmt.Printf("2PC sign share sum: %d (want %d)\n", sign, wantSign)
	if sign != wantSign {
		return fmt.Errorf("funshade-cli: demo: mismatch between 2PC result (%d) and plaintext reference (%d)", sign, wantSign)
	}
	fmt.Println("match")
	return nil
}
