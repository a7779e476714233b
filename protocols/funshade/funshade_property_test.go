package funshade_test

import (
	crand "crypto/rand"
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/luxfi/funshade/pkg/dealer"
	"github.com/luxfi/funshade/pkg/ring"
	"github.com/luxfi/funshade/protocols/funshade"
)

var _ = Describe("Distance-threshold gate end-to-end invariants", func() {
	const l = 12
	var theta ring.Elem32

	BeforeEach(func() {
		theta = ring.FromInt64[ring.Elem32](25)
	})

	recombine := func(x, y []ring.Elem32) int64 {
		p0, p1, err := dealer.Setup[ring.Elem32](1, l, theta, crand.Reader)
		Expect(err).NotTo(HaveOccurred())
		inst0, inst1 := p0.Instances[0], p1.Instances[0]

		d0 := funshade.Share[ring.Elem32](true, inst0, x)
		e1 := funshade.Share[ring.Elem32](false, inst1, y)

		dOpen := make([]ring.Elem32, l)
		eOpen := make([]ring.Elem32, l)
		for i := 0; i < l; i++ {
			dOpen[i] = ring.Add(d0[i], ring.Neg(inst1.Triples[i].A))
			eOpen[i] = ring.Add(ring.Neg(inst0.Triples[i].B), e1[i])
		}

		sigma0, err := funshade.LocalProduct[ring.Elem32](0, inst0, dOpen, eOpen)
		Expect(err).NotTo(HaveOccurred())
		sigma1, err := funshade.LocalProduct[ring.Elem32](1, inst1, dOpen, eOpen)
		Expect(err).NotTo(HaveOccurred())

		out0, err := funshade.EvalDist[ring.Elem32](0, inst0, sigma0, sigma1)
		Expect(err).NotTo(HaveOccurred())
		out1, err := funshade.EvalDist[ring.Elem32](1, inst1, sigma0, sigma1)
		Expect(err).NotTo(HaveOccurred())
		return ring.ToInt64(ring.Add(out0, out1))
	}

	It("agrees with the plaintext inner product comparison over random vectors", func() {
		src := rand.NewPCG(7, 77)
		rng := rand.New(src)

		for trial := 0; trial < 25; trial++ {
			x := make([]ring.Elem32, l)
			y := make([]ring.Elem32, l)
			var plainDot int64
			for i := 0; i < l; i++ {
				xi := int64(rng.IntN(11) - 5)
				yi := int64(rng.IntN(11) - 5)
				x[i] = ring.FromInt64[ring.Elem32](xi)
				y[i] = ring.FromInt64[ring.Elem32](yi)
				plainDot += xi * yi
			}

			want := int64(0)
			if plainDot > int64(ring.ToInt64(theta)) {
				want = 1
			}
			Expect(recombine(x, y)).To(Equal(want))
		}
	})

	It("returns 0 for the all-zero vectors regardless of a positive threshold", func() {
		x := make([]ring.Elem32, l)
		y := make([]ring.Elem32, l)
		Expect(recombine(x, y)).To(Equal(int64(0)))
	})

	It("never leaks the plaintext vectors through the blinded share", func() {
		p0, _, err := dealer.Setup[ring.Elem32](1, l, theta, crand.Reader)
		Expect(err).NotTo(HaveOccurred())

		x := make([]ring.Elem32, l)
		for i := range x {
			x[i] = ring.FromInt64[ring.Elem32](int64(i + 1))
		}
		d := funshade.Share[ring.Elem32](true, p0.Instances[0], x)
		Expect(d).NotTo(Equal(x))
	})

	It("rejects a party index outside {0,1}", func() {
		p0, _, err := dealer.Setup[ring.Elem32](1, l, theta, crand.Reader)
		Expect(err).NotTo(HaveOccurred())

		_, err = funshade.LocalProduct[ring.Elem32](2, p0.Instances[0], make([]ring.Elem32, l), make([]ring.Elem32, l))
		Expect(err).To(MatchError(ring.ErrPreconditionViolation))

		_, err = funshade.EvalDist[ring.Elem32](-1, p0.Instances[0], ring.Elem32(0), ring.Elem32(0))
		Expect(err).To(MatchError(ring.ErrPreconditionViolation))
	})
})
