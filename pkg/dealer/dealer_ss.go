package dealer

import (
	"context"
	"fmt"
	"io"

	"github.com/luxfi/funshade/pkg/fss"
	"github.com/luxfi/funshade/pkg/pool"
	"github.com/luxfi/funshade/pkg/ring"
)

// InstanceSS is the correlated randomness for one precomputed distance
// comparison under the additive-share (_ss) variant (spec §4.4): rather
// than l independent Beaver triples, the two parties share a single
// pair of length-l mask vectors A, B (A0+A1=A, B0+B1=B) plus one scalar
// cross-term share C per row, with C0+C1 = sum_i A[i]*B[i]. The online
// protocol (protocols/ass) mirrors the Beaver recombination in
// protocols/funshade but folds the whole row's cross terms into this
// single scalar instead of l per-coordinate ones.
type InstanceSS[T ring.Elem] struct {
	A, B  []T
	C     T
	Gate  *fss.Key[T]
	RMask T
}

// PartyMaterialSS is the full batch of K precomputed _ss instances
// handed to one party after a SetupSS run.
type PartyMaterialSS[T ring.Elem] struct {
	Instances []InstanceSS[T]
}

type ssRow[T ring.Elem] struct {
	a0, b0 []T
	a1, b1 []T
	c0, c1 T
}

// SetupSS runs the additive-share-variant dealer ceremony (spec §4.4):
// K independent instances, each comparing an l-dimensional inner
// product against the fixed threshold theta using the _ss correlated
// randomness shape instead of per-coordinate Beaver triples. The K
// instances are independent and generated concurrently via pkg/pool,
// mirroring Setup's construction.
func SetupSS[T ring.Elem](K, l int, theta T, rnd io.Reader) (p0, p1 PartyMaterialSS[T], err error) {
	if K <= 0 || l <= 0 {
		return p0, p1, fmt.Errorf("dealer: SetupSS: K and l must be positive, got K=%d l=%d: %w", K, l, ring.ErrPreconditionViolation)
	}

	gates, rin0, rin1, err := fss.FssGenSign[T](K, theta, rnd)
	if err != nil {
		return p0, p1, fmt.Errorf("dealer: SetupSS: %w", err)
	}

	seeds, err := deriveRowSeeds(K, rnd)
	if err != nil {
		return p0, p1, fmt.Errorf("dealer: SetupSS: %w", err)
	}
	rows, err := pool.Map(context.Background(), seeds, func(_ context.Context, _ int, seed [32]byte) (ssRow[T], error) {
		return generateSSRow[T](l, rowReader(seed, "dealer-ss-row"))
	})
	if err != nil {
		return p0, p1, fmt.Errorf("dealer: SetupSS: %w", err)
	}

	p0.Instances = make([]InstanceSS[T], K)
	p1.Instances = make([]InstanceSS[T], K)
	for i := 0; i < K; i++ {
		p0.Instances[i] = InstanceSS[T]{A: rows[i].a0, B: rows[i].b0, C: rows[i].c0, Gate: gates[i].Key0, RMask: rin0[i]}
		p1.Instances[i] = InstanceSS[T]{A: rows[i].a1, B: rows[i].b1, C: rows[i].c1, Gate: gates[i].Key1, RMask: rin1[i]}
	}

	return p0, p1, nil
}

// generateSSRow draws one row's full mask vectors A, B (length l),
// splits each additively across the two parties, and splits the
// aggregate cross term C = sum_i A[i]*B[i] additively as well — the
// _ss variant's single scalar in place of l per-coordinate Beaver.C
// values.
func generateSSRow[T ring.Elem](l int, rnd io.Reader) (ssRow[T], error) {
	a, err := ring.RandomVector[T](l, rnd)
	if err != nil {
		return ssRow[T]{}, fmt.Errorf("generateSSRow: %w", err)
	}
	b, err := ring.RandomVector[T](l, rnd)
	if err != nil {
		return ssRow[T]{}, fmt.Errorf("generateSSRow: %w", err)
	}
	a0, err := ring.RandomVector[T](l, rnd)
	if err != nil {
		return ssRow[T]{}, fmt.Errorf("generateSSRow: %w", err)
	}
	b0, err := ring.RandomVector[T](l, rnd)
	if err != nil {
		return ssRow[T]{}, fmt.Errorf("generateSSRow: %w", err)
	}
	c0, err := ring.Random[T](rnd)
	if err != nil {
		return ssRow[T]{}, fmt.Errorf("generateSSRow: %w", err)
	}

	a1 := make([]T, l)
	b1 := make([]T, l)
	for i := 0; i < l; i++ {
		a1[i] = ring.Sub(a[i], a0[i])
		b1[i] = ring.Sub(b[i], b0[i])
	}

	c := ring.InnerProduct(a, b)
	c1 := ring.Sub(c, c0)

	return ssRow[T]{a0: a0, b0: b0, a1: a1, b1: b1, c0: c0, c1: c1}, nil
}
