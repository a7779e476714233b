package dealer_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/funshade/pkg/dealer"
	"github.com/luxfi/funshade/pkg/ring"
)

func TestSetupTriplesAreConsistent(t *testing.T) {
	theta := ring.FromInt64[ring.Elem32](0)
	p0, p1, err := dealer.Setup[ring.Elem32](2, 5, theta, rand.Reader)
	require.NoError(t, err)
	require.Len(t, p0.Instances, 2)
	require.Len(t, p1.Instances, 2)

	for i := range p0.Instances {
		require.Len(t, p0.Instances[i].Triples, 5)
		for c := range p0.Instances[i].Triples {
			t0 := p0.Instances[i].Triples[c]
			t1 := p1.Instances[i].Triples[c]

			a := ring.Add(t0.A, t1.A)
			b := ring.Add(t0.B, t1.B)
			c2 := ring.Add(t0.C, t1.C)

			assert.Equal(t, ring.Mul(a, b), c2, "instance %d coord %d", i, c)
		}
	}
}

func TestSetupRMaskSplitsCorrectly(t *testing.T) {
	theta := ring.FromInt64[ring.Elem32](1)
	p0, p1, err := dealer.Setup[ring.Elem32](3, 1, theta, rand.Reader)
	require.NoError(t, err)

	for i := range p0.Instances {
		assert.NotEqual(t, p0.Instances[i].RMask, p1.Instances[i].RMask)
	}
}

func TestReconstruct(t *testing.T) {
	s0 := ring.FromInt64[ring.Elem32](123)
	s1 := ring.FromInt64[ring.Elem32](-50)
	assert.Equal(t, ring.FromInt64[ring.Elem32](73), dealer.Reconstruct(s0, s1))
}

func TestSetupRejectsBadParams(t *testing.T) {
	theta := ring.FromInt64[ring.Elem32](0)
	_, _, err := dealer.Setup[ring.Elem32](0, 5, theta, rand.Reader)
	assert.Error(t, err)

	_, _, err = dealer.Setup[ring.Elem32](5, 0, theta, rand.Reader)
	assert.Error(t, err)
}

func TestSetupSSMasksSplitCorrectly(t *testing.T) {
	theta := ring.FromInt64[ring.Elem32](2)
	p0, p1, err := dealer.SetupSS[ring.Elem32](4, 6, theta, rand.Reader)
	require.NoError(t, err)
	require.Len(t, p0.Instances, 4)

	for i := range p0.Instances {
		require.Len(t, p0.Instances[i].A, 6)
		require.Len(t, p0.Instances[i].B, 6)
		assert.NotEqual(t, p0.Instances[i].A, p1.Instances[i].A)
		assert.NotEqual(t, p0.Instances[i].B, p1.Instances[i].B)
		assert.NotEqual(t, p0.Instances[i].C, p1.Instances[i].C)
	}
}

func TestSetupSSCrossTermIsConsistent(t *testing.T) {
	theta := ring.FromInt64[ring.Elem32](0)
	p0, p1, err := dealer.SetupSS[ring.Elem32](3, 7, theta, rand.Reader)
	require.NoError(t, err)

	for i := range p0.Instances {
		inst0, inst1 := p0.Instances[i], p1.Instances[i]

		a := make([]ring.Elem32, 7)
		b := make([]ring.Elem32, 7)
		for j := 0; j < 7; j++ {
			a[j] = ring.Add(inst0.A[j], inst1.A[j])
			b[j] = ring.Add(inst0.B[j], inst1.B[j])
		}

		want := ring.InnerProduct(a, b)
		got := ring.Add(inst0.C, inst1.C)
		assert.Equal(t, want, got, "instance %d", i)
	}
}

func TestSetupSSRejectsBadParams(t *testing.T) {
	theta := ring.FromInt64[ring.Elem32](0)
	_, _, err := dealer.SetupSS[ring.Elem32](0, 5, theta, rand.Reader)
	assert.Error(t, err)

	_, _, err = dealer.SetupSS[ring.Elem32](5, 0, theta, rand.Reader)
	assert.Error(t, err)
}
