package fss_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/funshade/pkg/fss"
	"github.com/luxfi/funshade/pkg/ring"
)

func TestGenEvalLessThan(t *testing.T) {
	alpha := ring.FromInt64[ring.Elem32](10)
	beta := ring.FromInt64[ring.Elem32](7)

	k0, k1, err := fss.Gen(alpha, beta, rand.Reader)
	require.NoError(t, err)

	cases := []int64{-100, -1, 0, 5, 9, 10, 11, 20, 100}
	for _, xv := range cases {
		x := ring.FromInt64[ring.Elem32](xv)
		g0, err := fss.Eval(0, k0, x)
		require.NoError(t, err)
		g1, err := fss.Eval(1, k1, x)
		require.NoError(t, err)
		sum := ring.Add(g0, g1)

		want := ring.Elem32(0)
		if ring.GreaterThan(alpha, x) {
			want = beta
		}
		assert.Equal(t, want, sum, "x=%d", xv)
	}
}

func TestGenEvalWidth64(t *testing.T) {
	alpha := ring.FromInt64[ring.Elem64](-50)
	beta := ring.FromInt64[ring.Elem64](3)

	k0, k1, err := fss.Gen(alpha, beta, rand.Reader)
	require.NoError(t, err)

	cases := []int64{-1000, -51, -50, -49, 0, 1000}
	for _, xv := range cases {
		x := ring.FromInt64[ring.Elem64](xv)
		e0, err := fss.Eval(0, k0, x)
		require.NoError(t, err)
		e1, err := fss.Eval(1, k1, x)
		require.NoError(t, err)
		sum := ring.Add(e0, e1)

		want := ring.Elem64(0)
		if ring.GreaterThan(alpha, x) {
			want = beta
		}
		assert.Equal(t, want, sum, "x=%d", xv)
	}
}

func TestKeysAreNotIdentical(t *testing.T) {
	alpha := ring.FromInt64[ring.Elem32](1)
	beta := ring.FromInt64[ring.Elem32](1)

	k0, k1, err := fss.Gen(alpha, beta, rand.Reader)
	require.NoError(t, err)
	assert.NotEqual(t, k0.S0, k1.S0)
}

func TestSignGateRecombinesCorrectly(t *testing.T) {
	theta := ring.FromInt64[ring.Elem32](4)
	gates, rin0, rin1, err := fss.FssGenSign[ring.Elem32](4, theta, rand.Reader)
	require.NoError(t, err)
	require.Len(t, gates, 4)

	zs := []int64{-10, 0, 3, 4, 5, 10}
	for gi, g := range gates {
		rin := ring.Add(rin0[gi], rin1[gi])
		for _, zv := range zs {
			z := ring.FromInt64[ring.Elem32](zv)
			zhat := ring.Add(z, rin)

			o0, err := fss.FssEvalSign(0, g.Key0, zhat)
			require.NoError(t, err)
			o1, err := fss.FssEvalSign(1, g.Key1, zhat)
			require.NoError(t, err)
			sum := ring.ToInt64(ring.Add(o0, o1))

			want := int64(0)
			if zv > int64(ring.ToInt64(theta)) {
				want = 1
			}
			assert.Equal(t, want, sum, "gate=%d z=%d", gi, zv)
		}
	}
}

func TestEvalRejectsInvalidPartyIndex(t *testing.T) {
	alpha := ring.FromInt64[ring.Elem32](10)
	beta := ring.FromInt64[ring.Elem32](1)
	k0, _, err := fss.Gen(alpha, beta, rand.Reader)
	require.NoError(t, err)

	_, err = fss.Eval(2, k0, ring.FromInt64[ring.Elem32](0))
	assert.ErrorIs(t, err, ring.ErrPreconditionViolation)

	gates, _, _, err := fss.FssGenSign[ring.Elem32](1, beta, rand.Reader)
	require.NoError(t, err)
	_, err = fss.FssEvalSign(-1, gates[0].Key0, ring.FromInt64[ring.Elem32](0))
	assert.ErrorIs(t, err, ring.ErrPreconditionViolation)
}
