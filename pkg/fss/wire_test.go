package fss_test

import (
	"crypto/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/funshade/pkg/fss"
	"github.com/luxfi/funshade/pkg/ring"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	alpha := ring.FromInt64[ring.Elem32](17)
	beta := ring.FromInt64[ring.Elem32](9)

	k0, _, err := fss.Gen(alpha, beta, rand.Reader)
	require.NoError(t, err)

	packed := k0.Pack()
	got, err := fss.UnpackKey[ring.Elem32](packed)
	require.NoError(t, err)

	if diff := cmp.Diff(k0, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBundleRoundTrip(t *testing.T) {
	theta := ring.FromInt64[ring.Elem32](2)
	gates, _, _, err := fss.FssGenSign[ring.Elem32](3, theta, rand.Reader)
	require.NoError(t, err)

	bundle := fss.NewBundle(theta, gates)
	encoded, err := bundle.Marshal()
	require.NoError(t, err)

	gotTheta, gotGates, err := fss.UnmarshalBundle[ring.Elem32](encoded)
	require.NoError(t, err)
	require.Equal(t, theta, gotTheta)
	require.Len(t, gotGates, 3)

	for i := range gates {
		if diff := cmp.Diff(gates[i].Key0, gotGates[i].Key0); diff != "" {
			t.Fatalf("gate %d key0 mismatch (-want +got):\n%s", i, diff)
		}
		if diff := cmp.Diff(gates[i].Key1, gotGates[i].Key1); diff != "" {
			t.Fatalf("gate %d key1 mismatch (-want +got):\n%s", i, diff)
		}
	}
}
