package dealer_test

import (
	"crypto/rand"
	"math"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/funshade/pkg/dealer"
	"github.com/luxfi/funshade/pkg/ring"
)

// TestRMaskSharesAreUniform checks testable property #4 (share
// uniformity): a party's r_in share, taken alone, should be
// indistinguishable from a uniform draw over R. A biased dealer
// implementation would concentrate the share's low byte around a
// particular value; this computes its sample mean and standard
// deviation and asserts they sit close to a uniform byte's 127.5/73.9.
func TestRMaskSharesAreUniform(t *testing.T) {
	theta := ring.FromInt64[ring.Elem32](0)
	p0, _, err := dealer.SetupSS[ring.Elem32](2000, 4, theta, rand.Reader)
	require.NoError(t, err)

	samples := make([]float64, len(p0.Instances))
	for i, inst := range p0.Instances {
		lowByte := byte(inst.RMask)
		samples[i] = float64(lowByte)
	}

	mean, err := stats.Mean(samples)
	require.NoError(t, err)
	stddev, err := stats.StandardDeviation(samples)
	require.NoError(t, err)

	const uniformMean = 127.5
	const uniformStddev = 73.9 // stddev of a discrete uniform [0,255]

	if math.Abs(mean-uniformMean) > 12 {
		t.Fatalf("sample mean %.2f too far from uniform mean %.2f", mean, uniformMean)
	}
	if math.Abs(stddev-uniformStddev) > 12 {
		t.Fatalf("sample stddev %.2f too far from uniform stddev %.2f", stddev, uniformStddev)
	}
}
