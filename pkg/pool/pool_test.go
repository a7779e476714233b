package pool_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/funshade/pkg/pool"
)

func TestRunExecutesAll(t *testing.T) {
	var count int64
	err := pool.Run(context.Background(), 100, func(ctx context.Context, i int) error {
		atomic.AddInt64(&count, 1)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), count)
}

func TestRunPropagatesError(t *testing.T) {
	sentinel := errors.New("boom")
	err := pool.Run(context.Background(), 10, func(ctx context.Context, i int) error {
		if i == 3 {
			return sentinel
		}
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}

func TestMapPreservesOrder(t *testing.T) {
	in := []int{0, 1, 2, 3, 4, 5, 6, 7}
	out, err := pool.Map(context.Background(), in, func(ctx context.Context, i int, v int) (int, error) {
		return v * v, nil
	})
	require.NoError(t, err)
	for i, v := range in {
		assert.Equal(t, v*v, out[i])
	}
}
