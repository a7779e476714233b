package party_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/funshade/pkg/dealer"
	"github.com/luxfi/funshade/pkg/party"
	"github.com/luxfi/funshade/pkg/ring"
)

func TestStateIndex(t *testing.T) {
	theta := ring.FromInt64[ring.Elem32](0)
	p0, p1, err := dealer.Setup[ring.Elem32](1, 3, theta, rand.Reader)
	require.NoError(t, err)

	s0 := party.State[ring.Elem32]{Role: party.DataHolder, Instance: p0.Instances[0], Input: make([]ring.Elem32, 3)}
	s1 := party.State[ring.Elem32]{Role: party.TemplateHolder, Instance: p1.Instances[0], Input: make([]ring.Elem32, 3)}

	assert.Equal(t, 0, s0.Index())
	assert.Equal(t, 1, s1.Index())
	assert.NoError(t, s0.Validate())
}

func TestStateValidateRejectsWrongLength(t *testing.T) {
	theta := ring.FromInt64[ring.Elem32](0)
	p0, _, err := dealer.Setup[ring.Elem32](1, 3, theta, rand.Reader)
	require.NoError(t, err)

	s := party.State[ring.Elem32]{Role: party.DataHolder, Instance: p0.Instances[0], Input: make([]ring.Elem32, 2)}
	assert.Error(t, s.Validate())
}

func TestStateSSIndexAndValidate(t *testing.T) {
	theta := ring.FromInt64[ring.Elem32](0)
	p0, p1, err := dealer.SetupSS[ring.Elem32](1, 3, theta, rand.Reader)
	require.NoError(t, err)

	s0 := party.StateSS[ring.Elem32]{Role: party.DataHolder, Instance: p0.Instances[0], Value: make([]ring.Elem32, 3)}
	s1 := party.StateSS[ring.Elem32]{Role: party.TemplateHolder, Instance: p1.Instances[0], Value: make([]ring.Elem32, 3)}

	assert.Equal(t, 0, s0.Index())
	assert.Equal(t, 1, s1.Index())
	assert.NoError(t, s0.Validate())

	bad := party.StateSS[ring.Elem32]{Role: party.DataHolder, Instance: p0.Instances[0], Value: make([]ring.Elem32, 2)}
	assert.Error(t, bad.Validate())
}
