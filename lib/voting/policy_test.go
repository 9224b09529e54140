package voting

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/benor/lib/errors"
)

func TestThresholdPolicy(t *testing.T) {
	p, err := NewThresholdPolicy(4, 1)
	require.NoError(t, err)
	require.Equal(t, 3, p.Quorum())
	require.Equal(t, 2, p.Decision())

	p, err = NewThresholdPolicy(10, 3)
	require.NoError(t, err)
	require.Equal(t, 7, p.Quorum())
	require.Equal(t, 4, p.Decision())

	p, err = NewThresholdPolicy(1, 0)
	require.NoError(t, err)
	require.Equal(t, 1, p.Quorum())
	require.Equal(t, 1, p.Decision())
}

func TestThresholdPolicyInvalid(t *testing.T) {
	_, err := NewThresholdPolicy(0, 0)
	require.True(t, errors.Is(err, errors.InvalidThresholdPolicy))

	_, err = NewThresholdPolicy(4, -1)
	require.True(t, errors.Is(err, errors.InvalidThresholdPolicy))

	_, err = NewThresholdPolicy(3, 1)
	require.True(t, errors.Is(err, errors.UnsafeThresholdPolicy))
}

func TestThresholdPolicyJSON(t *testing.T) {
	p, err := NewThresholdPolicy(7, 2)
	require.NoError(t, err)

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var q ThresholdPolicy
	require.NoError(t, json.Unmarshal(b, &q))
	require.Equal(t, *p, q)

	require.Error(t, json.Unmarshal([]byte(`{"validators": 3, "faulty": 1}`), &q))
}
