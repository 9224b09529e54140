package errors

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestErrorsClone(t *testing.T) {
	e := InvalidNodeIndex
	e0 := InvalidNodeIndex.Clone()
	require.NotEqual(t, fmt.Sprintf("%p", e), fmt.Sprintf("%p", e0))

	{
		e0.Code = 200
		require.NotEqual(t, e.Code, e0.Code)
	}

	{
		e0.SetData("index", 9)
		require.NotEqual(t, e.Data, e0.Data)
		require.Empty(t, InvalidNodeIndex.Data)
	}
}

func TestErrorsIs(t *testing.T) {
	require.True(t, Is(InvalidNodeIndex, InvalidNodeIndex))
	require.True(t, Is(InvalidNodeIndex.Clone().SetData("index", 5), InvalidNodeIndex))
	require.False(t, Is(InvalidNodeIndex, InvalidInitialValue))
	require.False(t, Is(fmt.Errorf("plain"), InvalidNodeIndex))
	require.False(t, Is(nil, InvalidNodeIndex))
}

func TestErrorsRLP(t *testing.T) {
	{
		_, err := rlp.EncodeToBytes(UnsafeThresholdPolicy)
		require.NoError(t, err)
	}

	{ // with `SetData()`, the rlp encoded value must be different
		encoded, err := rlp.EncodeToBytes(UnsafeThresholdPolicy)
		require.NoError(t, err)

		e := UnsafeThresholdPolicy.Clone()
		e.SetData("nodes", "three")
		encoded0, err := rlp.EncodeToBytes(e)
		require.NoError(t, err)
		require.NotEqual(t, encoded, encoded0)
	}
}
