package voting

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueJSONIsReferenceCompatible(t *testing.T) {
	b, err := json.Marshal([]Value{Zero, One, Unknown})
	require.NoError(t, err)
	require.Equal(t, `[0,1,"?"]`, string(b))

	var xs []Value
	require.NoError(t, json.Unmarshal([]byte(`[1, 0, "?", 2, null, "1", true]`), &xs))
	require.Equal(t, []Value{One, Zero, Unknown, Unknown, Unknown, One, Unknown}, xs)
}

func TestValueUnmarshalBrokenJSON(t *testing.T) {
	var v Value
	require.Error(t, json.Unmarshal([]byte(`{`), &v))
}

func TestValueFromString(t *testing.T) {
	v, err := ValueFromString("1")
	require.NoError(t, err)
	require.Equal(t, One, v)

	_, err = ValueFromString("yes")
	require.Error(t, err)
}

func TestFromBit(t *testing.T) {
	require.Equal(t, Zero, FromBit(0))
	require.Equal(t, One, FromBit(1))
	require.Equal(t, Zero, FromBit(2))
}

func TestMostCommon(t *testing.T) {
	cases := []struct {
		name     string
		xs       []Value
		expected Value
		found    bool
	}{
		{"zero majority", []Value{Zero, Zero, One}, Zero, true},
		{"one majority", []Value{One, Unknown, One, Zero}, One, true},
		{"tie", []Value{Zero, One}, Unknown, false},
		{"unknown does not break a tie", []Value{Zero, One, Unknown, Unknown}, Unknown, false},
		{"all unknown", []Value{Unknown, Unknown, Unknown}, Unknown, false},
		{"empty", nil, Unknown, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, found := MostCommon(c.xs)
			require.Equal(t, c.found, found)
			require.Equal(t, c.expected, v)
		})
	}
}

func TestCountSkipsUnknown(t *testing.T) {
	zero, one := Count([]Value{Zero, Unknown, One, One, Unknown})
	require.Equal(t, 1, zero)
	require.Equal(t, 2, one)
}
