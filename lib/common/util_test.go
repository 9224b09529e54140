package common

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetUniqueIDFromDate(t *testing.T) {
	a, b := GetUniqueIDFromDate(), GetUniqueIDFromDate()
	require.NotEqual(t, a, b)
	require.Equal(t, byte('1'), a[14])
}

func TestGetENV(t *testing.T) {
	defer os.Unsetenv("BENOR_TEST_INT")
	defer os.Unsetenv("BENOR_TEST_DURATION")

	require.Equal(t, "default", GetENVValue("BENOR_TEST_VALUE", "default"))
	require.Equal(t, 3, GetENVInt("BENOR_TEST_INT", 3))

	os.Setenv("BENOR_TEST_INT", " 9 ")
	require.Equal(t, 9, GetENVInt("BENOR_TEST_INT", 3))

	os.Setenv("BENOR_TEST_DURATION", "1m")
	require.Equal(t, time.Minute, GetENVDuration("BENOR_TEST_DURATION", time.Second))

	os.Setenv("BENOR_TEST_DURATION", "soon")
	require.Equal(t, time.Second, GetENVDuration("BENOR_TEST_DURATION", time.Second))
}
