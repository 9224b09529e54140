package storage

import (
	"fmt"
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/benor/lib/errors"
)

type record struct {
	Name  string
	Count int
}

func TestNewConfigFromString(t *testing.T) {
	{
		c, err := NewConfigFromString("memory://")
		require.NoError(t, err)
		require.Equal(t, "memory", c.Scheme)
	}

	{
		c, err := NewConfigFromString("file:///tmp/benor")
		require.NoError(t, err)
		require.Equal(t, "file", c.Scheme)
		require.Equal(t, "/tmp/benor", c.Path)
	}

	{
		c, err := NewConfigFromString("file://db")
		require.NoError(t, err)
		require.Equal(t, "db", c.Path)
	}

	for _, s := range []string{"file://", "redis://localhost", "::"} {
		_, err := NewConfigFromString(s)
		require.True(t, errors.Is(err, errors.InvalidStorage), s)
	}
}

func TestLevelDBBackendNewGet(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	require.NoError(t, st.New("r1", record{Name: "showme", Count: 1}))
	require.True(t, errors.Is(st.New("r1", record{}), errors.StorageRecordExists))

	exists, err := st.Has("r1")
	require.NoError(t, err)
	require.True(t, exists)

	var r record
	require.NoError(t, st.Get("r1", &r))
	require.Equal(t, record{Name: "showme", Count: 1}, r)

	require.True(t, errors.Is(st.Get("r2", &r), errors.StorageRecordNotFound))

	require.NoError(t, st.Remove("r1"))
	require.True(t, errors.Is(st.Remove("r1"), errors.StorageRecordNotFound))
}

func TestLevelDBBackendWalk(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, st.New(fmt.Sprintf("a-%d", i), record{Count: i}))
	}
	require.NoError(t, st.New("b-0", record{}))

	walk := func(option *WalkOption) (keys []string) {
		err := st.Walk("a-", option, func(k, v []byte) (bool, error) {
			keys = append(keys, string(k))
			return true, nil
		})
		require.NoError(t, err)
		return
	}

	require.Equal(t, []string{"a-0", "a-1", "a-2", "a-3", "a-4"}, walk(nil))
	require.Equal(t, []string{"a-4", "a-3"}, walk(NewWalkOption(2, true)))
	require.Equal(t, []string{"a-0", "a-1", "a-2"}, walk(NewWalkOption(3, false)))
}

func TestLevelDBBackendFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "benor-storage")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	config, err := NewConfigFromString("file://" + dir)
	require.NoError(t, err)

	st, err := NewStorage(config)
	require.NoError(t, err)
	require.NoError(t, st.New("r1", record{Name: "kept"}))
	require.NoError(t, st.Close())

	st, err = NewStorage(config)
	require.NoError(t, err)
	defer st.Close()

	var r record
	require.NoError(t, st.Get("r1", &r))
	require.Equal(t, "kept", r.Name)
}
