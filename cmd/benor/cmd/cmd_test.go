package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	benorcommon "boscoin.io/benor/lib/common"
	"boscoin.io/benor/lib/node/supervisor"
	"boscoin.io/benor/lib/storage"
	"boscoin.io/benor/lib/version"
	"boscoin.io/benor/lib/voting"
)

func TestSimulate(t *testing.T) {
	c := benorcommon.NewConfig()
	c.Nodes = 4
	c.Faulty = 1
	c.Transport = benorcommon.TransportMemory

	s, err := supervisor.NewSupervisor(c, []int{3}, []voting.Value{voting.One, voting.One, voting.One})
	require.NoError(t, err)
	defer s.Close()

	result, err := simulate(context.Background(), s, 10*time.Second)
	require.NoError(t, err)

	require.Equal(t, s.RunID(), result.RunID)
	require.Equal(t, []voting.Value{voting.One, voting.One, voting.One, voting.Unknown}, result.InitialValues)
	require.Equal(t, 4, len(result.States))
	for _, state := range result.States[:3] {
		require.True(t, state.Killed)
		require.True(t, state.IsDecided())
		require.Equal(t, voting.One, *state.X)
	}
	require.Nil(t, result.States[3].X)
}

func TestGetState(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/getState" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"killed":false,"x":1,"decided":true,"k":2}`))
	})
	server := httptest.NewServer(h2c.NewHandler(handler, &http2.Server{}))
	defer server.Close()

	state, err := getState(server.URL)
	require.NoError(t, err)
	require.False(t, state.Killed)
	require.Equal(t, voting.One, *state.X)
	require.True(t, *state.Decided)
	require.Equal(t, uint64(2), *state.K)
}

func TestGetStateNotFound(t *testing.T) {
	server := httptest.NewServer(h2c.NewHandler(http.NotFoundHandler(), &http2.Server{}))
	defer server.Close()

	_, err := getState(server.URL)
	require.Error(t, err)
}

func TestHistory(t *testing.T) {
	dir, err := ioutil.TempDir("", "benor-history")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	config, err := storage.NewConfigFromString("file://" + dir)
	require.NoError(t, err)

	c := benorcommon.NewConfig()
	c.Coin = benorcommon.CoinSeeded

	var runIDs []string
	for i := 0; i < 2; i++ {
		s, err := supervisor.NewSupervisor(c, nil, nil)
		require.NoError(t, err)

		report, err := simulate(context.Background(), s, 10*time.Second)
		s.Close()
		require.NoError(t, err)

		st, err := storage.NewStorage(config)
		require.NoError(t, err)
		require.NoError(t, report.Save(st))
		require.NoError(t, st.Close())

		runIDs = append(runIDs, report.RunID)
		time.Sleep(5 * time.Millisecond)
	}

	reports, err := loadHistory(config, 0)
	require.NoError(t, err)
	require.Equal(t, 2, len(reports))
	require.Equal(t, runIDs[1], reports[0].RunID)
	require.Equal(t, runIDs[0], reports[1].RunID)
	require.True(t, reports[0].AllDecided)
	require.Equal(t, 4, reports[0].Policy.Validators())
}

func TestPrintVersion(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, printVersion("text", &b))
	require.Equal(t, version.ToDetailVersion()+"\n", b.String())

	b.Reset()
	require.NoError(t, printVersion("json", &b))

	var info version.Info
	require.NoError(t, json.Unmarshal(b.Bytes(), &info))
	require.Equal(t, version.GetInfo(), info)

	b.Reset()
	require.NoError(t, printVersion("yaml", &b))
	require.Contains(t, b.String(), "version: "+version.Version)

	require.Error(t, printVersion("xml", &b))
}
