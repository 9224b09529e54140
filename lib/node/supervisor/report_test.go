package supervisor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/benor/lib/storage"
	"boscoin.io/benor/lib/voting"
)

func TestSupervisorReport(t *testing.T) {
	s := runSupervisor(t, testConfig(4, 1), []int{1}, []voting.Value{voting.Zero, voting.Zero, voting.Zero})
	defer s.Close()

	started := time.Now().Add(-time.Second)
	r := s.Report(started)

	require.Equal(t, s.RunID(), r.RunID)
	require.Equal(t, []int{1}, r.FaultyNodes)
	require.True(t, r.AllDecided)
	require.Equal(t, 4, len(r.States))
	require.Nil(t, r.States[1].X)
	require.Equal(t, voting.Zero, *r.States[0].X)
}

func TestReportsStorage(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	base := time.Date(2018, 11, 1, 9, 0, 0, 0, time.UTC)
	for i, runID := range []string{"b", "a", "c"} {
		r := Report{
			RunID:         runID,
			InitialValues: []voting.Value{voting.One},
			Started:       base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339),
		}
		require.NoError(t, r.Save(st))
	}

	reports, err := LoadReports(st, 0)
	require.NoError(t, err)
	require.Equal(t, 3, len(reports))
	require.Equal(t, "c", reports[0].RunID)
	require.Equal(t, "a", reports[1].RunID)
	require.Equal(t, "b", reports[2].RunID)
	require.Equal(t, []voting.Value{voting.One}, reports[0].InitialValues)

	reports, err = LoadReports(st, 1)
	require.NoError(t, err)
	require.Equal(t, 1, len(reports))

	// same key twice
	require.Error(t, reports[0].Save(st))
}
