package supervisor

import (
	"encoding/json"
	"time"

	"boscoin.io/benor/lib/common"
	"boscoin.io/benor/lib/consensus"
	"boscoin.io/benor/lib/storage"
	"boscoin.io/benor/lib/voting"
)

const reportPrefix = "report-"

// Report is the outcome of one simulation.
type Report struct {
	RunID         string                  `json:"run_id" yaml:"run_id"`
	Policy        *voting.ThresholdPolicy `json:"policy" yaml:"-"`
	Transport     string                  `json:"transport" yaml:"transport"`
	FaultyNodes   []int                   `json:"faulty_nodes" yaml:"faulty_nodes"`
	InitialValues []voting.Value          `json:"initial_values" yaml:"initial_values"`
	States        []consensus.NodeState   `json:"states" yaml:"states"`
	AllDecided    bool                    `json:"all_decided" yaml:"all_decided"`
	Started       string                  `json:"started" yaml:"started"`
	Elapsed       string                  `json:"elapsed" yaml:"elapsed"`
}

// Report takes the current states of the nodes.
func (s *Supervisor) Report(started time.Time) Report {
	var faulty []int
	for i := 0; i < s.policy.Validators(); i++ {
		if s.faulty[i] {
			faulty = append(faulty, i)
		}
	}

	return Report{
		RunID:         s.runID,
		Policy:        s.policy,
		Transport:     s.conf.Transport,
		FaultyNodes:   faulty,
		InitialValues: s.InitialValues(),
		States:        s.States(),
		AllDecided:    s.AllDecided(),
		Started:       common.FormatISO8601(started.UTC()),
		Elapsed:       time.Since(started).String(),
	}
}

func (r Report) Serialize() ([]byte, error) {
	return json.Marshal(r)
}

// Key orders the reports by their start time.
func (r Report) Key() string {
	return reportPrefix + r.Started + "-" + r.RunID
}

func (r Report) Save(st *storage.LevelDBBackend) error {
	return st.New(r.Key(), r)
}

// LoadReports returns the last `limit` reports, the latest first; a zero
// limit loads every report.
func LoadReports(st *storage.LevelDBBackend, limit uint64) (reports []Report, err error) {
	err = st.Walk(reportPrefix, storage.NewWalkOption(limit, true), func(k, v []byte) (bool, error) {
		var r Report
		if err := json.Unmarshal(v, &r); err != nil {
			return false, err
		}
		reports = append(reports, r)

		return true, nil
	})

	return
}
