package voting

import (
	"encoding/json"

	"boscoin.io/benor/lib/errors"
)

// ThresholdPolicy holds the size of the network, `N`, and the number of
// tolerated faulty nodes, `F`.
type ThresholdPolicy struct {
	validators int
	faulty     int
}

func NewThresholdPolicy(validators, faulty int) (*ThresholdPolicy, error) {
	if validators < 1 || faulty < 0 {
		return nil, errors.InvalidThresholdPolicy.Clone().
			SetData("validators", validators).
			SetData("faulty", faulty)
	}
	if validators <= 3*faulty {
		return nil, errors.UnsafeThresholdPolicy.Clone().
			SetData("validators", validators).
			SetData("faulty", faulty)
	}

	return &ThresholdPolicy{validators: validators, faulty: faulty}, nil
}

func (p *ThresholdPolicy) Validators() int {
	return p.validators
}

func (p *ThresholdPolicy) Faulty() int {
	return p.faulty
}

// Quorum is the number of proposals or votes a node waits for before it
// acts on a round, `N - F`.
func (p *ThresholdPolicy) Quorum() int {
	return p.validators - p.faulty
}

// Decision is the number of identical votes needed to decide, `F + 1`.
func (p *ThresholdPolicy) Decision() int {
	return p.faulty + 1
}

func (p *ThresholdPolicy) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"validators": p.validators,
		"faulty":     p.faulty,
		"quorum":     p.Quorum(),
		"decision":   p.Decision(),
	})
}

// UnmarshalJSON reads what `MarshalJSON` writes; the quorum and the decision
// are derived again.
func (p *ThresholdPolicy) UnmarshalJSON(b []byte) error {
	var m struct {
		Validators int `json:"validators"`
		Faulty     int `json:"faulty"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}

	policy, err := NewThresholdPolicy(m.Validators, m.Faulty)
	if err != nil {
		return err
	}
	*p = *policy

	return nil
}
