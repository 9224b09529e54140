package observer

import (
	"fmt"

	"github.com/GianlucaGuarini/go-observable"
)

// DecisionObserver is triggered whenever a node reaches its decision.
var DecisionObserver = observable.New()

const (
	EventDecided = "decided"
)

// DecisionEvent is the name of the event triggered for the decisions of
// one simulation; the callbacks receive `(node index int, x voting.Value)`.
func DecisionEvent(runID string) string {
	return fmt.Sprintf("%s-%s", EventDecided, runID)
}
