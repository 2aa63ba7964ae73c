package reconcile

import "github.com/nstrayer/aisle-list/internal/model"

// Phase identifies where a reconciliation cycle currently stands.
type Phase int

// Reconciliation phases.
const (
	// Idle means no cycle is running and nothing is pending.
	Idle Phase = iota
	// Checking means a verification request is in flight.
	Checking
	// Suggesting means verification succeeded and suggestions await a
	// user decision.
	Suggesting
	// Failed means the last verification cycle failed.
	Failed
)

// String returns the phase name for logging.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Checking:
		return "checking"
	case Suggesting:
		return "suggesting"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of the reconciler. Suggestions is populated only
// in the Suggesting phase, Reason only in the Failed phase.
type State struct {
	Reason      string
	Suggestions []model.Suggestion
	Phase       Phase
}
