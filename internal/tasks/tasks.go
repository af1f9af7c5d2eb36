// package tasks implements long-running offline-cache operations.
//
// The core abstraction is PinEngine, which pins batches of guides for
// offline viewing and refreshes existing pins after connectivity returns.
// Operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers.
package tasks

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	GuideID string // Guide being processed, when applicable
}

// Operation phase enumeration
type Phase int

const (
	ResolveGuides Phase = iota
	PinGuides
	RefreshPins
	Done
)

func (p Phase) String() string {
	switch p {
	case ResolveGuides:
		return "resolve_guides"
	case PinGuides:
		return "pin_guides"
	case RefreshPins:
		return "refresh_pins"
	case Done:
		return "done"
	default:
		return ""
	}
}

// PinRunResult contains all data from a bulk pin operation.
type PinRunResult struct {
	Requested int      // Guide ids requested
	Pinned    int      // Pins written successfully
	Missing   []string // Ids with no guide in the master store
	Failed    []string // Ids whose pin write failed
}
