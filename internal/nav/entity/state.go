package entity

// Phase is the router state machine position.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseNavigating
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseNavigating:
		return "navigating"
	default:
		return "unknown"
	}
}

// NavigationState is the last settled navigation plus the live phase.
type NavigationState struct {
	CurrentPath  string
	CurrentRoute *Route
	Phase        Phase
	// Seq counts navigations started so far.
	Seq uint64
}
