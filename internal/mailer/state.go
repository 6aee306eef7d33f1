package mailer

// State is the position of an Orchestrator in a single dispatch.
type State int

const (
	StateIdle State = iota
	StateAuthenticating
	StateDispatching
	StateLogging
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAuthenticating:
		return "authenticating"
	case StateDispatching:
		return "dispatching"
	case StateLogging:
		return "logging"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
