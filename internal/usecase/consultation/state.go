package consultation

// State is a step of a single consultation turn.
type State string

// Turn states, in the order they can be visited.
const (
	StateIdle          State = "idle"
	StateDispatching   State = "dispatching"
	StateRemoteAttempt State = "remote_attempt"
	StateRemoteSuccess State = "remote_success"
	StateRemoteFailure State = "remote_failure"
	StateLocalFallback State = "local_fallback"
	StateCompleted     State = "completed"
)

// Path tells which branch produced the answer prose.
type Path string

// Answer paths.
const (
	PathRemote Path = "remote"
	PathLocal  Path = "local"
)
