package model

// ProcessState is the lifecycle state of a simulated process.
type ProcessState string

const (
	StateNew        ProcessState = "NEW"
	StateReady      ProcessState = "READY"
	StateRunning    ProcessState = "RUNNING"
	StateTerminated ProcessState = "TERMINATED"
)

// String returns the string representation of the process state.
func (s ProcessState) String() string {
	return string(s)
}

// IsTerminal returns true once the process has consumed its whole burst.
func (s ProcessState) IsTerminal() bool {
	return s == StateTerminated
}

// CanTransitionTo reports whether a process may move from s to next.
// NEW -> READY -> RUNNING, and RUNNING goes back to READY or ends in
// TERMINATED.
func (s ProcessState) CanTransitionTo(next ProcessState) bool {
	switch s {
	case StateNew:
		return next == StateReady
	case StateReady:
		return next == StateRunning
	case StateRunning:
		return next == StateReady || next == StateTerminated
	}
	return false
}
