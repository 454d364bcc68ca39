package model

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig reports malformed or missing simulation input.
	ErrConfig = errors.New("invalid configuration")
	// ErrNoProcesses is returned when a run is requested with an empty process list.
	ErrNoProcesses = fmt.Errorf("%w: no processes to schedule", ErrConfig)
	// ErrPolicyNotFound is returned for an unknown policy name.
	ErrPolicyNotFound = errors.New("policy not found")
	// ErrAborted is returned when a tick observer stops a run early.
	ErrAborted = errors.New("simulation aborted")
	// ErrInvalidTransition is returned when a process is moved between
	// lifecycle states in an order the lifecycle does not allow.
	ErrInvalidTransition = errors.New("invalid state transition")
)

// LoadError describes a problem at a specific line of a process file.
type LoadError struct {
	Path string
	Line int
	Msg  string
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// Unwrap lets errors.Is match LoadError against ErrConfig.
func (e *LoadError) Unwrap() error {
	return ErrConfig
}
