package model

import "fmt"

// MaxNameLength is the longest process name accepted by loaders and the engine.
const MaxNameLength = 31

// Process is a synthetic process scheduled by the simulator.
//
// Arrival, burst and priority are static inputs. Everything else is
// execution state owned by the engine for the duration of one run.
type Process struct {
	Name          string `json:"name" yaml:"name"`
	OriginalIndex int    `json:"original_index" yaml:"-"`
	ArrivalTime   int    `json:"arrival_time" yaml:"arrival_time"`
	BurstTime     int    `json:"burst_time" yaml:"burst_time"`
	Priority      int    `json:"priority" yaml:"priority"`

	State                 ProcessState `json:"state" yaml:"-"`
	RemainingBurstTime    int          `json:"remaining_burst_time" yaml:"-"`
	ExecutedTime          int          `json:"executed_time" yaml:"-"`
	CurrentQuantumRuntime int          `json:"-" yaml:"-"`
	LastExecutedTime      int          `json:"last_executed_time" yaml:"-"`

	StartTime      int `json:"start_time" yaml:"-"`
	ResponseTime   int `json:"response_time" yaml:"-"`
	FinishTime     int `json:"finish_time" yaml:"-"`
	TurnaroundTime int `json:"turnaround_time" yaml:"-"`
	WaitingTime    int `json:"waiting_time" yaml:"-"`

	// Multi-level feedback queue bookkeeping.
	CurrentQueueLevel       int `json:"queue_level" yaml:"-"`
	TimeSpentAtCurrentLevel int `json:"-" yaml:"-"`
	LastActiveTime          int `json:"-" yaml:"-"`

	started bool
}

// Validate checks the static parameters of a process.
func (p *Process) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: process at index %d has no name", ErrConfig, p.OriginalIndex)
	case len(p.Name) > MaxNameLength:
		return fmt.Errorf("%w: process name %q is longer than %d characters", ErrConfig, p.Name, MaxNameLength)
	case p.ArrivalTime < 0:
		return fmt.Errorf("%w: process %s: arrival_time cannot be negative", ErrConfig, p.Name)
	case p.BurstTime <= 0:
		return fmt.Errorf("%w: process %s: burst_time must be positive", ErrConfig, p.Name)
	case p.Priority < 0:
		return fmt.Errorf("%w: process %s: priority cannot be negative", ErrConfig, p.Name)
	}
	return nil
}

// Reset puts the process back into the NEW state with a full burst and
// every counter and metric cleared.
func (p *Process) Reset() {
	*p = Process{
		Name:               p.Name,
		OriginalIndex:      p.OriginalIndex,
		ArrivalTime:        p.ArrivalTime,
		BurstTime:          p.BurstTime,
		Priority:           p.Priority,
		State:              StateNew,
		RemainingBurstTime: p.BurstTime,
	}
}

// Started reports whether the process has ever been dispatched.
func (p *Process) Started() bool {
	return p.started
}

// TransitionTo moves the process to next, refusing moves the lifecycle
// does not allow.
func (p *Process) TransitionTo(next ProcessState) error {
	if !p.State.CanTransitionTo(next) {
		return fmt.Errorf("%w: process %s: %s -> %s", ErrInvalidTransition, p.Name, p.State, next)
	}
	p.State = next
	return nil
}

// MarkStarted records the first dispatch at tick t. Later calls are no-ops.
func (p *Process) MarkStarted(t int) {
	if p.started {
		return
	}
	p.started = true
	p.StartTime = t
	p.ResponseTime = t - p.ArrivalTime
}

// MarkFinished records completion at tick t and derives turnaround and
// waiting times. The caller moves the process to TERMINATED.
func (p *Process) MarkFinished(t int) {
	p.FinishTime = t
	p.TurnaroundTime = p.FinishTime - p.ArrivalTime
	p.WaitingTime = p.TurnaroundTime - p.BurstTime
}
