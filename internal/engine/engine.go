// Package engine drives a scheduling policy over a fixed process set one
// simulated tick at a time and records the resulting timeline and metrics.
package engine

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jar0582/schedsim/internal/logging"
	"github.com/jar0582/schedsim/internal/policy"
	"github.com/jar0582/schedsim/pkg/model"
)

// Snapshot is the state handed to an Observer after every tick. The slices
// alias engine state and must be treated as read-only.
type Snapshot struct {
	Time      int
	Processes []model.Process
	Running   *model.Process
	Gantt     []model.GanttEvent
}

// Observer is called synchronously after every tick. Returning an error
// stops the run; the engine then reports ErrAborted and no result.
type Observer func(s *Snapshot) error

// Options selects the policy for one run.
type Options struct {
	Policy   string
	Quantum  int
	Observer Observer
}

// Engine runs simulations against a policy registry.
type Engine struct {
	registry *policy.Registry
	logger   logrus.FieldLogger
}

// New creates an engine. A nil logger discards output.
func New(reg *policy.Registry, logger logrus.FieldLogger) *Engine {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Engine{registry: reg, logger: logger}
}

// run is the mutable state of one simulation.
type run struct {
	now        int
	table      []model.Process
	running    *model.Process
	policy     policy.Policy
	terminated int
	gantt      []model.GanttEvent
	busyTicks  int
	log        logrus.FieldLogger
}

// Run simulates processes under opts and returns the terminal result. The
// input slice is copied; the caller's records are not modified. Invalid
// input or an unknown policy fails before the first tick.
func (e *Engine) Run(processes []model.Process, opts Options) (*model.Result, error) {
	table, err := prepareTable(processes)
	if err != nil {
		return nil, err
	}

	pol, err := e.registry.Create(opts.Policy, opts.Quantum)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	r := &run{
		table:  table,
		policy: pol,
		log: e.logger.WithFields(logrus.Fields{
			"run_id": runID,
			"policy": pol.Name(),
		}),
	}

	r.log.WithField("processes", len(table)).Info("simulation started")
	for r.terminated < len(r.table) {
		if err := r.tick(); err != nil {
			r.log.WithError(err).WithField("time", r.now).Error("simulation failed")
			return nil, err
		}
		r.now++
		if opts.Observer != nil {
			snap := &Snapshot{Time: r.now, Processes: r.table, Running: r.running, Gantt: r.gantt}
			if err := opts.Observer(snap); err != nil {
				r.log.WithError(err).WithField("time", r.now).Warn("simulation aborted by observer")
				return nil, fmt.Errorf("%w at tick %d: %v", model.ErrAborted, r.now, err)
			}
		}
	}
	r.log.WithField("time", r.now).Info("simulation finished")

	res := r.result()
	res.RunID = runID
	res.Policy = pol.Name()
	if policy.UsesQuantum(pol.Name()) {
		res.Quantum = max(opts.Quantum, 1)
	}
	return res, nil
}

// prepareTable validates and copies the input, resets every record to NEW
// and orders the table by arrival, breaking ties by input position.
func prepareTable(processes []model.Process) ([]model.Process, error) {
	if len(processes) == 0 {
		return nil, model.ErrNoProcesses
	}

	table := make([]model.Process, len(processes))
	copy(table, processes)

	seen := make(map[string]bool, len(table))
	for i := range table {
		if err := table[i].Validate(); err != nil {
			return nil, err
		}
		if seen[table[i].Name] {
			return nil, fmt.Errorf("%w: duplicate process name %q", model.ErrConfig, table[i].Name)
		}
		seen[table[i].Name] = true
		table[i].Reset()
	}

	sort.SliceStable(table, func(i, j int) bool {
		if table[i].ArrivalTime != table[j].ArrivalTime {
			return table[i].ArrivalTime < table[j].ArrivalTime
		}
		return table[i].OriginalIndex < table[j].OriginalIndex
	})
	return table, nil
}

// transition moves p to next, reporting lifecycle violations by the policy.
func (r *run) transition(p *model.Process, next model.ProcessState) error {
	if err := p.TransitionTo(next); err != nil {
		return fmt.Errorf("%w at tick %d", err, r.now)
	}
	return nil
}

func (r *run) tick() error {
	t := r.now

	// Admission
	for i := range r.table {
		p := &r.table[i]
		if p.State == model.StateNew && p.ArrivalTime == t {
			if err := r.transition(p, model.StateReady); err != nil {
				return err
			}
			r.policy.AddProcess(p)
			r.log.WithFields(logrus.Fields{"time": t, "process": p.Name}).Debug("process arrived")
		}
	}

	// Quantum expiry
	if r.running != nil {
		q := r.policy.Quantum(r.running)
		if q > 0 && r.running.CurrentQuantumRuntime >= q {
			r.log.WithFields(logrus.Fields{"time": t, "process": r.running.Name}).Debug("quantum expired")
			if err := r.transition(r.running, model.StateReady); err != nil {
				return err
			}
			r.policy.DemoteProcess(r.running)
			r.running = nil
		}
	}

	// Reschedule
	if r.policy.NeedsReschedule(r.running) {
		previous := r.running
		if previous != nil {
			if err := r.transition(previous, model.StateReady); err != nil {
				return err
			}
			r.policy.AddProcess(previous)
		}
		r.running = r.policy.NextProcess()
		if r.running != nil {
			if err := r.transition(r.running, model.StateRunning); err != nil {
				return err
			}
			if r.running != previous {
				r.running.CurrentQuantumRuntime = 0
				fields := logrus.Fields{"time": t, "process": r.running.Name}
				if !r.running.Started() {
					r.running.MarkStarted(t)
					fields["response"] = r.running.ResponseTime
				}
				if previous != nil {
					fields["preempted"] = previous.Name
				}
				r.log.WithFields(fields).Debug("process dispatched")
			}
		}
	}

	// Execution
	if r.running == nil {
		r.record(t, model.IdleName)
		return nil
	}
	p := r.running
	r.record(t, p.Name)
	r.busyTicks++
	p.RemainingBurstTime--
	p.ExecutedTime++
	p.CurrentQuantumRuntime++
	p.LastExecutedTime = t + 1
	r.policy.Tick()

	if p.RemainingBurstTime == 0 {
		if err := r.transition(p, model.StateTerminated); err != nil {
			return err
		}
		p.MarkFinished(t + 1)
		r.terminated++
		r.running = nil
		r.log.WithFields(logrus.Fields{
			"time":       t + 1,
			"process":    p.Name,
			"turnaround": p.TurnaroundTime,
			"waiting":    p.WaitingTime,
		}).Debug("process finished")
	}
	return nil
}

// record appends a Gantt event unless the CPU holder is unchanged.
func (r *run) record(t int, name string) {
	if n := len(r.gantt); n > 0 && r.gantt[n-1].Process == name {
		return
	}
	r.gantt = append(r.gantt, model.GanttEvent{Time: t, Process: name})
}
