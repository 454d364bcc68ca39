package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jar0582/schedsim/internal/policy"
	"github.com/jar0582/schedsim/pkg/model"
)

const epsilon = 0.001

func newEngine() *Engine {
	return New(policy.DefaultRegistry(policy.DefaultMLFQConfig()), nil)
}

func proc(i int, name string, arrival, burst, priority int) model.Process {
	return model.Process{Name: name, OriginalIndex: i, ArrivalTime: arrival, BurstTime: burst, Priority: priority}
}

// sampleWorkload is the six process configuration shared with the policy tests.
func sampleWorkload() []model.Process {
	return []model.Process{
		proc(0, "P1", 0, 5, 3),
		proc(1, "P2", 2, 8, 1),
		proc(2, "P3", 4, 2, 0),
		proc(3, "P4", 6, 3, 2),
		proc(4, "P5", 6, 4, 1),
		proc(5, "P6", 8, 3, 0),
	}
}

func mustRun(t *testing.T, procs []model.Process, name string, quantum int) *model.Result {
	t.Helper()
	res, err := newEngine().Run(procs, Options{Policy: name, Quantum: quantum})
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func TestFIFOScenarioMetrics(t *testing.T) {
	res := mustRun(t, sampleWorkload(), "fifo", 0)

	assert.Len(t, res.Processes, 6)
	assert.InDelta(t, 12.0, res.AverageTurnaroundTime, epsilon)
	assert.InDelta(t, 7.8333, res.AverageWaitingTime, epsilon)
	assert.InDelta(t, 100.0, res.CPUUtilization, epsilon)
	assert.Equal(t, 25, res.TotalTime)
	assert.Equal(t, []string{"P1", "P2", "P3", "P4", "P5", "P6"}, res.DispatchOrder())
	assert.Equal(t, []model.GanttEvent{
		{Time: 0, Process: "P1"},
		{Time: 5, Process: "P2"},
		{Time: 13, Process: "P3"},
		{Time: 15, Process: "P4"},
		{Time: 18, Process: "P5"},
		{Time: 22, Process: "P6"},
	}, res.Gantt)
	assert.Zero(t, res.Quantum, "fifo does not report a quantum")
}

func TestNonPreemptiveDispatchOrders(t *testing.T) {
	tests := []struct {
		policy string
		want   []string
	}{
		{"fifo", []string{"P1", "P2", "P3", "P4", "P5", "P6"}},
		{"lifo", []string{"P1", "P3", "P5", "P6", "P4", "P2"}},
		{"sjf", []string{"P1", "P3", "P4", "P6", "P5", "P2"}},
		{"priority", []string{"P1", "P2", "P4", "P5", "P3", "P6"}},
	}
	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			res := mustRun(t, sampleWorkload(), tt.policy, 0)
			assert.Equal(t, tt.want, res.DispatchOrder())
			assert.Len(t, res.Gantt, 6, "non-preemptive runs are one slice per process")
		})
	}
}

func TestRoundRobinRotation(t *testing.T) {
	procs := []model.Process{
		proc(0, "A", 0, 5, 0),
		proc(1, "B", 0, 5, 0),
		proc(2, "C", 0, 5, 0),
	}
	res := mustRun(t, procs, "rr", 2)

	assert.Equal(t, []model.GanttEvent{
		{Time: 0, Process: "A"}, {Time: 2, Process: "B"}, {Time: 4, Process: "C"},
		{Time: 6, Process: "A"}, {Time: 8, Process: "B"}, {Time: 10, Process: "C"},
		{Time: 12, Process: "A"}, {Time: 13, Process: "B"}, {Time: 14, Process: "C"},
	}, res.Gantt)
	for _, s := range res.Slices() {
		assert.LessOrEqual(t, s.Duration(), 2)
	}
	assert.InDelta(t, 14.0, res.AverageTurnaroundTime, epsilon)
	assert.InDelta(t, 9.0, res.AverageWaitingTime, epsilon)
	assert.Equal(t, 2, res.Quantum)
}

func TestRoundRobinQuantumBoundOnSample(t *testing.T) {
	const quantum = 3
	longest := 0
	current, streak := "", 0
	observer := func(s *Snapshot) error {
		ready := 0
		for i := range s.Processes {
			if s.Processes[i].State == model.StateReady {
				ready++
			}
		}
		last := s.Gantt[len(s.Gantt)-1].Process
		if last == current {
			streak++
		} else {
			current, streak = last, 1
		}
		if ready > 0 && streak > longest {
			longest = streak
		}
		return nil
	}
	_, err := newEngine().Run(sampleWorkload(), Options{Policy: "rr", Quantum: quantum, Observer: observer})
	require.NoError(t, err)
	assert.LessOrEqual(t, longest, quantum)
}

func TestRoundRobinCoercesQuantum(t *testing.T) {
	res := mustRun(t, sampleWorkload(), "rr", 0)
	assert.Equal(t, 1, res.Quantum)
}

func TestPreemptivePriority(t *testing.T) {
	procs := []model.Process{
		proc(0, "A", 0, 4, 1),
		proc(1, "B", 1, 2, 5),
	}
	res := mustRun(t, procs, "preemptive_priority", 0)

	assert.Equal(t, []model.GanttEvent{
		{Time: 0, Process: "A"}, {Time: 1, Process: "B"}, {Time: 3, Process: "A"},
	}, res.Gantt)
	a := res.Process("A")
	require.NotNil(t, a)
	assert.Equal(t, 0, a.StartTime)
	assert.Equal(t, 0, a.ResponseTime)
	assert.Equal(t, 6, a.FinishTime)
	assert.Equal(t, 2, a.WaitingTime)
	assert.Equal(t, 1, res.Process("B").StartTime)
}

func TestShortestRemainingTime(t *testing.T) {
	procs := []model.Process{
		proc(0, "A", 0, 6, 0),
		proc(1, "B", 1, 2, 0),
	}
	res := mustRun(t, procs, "srt", 0)

	assert.Equal(t, []model.GanttEvent{
		{Time: 0, Process: "A"}, {Time: 1, Process: "B"}, {Time: 3, Process: "A"},
	}, res.Gantt)
	assert.Equal(t, 8, res.Process("A").FinishTime)
	assert.Equal(t, 0, res.Process("B").WaitingTime)
}

func TestIdleTicks(t *testing.T) {
	procs := []model.Process{
		proc(0, "A", 2, 2, 0),
		proc(1, "B", 6, 1, 0),
	}
	res := mustRun(t, procs, "fifo", 0)

	assert.Equal(t, []model.GanttEvent{
		{Time: 0, Process: model.IdleName},
		{Time: 2, Process: "A"},
		{Time: 4, Process: model.IdleName},
		{Time: 6, Process: "B"},
	}, res.Gantt)
	assert.Equal(t, 7, res.TotalTime)
	assert.InDelta(t, 300.0/7.0, res.CPUUtilization, epsilon)
	assert.InDelta(t, 2.0/7.0, res.Throughput, epsilon)
	assert.Equal(t, 0, res.Process("A").ResponseTime)
}

func TestInvariantsAcrossPolicies(t *testing.T) {
	reg := policy.DefaultRegistry(policy.DefaultMLFQConfig())
	workloads := map[string][]model.Process{
		"sample": sampleWorkload(),
		"gappy": {
			proc(0, "X", 3, 4, 2),
			proc(1, "Y", 3, 1, 9),
			proc(2, "Z", 12, 6, 0),
			proc(3, "W", 13, 2, 4),
		},
		"long": {
			proc(0, "L1", 0, 40, 0),
			proc(1, "L2", 1, 35, 19),
			proc(2, "L3", 2, 30, 10),
			proc(3, "S1", 20, 3, 5),
		},
	}

	for wlName, procs := range workloads {
		totalBurst := 0
		for _, p := range procs {
			totalBurst += p.BurstTime
		}
		for _, name := range reg.Names() {
			t.Run(wlName+"/"+name, func(t *testing.T) {
				observer := func(s *Snapshot) error {
					running := 0
					for i := range s.Processes {
						if s.Processes[i].State == model.StateRunning {
							running++
							assert.Same(t, &s.Processes[i], s.Running)
						}
					}
					assert.LessOrEqual(t, running, 1, "tick %d", s.Time)
					return nil
				}
				res, err := New(reg, nil).Run(procs, Options{Policy: name, Quantum: 2, Observer: observer})
				require.NoError(t, err)

				busy := 0
				for _, s := range res.Slices() {
					if s.Process != model.IdleName {
						busy += s.Duration()
					}
				}
				assert.Equal(t, totalBurst, busy)

				for _, p := range res.Processes {
					assert.Equal(t, model.StateTerminated, p.State, p.Name)
					assert.Zero(t, p.RemainingBurstTime)
					assert.Equal(t, p.BurstTime, p.ExecutedTime)
					assert.Equal(t, p.WaitingTime+p.BurstTime, p.TurnaroundTime, p.Name)
					assert.Equal(t, p.FinishTime-p.ArrivalTime, p.TurnaroundTime, p.Name)
					assert.Equal(t, p.StartTime-p.ArrivalTime, p.ResponseTime, p.Name)
					assert.GreaterOrEqual(t, p.WaitingTime, 0)
				}
			})
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	for _, name := range []string{"srt", "mlfq", "preemptive_priority"} {
		a := mustRun(t, sampleWorkload(), name, 2)
		b := mustRun(t, sampleWorkload(), name, 2)
		assert.Equal(t, a.Gantt, b.Gantt, name)
		assert.Equal(t, a.AverageWaitingTime, b.AverageWaitingTime, name)
		assert.NotEqual(t, a.RunID, b.RunID)
	}
}

func TestRunDoesNotMutateInput(t *testing.T) {
	procs := sampleWorkload()
	procs[0], procs[5] = procs[5], procs[0]
	before := append([]model.Process(nil), procs...)

	res := mustRun(t, procs, "sjf", 0)
	assert.Equal(t, before, procs)
	assert.Equal(t, "P1", res.Processes[0].Name, "table is sorted by arrival")
}

func TestArrivalTiesUseInputPosition(t *testing.T) {
	procs := []model.Process{
		proc(1, "second", 0, 1, 0),
		proc(0, "first", 0, 1, 0),
	}
	res := mustRun(t, procs, "fifo", 0)
	assert.Equal(t, []string{"first", "second"}, res.DispatchOrder())
}

func TestRunFailures(t *testing.T) {
	eng := newEngine()

	_, err := eng.Run(nil, Options{Policy: "fifo"})
	assert.ErrorIs(t, err, model.ErrNoProcesses)
	assert.ErrorIs(t, err, model.ErrConfig)

	res, err := eng.Run(sampleWorkload(), Options{Policy: "lottery"})
	assert.ErrorIs(t, err, model.ErrPolicyNotFound)
	assert.Nil(t, res)

	_, err = eng.Run([]model.Process{proc(0, "A", 0, 0, 0)}, Options{Policy: "fifo"})
	assert.ErrorIs(t, err, model.ErrConfig)

	_, err = eng.Run([]model.Process{proc(0, "A", 0, 1, 0), proc(1, "A", 1, 1, 0)}, Options{Policy: "fifo"})
	assert.ErrorIs(t, err, model.ErrConfig)
}

func TestObserverAbort(t *testing.T) {
	stop := errors.New("enough")
	calls := 0
	res, err := newEngine().Run(sampleWorkload(), Options{
		Policy: "fifo",
		Observer: func(s *Snapshot) error {
			calls++
			assert.Equal(t, calls, s.Time)
			if s.Time == 4 {
				return stop
			}
			return nil
		},
	})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, model.ErrAborted)
	assert.Equal(t, 4, calls)
}

// stickyPolicy keeps handing out the first process it was given, even after
// that process has finished.
type stickyPolicy struct {
	held *model.Process
}

func (s *stickyPolicy) Name() string { return "sticky" }

func (s *stickyPolicy) AddProcess(p *model.Process) {
	if s.held == nil {
		s.held = p
	}
}

func (s *stickyPolicy) NextProcess() *model.Process { return s.held }
func (s *stickyPolicy) Tick() {}
func (s *stickyPolicy) NeedsReschedule(*model.Process) bool { return true }
func (s *stickyPolicy) Quantum(*model.Process) int { return 0 }
func (s *stickyPolicy) DemoteProcess(p *model.Process) { s.AddProcess(p) }

func TestRunRejectsInvalidTransitions(t *testing.T) {
	reg := policy.NewRegistry()
	reg.Register("sticky", func(int) policy.Policy { return &stickyPolicy{} })

	procs := []model.Process{proc(0, "A", 0, 1, 0), proc(1, "B", 0, 1, 0)}
	res, err := New(reg, nil).Run(procs, Options{Policy: "sticky"})
	assert.Nil(t, res)
	require.ErrorIs(t, err, model.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "TERMINATED -> RUNNING")
	assert.Contains(t, err.Error(), "tick 1")
}

func TestMLFQTimeline(t *testing.T) {
	reg := policy.DefaultRegistry(policy.MLFQConfig{Levels: 3, AgingThreshold: 3})
	procs := []model.Process{
		proc(0, "H", 0, 12, 2),
		proc(1, "L", 0, 3, 0),
	}

	res, err := New(reg, nil).Run(procs, Options{Policy: "mlfq", Quantum: 1})
	require.NoError(t, err)

	// H spends its 2 tick quantum at level 2 and drops to level 1 (quantum 3).
	// L ages from level 0 into level 1 at tick 4, so it runs once H is
	// demoted to level 0 at tick 5. H then finishes alone.
	assert.Equal(t, []model.GanttEvent{
		{Time: 0, Process: "H"},
		{Time: 5, Process: "L"},
		{Time: 8, Process: "H"},
	}, res.Gantt)
	assert.Equal(t, 15, res.TotalTime)
	assert.Equal(t, 1, res.Quantum)

	h, l := res.Process("H"), res.Process("L")
	require.NotNil(t, h)
	require.NotNil(t, l)
	assert.Equal(t, 15, h.FinishTime)
	assert.Equal(t, 3, h.WaitingTime)
	assert.Equal(t, 0, h.CurrentQueueLevel)
	assert.Equal(t, 8, l.FinishTime)
	assert.Equal(t, 5, l.ResponseTime)
	assert.Equal(t, 5, l.WaitingTime)
	assert.Equal(t, 1, l.CurrentQueueLevel)
}
