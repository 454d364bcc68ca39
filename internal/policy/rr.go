package policy

import (
	"github.com/jar0582/schedsim/internal/container"
	"github.com/jar0582/schedsim/pkg/model"
)

// RoundRobin rotates ready processes in arrival order, granting each at most
// quantum ticks per dispatch.
type RoundRobin struct {
	ready   *container.Queue[*model.Process]
	quantum int
}

// NewRoundRobin creates a round robin policy. Non-positive quanta become 1.
func NewRoundRobin(quantum int) *RoundRobin {
	return &RoundRobin{
		ready:   container.NewQueue[*model.Process](),
		quantum: coerceQuantum(quantum),
	}
}

func (rr *RoundRobin) Name() string { return "rr" }

func (rr *RoundRobin) AddProcess(p *model.Process) { rr.ready.Enqueue(p) }

func (rr *RoundRobin) NextProcess() *model.Process {
	p, _ := rr.ready.Dequeue()
	return p
}

func (rr *RoundRobin) Tick() {}

func (rr *RoundRobin) NeedsReschedule(running *model.Process) bool {
	return running == nil || running.CurrentQuantumRuntime >= rr.quantum
}

func (rr *RoundRobin) Quantum(*model.Process) int { return rr.quantum }

// DemoteProcess sends p to the tail with a fresh quantum.
func (rr *RoundRobin) DemoteProcess(p *model.Process) {
	p.CurrentQuantumRuntime = 0
	rr.AddProcess(p)
}
