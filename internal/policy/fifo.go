package policy

import (
	"github.com/jar0582/schedsim/internal/container"
	"github.com/jar0582/schedsim/pkg/model"
)

// FIFO dispatches processes in the order they were added and never preempts.
type FIFO struct {
	ready *container.Queue[*model.Process]
}

func NewFIFO() *FIFO {
	return &FIFO{ready: container.NewQueue[*model.Process]()}
}

func (f *FIFO) Name() string { return "fifo" }

func (f *FIFO) AddProcess(p *model.Process) { f.ready.Enqueue(p) }

func (f *FIFO) NextProcess() *model.Process {
	p, _ := f.ready.Dequeue()
	return p
}

func (f *FIFO) Tick() {}

func (f *FIFO) NeedsReschedule(running *model.Process) bool { return running == nil }

func (f *FIFO) Quantum(*model.Process) int { return 0 }

func (f *FIFO) DemoteProcess(p *model.Process) { f.AddProcess(p) }
