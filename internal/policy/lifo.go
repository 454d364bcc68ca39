package policy

import (
	"github.com/jar0582/schedsim/internal/container"
	"github.com/jar0582/schedsim/pkg/model"
)

// LIFO dispatches the most recently added process first, non-preemptively.
type LIFO struct {
	ready *container.Stack[*model.Process]
}

func NewLIFO() *LIFO {
	return &LIFO{ready: container.NewStack[*model.Process]()}
}

func (l *LIFO) Name() string { return "lifo" }

func (l *LIFO) AddProcess(p *model.Process) { l.ready.Push(p) }

func (l *LIFO) NextProcess() *model.Process {
	p, _ := l.ready.Pop()
	return p
}

func (l *LIFO) Tick() {}

func (l *LIFO) NeedsReschedule(running *model.Process) bool { return running == nil }

func (l *LIFO) Quantum(*model.Process) int { return 0 }

func (l *LIFO) DemoteProcess(p *model.Process) { l.AddProcess(p) }
