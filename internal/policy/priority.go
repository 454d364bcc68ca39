package policy

import (
	"cmp"

	"github.com/jar0582/schedsim/internal/container"
	"github.com/jar0582/schedsim/pkg/model"
)

// Priority runs the highest priority value first, non-preemptively. Ties go
// to the earliest arrival.
type Priority struct {
	ready *container.Heap[*model.Process]
}

func NewPriority() *Priority {
	return &Priority{ready: container.NewMaxHeap(comparePriority)}
}

// comparePriority orders a above b when a has the higher priority or, on a
// tie, arrived first.
func comparePriority(a, b *model.Process) int {
	return cmp.Or(cmp.Compare(a.Priority, b.Priority), -byArrival(a, b))
}

func (pr *Priority) Name() string { return "priority" }

func (pr *Priority) AddProcess(p *model.Process) { pr.ready.Push(p) }

func (pr *Priority) NextProcess() *model.Process {
	p, _ := pr.ready.Pop()
	return p
}

func (pr *Priority) Tick() {}

func (pr *Priority) NeedsReschedule(running *model.Process) bool { return running == nil }

func (pr *Priority) Quantum(*model.Process) int { return 0 }

func (pr *Priority) DemoteProcess(p *model.Process) { pr.AddProcess(p) }
