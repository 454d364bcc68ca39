package policy

import (
	"cmp"

	"github.com/jar0582/schedsim/internal/container"
	"github.com/jar0582/schedsim/pkg/model"
)

// PreemptivePriority runs the highest priority value first and preempts the
// running process as soon as a strictly higher priority one is ready.
// Equal priorities rotate through the least recently executed process.
type PreemptivePriority struct {
	ready *container.Heap[*model.Process]
}

func NewPreemptivePriority() *PreemptivePriority {
	return &PreemptivePriority{ready: container.NewMaxHeap(comparePreemptivePriority)}
}

func comparePreemptivePriority(a, b *model.Process) int {
	return cmp.Or(
		cmp.Compare(a.Priority, b.Priority),
		-byLeastRecentlyExecuted(a, b),
		-byArrival(a, b),
	)
}

func (pp *PreemptivePriority) Name() string { return "preemptive_priority" }

func (pp *PreemptivePriority) AddProcess(p *model.Process) { pp.ready.Push(p) }

func (pp *PreemptivePriority) NextProcess() *model.Process {
	p, _ := pp.ready.Pop()
	return p
}

func (pp *PreemptivePriority) Tick() {}

func (pp *PreemptivePriority) NeedsReschedule(running *model.Process) bool {
	if running == nil {
		return true
	}
	best, ok := pp.ready.Peek()
	return ok && best.Priority > running.Priority
}

func (pp *PreemptivePriority) Quantum(*model.Process) int { return 0 }

func (pp *PreemptivePriority) DemoteProcess(p *model.Process) { pp.AddProcess(p) }
