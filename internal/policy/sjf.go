package policy

import (
	"cmp"

	"github.com/jar0582/schedsim/internal/container"
	"github.com/jar0582/schedsim/pkg/model"
)

// SJF runs the ready process with the shortest total burst to completion.
// Equal bursts are served in arrival order.
type SJF struct {
	ready *container.Heap[*model.Process]
}

func NewSJF() *SJF {
	return &SJF{ready: container.NewMinHeap(compareSJF)}
}

func compareSJF(a, b *model.Process) int {
	return cmp.Or(cmp.Compare(a.BurstTime, b.BurstTime), byArrival(a, b))
}

func (s *SJF) Name() string { return "sjf" }

func (s *SJF) AddProcess(p *model.Process) { s.ready.Push(p) }

func (s *SJF) NextProcess() *model.Process {
	p, _ := s.ready.Pop()
	return p
}

func (s *SJF) Tick() {}

func (s *SJF) NeedsReschedule(running *model.Process) bool { return running == nil }

func (s *SJF) Quantum(*model.Process) int { return 0 }

func (s *SJF) DemoteProcess(p *model.Process) { s.AddProcess(p) }
