package policy

import (
	"cmp"

	"github.com/jar0582/schedsim/internal/container"
	"github.com/jar0582/schedsim/pkg/model"
)

// SRT (shortest remaining time) preempts the running process whenever a
// ready one needs strictly fewer ticks to finish.
type SRT struct {
	ready *container.Heap[*model.Process]
}

func NewSRT() *SRT {
	return &SRT{ready: container.NewMinHeap(compareSRT)}
}

func compareSRT(a, b *model.Process) int {
	return cmp.Or(
		cmp.Compare(a.RemainingBurstTime, b.RemainingBurstTime),
		byLeastRecentlyExecuted(a, b),
		byArrival(a, b),
	)
}

func (s *SRT) Name() string { return "srt" }

func (s *SRT) AddProcess(p *model.Process) { s.ready.Push(p) }

func (s *SRT) NextProcess() *model.Process {
	p, _ := s.ready.Pop()
	return p
}

func (s *SRT) Tick() {}

func (s *SRT) NeedsReschedule(running *model.Process) bool {
	if running == nil || running.State.IsTerminal() {
		return true
	}
	shortest, ok := s.ready.Peek()
	return ok && shortest.RemainingBurstTime < running.RemainingBurstTime
}

func (s *SRT) Quantum(*model.Process) int { return 0 }

func (s *SRT) DemoteProcess(p *model.Process) { s.AddProcess(p) }
