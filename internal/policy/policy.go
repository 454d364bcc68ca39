// Package policy implements the CPU scheduling policies driven by the
// engine. A policy owns only its ready structure; process records belong
// to the engine and are held by reference.
package policy

import (
	"cmp"

	"github.com/jar0582/schedsim/pkg/model"
)

// Policy decides which ready process runs next.
type Policy interface {
	// Name is the registry key of the policy.
	Name() string
	// AddProcess inserts a READY process into the ready structure.
	AddProcess(p *model.Process)
	// NextProcess removes and returns the process to run next, or nil.
	NextProcess() *model.Process
	// Tick is called once for every tick the CPU executes a process.
	Tick()
	// NeedsReschedule reports whether the engine should reconsider who
	// holds the CPU. running is nil when the CPU is idle.
	NeedsReschedule(running *model.Process) bool
	// Quantum bounds one uninterrupted run of p. Zero means no bound.
	Quantum(p *model.Process) int
	// DemoteProcess requeues a running process whose quantum expired.
	DemoteProcess(p *model.Process)
}

// coerceQuantum applies the rule shared by quantum-consuming policies.
func coerceQuantum(q int) int {
	if q <= 0 {
		return 1
	}
	return q
}

func byArrival(a, b *model.Process) int {
	return cmp.Or(
		cmp.Compare(a.ArrivalTime, b.ArrivalTime),
		cmp.Compare(a.OriginalIndex, b.OriginalIndex),
	)
}

// byLeastRecentlyExecuted ranks the process that ran longer ago first.
func byLeastRecentlyExecuted(a, b *model.Process) int {
	return cmp.Compare(a.LastExecutedTime, b.LastExecutedTime)
}
