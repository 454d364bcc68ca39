package policy

import (
	"github.com/jar0582/schedsim/internal/container"
	"github.com/jar0582/schedsim/pkg/model"
)

// MLFQConfig tunes the multi-level feedback queue.
type MLFQConfig struct {
	// Levels is the number of queues. Level Levels-1 has the highest priority.
	Levels int `yaml:"levels" json:"levels"`
	// AgingThreshold is how many ticks a process may wait since it was last
	// active before it is promoted one level.
	AgingThreshold int `yaml:"aging_threshold" json:"aging_threshold"`
	// AllotmentRatio multiplies a level's quantum to get the total time a
	// process may accumulate at that level.
	AllotmentRatio int `yaml:"allotment_ratio" json:"allotment_ratio"`
}

// DefaultMLFQConfig returns the stock queue layout.
func DefaultMLFQConfig() MLFQConfig {
	return MLFQConfig{
		Levels:         20,
		AgingThreshold: 10,
		AllotmentRatio: 5,
	}
}

func (c MLFQConfig) withDefaults() MLFQConfig {
	d := DefaultMLFQConfig()
	if c.Levels <= 0 {
		c.Levels = d.Levels
	}
	if c.AgingThreshold <= 0 {
		c.AgingThreshold = d.AgingThreshold
	}
	if c.AllotmentRatio <= 0 {
		c.AllotmentRatio = d.AllotmentRatio
	}
	return c
}

// MLFQ is a multi-level feedback queue. New processes enter at the level
// given by their priority. A process that uses a full quantum or exhausts
// its level allotment drops a level; one that waits past the aging
// threshold climbs a level.
type MLFQ struct {
	queues      []*container.Queue[*model.Process]
	baseQuantum int
	cfg         MLFQConfig
	now         int
	admitted    map[*model.Process]bool
}

// NewMLFQ creates the policy. Non-positive quanta become 1 and zero config
// fields take their defaults.
func NewMLFQ(quantum int, cfg MLFQConfig) *MLFQ {
	cfg = cfg.withDefaults()
	m := &MLFQ{
		queues:      make([]*container.Queue[*model.Process], cfg.Levels),
		baseQuantum: coerceQuantum(quantum),
		cfg:         cfg,
		admitted:    make(map[*model.Process]bool),
	}
	for i := range m.queues {
		m.queues[i] = container.NewQueue[*model.Process]()
	}
	return m
}

func (m *MLFQ) Name() string { return "mlfq" }

// QuantumForLevel splits the levels into four tiers: the top tier gets the
// base quantum, the bottom tier four times as much.
func (m *MLFQ) QuantumForLevel(level int) int {
	tier := level * 4 / len(m.queues)
	return m.baseQuantum * (4 - tier)
}

// AllotmentForLevel is the total time a process may spend at level.
func (m *MLFQ) AllotmentForLevel(level int) int {
	return m.QuantumForLevel(level) * m.cfg.AllotmentRatio
}

// AddProcess places a new arrival at its priority level. A process coming
// back after preemption keeps its level, but the ticks it just ran are
// charged against the level allotment.
func (m *MLFQ) AddProcess(p *model.Process) {
	if !m.admitted[p] {
		m.admitted[p] = true
		p.CurrentQueueLevel = m.clampLevel(p.Priority)
		p.TimeSpentAtCurrentLevel = 0
	} else {
		p.TimeSpentAtCurrentLevel += p.CurrentQuantumRuntime
		if p.TimeSpentAtCurrentLevel >= m.AllotmentForLevel(p.CurrentQueueLevel) {
			m.lower(p)
		}
	}
	p.CurrentQuantumRuntime = 0
	p.LastActiveTime = m.now
	m.queues[p.CurrentQueueLevel].Enqueue(p)
}

func (m *MLFQ) NextProcess() *model.Process {
	for level := len(m.queues) - 1; level >= 0; level-- {
		if p, ok := m.queues[level].Dequeue(); ok {
			return p
		}
	}
	return nil
}

// Tick advances the policy clock and ages every level below the top. Each
// queue is drained and refilled once so survivors keep their order.
func (m *MLFQ) Tick() {
	m.now++
	for level := 0; level < len(m.queues)-1; level++ {
		q := m.queues[level]
		for n := q.Size(); n > 0; n-- {
			p, _ := q.Dequeue()
			if m.now-p.LastActiveTime > m.cfg.AgingThreshold {
				p.CurrentQueueLevel = level + 1
				p.CurrentQuantumRuntime = 0
				p.TimeSpentAtCurrentLevel = 0
				p.LastActiveTime = m.now
				m.queues[level+1].Enqueue(p)
				continue
			}
			q.Enqueue(p)
		}
	}
}

func (m *MLFQ) NeedsReschedule(running *model.Process) bool {
	if running == nil {
		return true
	}
	level := running.CurrentQueueLevel
	for higher := len(m.queues) - 1; higher > level; higher-- {
		if !m.queues[higher].IsEmpty() {
			return true
		}
	}
	if running.CurrentQuantumRuntime >= m.QuantumForLevel(level) {
		return true
	}
	return running.TimeSpentAtCurrentLevel+running.CurrentQuantumRuntime >= m.AllotmentForLevel(level)
}

func (m *MLFQ) Quantum(p *model.Process) int {
	return m.QuantumForLevel(p.CurrentQueueLevel)
}

// DemoteProcess charges the finished quantum to the level allotment, drops
// the process a level if either budget is spent and requeues it.
func (m *MLFQ) DemoteProcess(p *model.Process) {
	level := p.CurrentQueueLevel
	p.TimeSpentAtCurrentLevel += p.CurrentQuantumRuntime
	p.LastActiveTime = m.now
	if p.CurrentQuantumRuntime >= m.QuantumForLevel(level) ||
		p.TimeSpentAtCurrentLevel >= m.AllotmentForLevel(level) {
		m.lower(p)
	}
	p.CurrentQuantumRuntime = 0
	m.queues[p.CurrentQueueLevel].Enqueue(p)
}

func (m *MLFQ) lower(p *model.Process) {
	if p.CurrentQueueLevel > 0 {
		p.CurrentQueueLevel--
	}
	p.TimeSpentAtCurrentLevel = 0
}

func (m *MLFQ) clampLevel(level int) int {
	switch {
	case level < 0:
		return 0
	case level >= len(m.queues):
		return len(m.queues) - 1
	}
	return level
}
