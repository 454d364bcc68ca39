package model

// IdleName marks ticks where no process held the CPU.
const IdleName = "IDLE"

// GanttEvent marks the tick at which Process took the CPU. Events are run
// length encoded: each one lasts until the next event or the end of the run.
type GanttEvent struct {
	Time    int    `json:"time"`
	Process string `json:"process"`
}

// IsIdle reports whether the event records an idle CPU.
func (e GanttEvent) IsIdle() bool {
	return e.Process == IdleName
}

// TimeSlice is a Gantt event expanded with its stop tick.
type TimeSlice struct {
	Process string `json:"process"`
	Start   int    `json:"start"`
	Stop    int    `json:"stop"`
}

// Duration returns the number of ticks covered by the slice.
func (s TimeSlice) Duration() int {
	return s.Stop - s.Start
}

// Result is the outcome of one simulation run. It is not modified after
// the engine hands it to the caller.
type Result struct {
	RunID   string `json:"run_id"`
	Policy  string `json:"policy"`
	Quantum int    `json:"quantum,omitempty"`

	Processes []Process    `json:"processes"`
	Gantt     []GanttEvent `json:"gantt"`
	TotalTime int          `json:"total_time"`

	AverageTurnaroundTime float64 `json:"average_turnaround_time"`
	AverageWaitingTime    float64 `json:"average_waiting_time"`
	AverageResponseTime   float64 `json:"average_response_time"`
	CPUUtilization        float64 `json:"cpu_utilization"`
	Throughput            float64 `json:"throughput"`
}

// Slices expands the run length encoded Gantt log into explicit spans.
func (r *Result) Slices() []TimeSlice {
	return ExpandGantt(r.Gantt, r.TotalTime)
}

// ExpandGantt converts Gantt events into time slices, closing the last one
// at end.
func ExpandGantt(events []GanttEvent, end int) []TimeSlice {
	slices := make([]TimeSlice, 0, len(events))
	for i, ev := range events {
		stop := end
		if i+1 < len(events) {
			stop = events[i+1].Time
		}
		slices = append(slices, TimeSlice{Process: ev.Process, Start: ev.Time, Stop: stop})
	}
	return slices
}

// DispatchOrder lists process names in the order they first appear on the CPU.
func (r *Result) DispatchOrder() []string {
	seen := make(map[string]bool)
	var order []string
	for _, ev := range r.Gantt {
		if ev.IsIdle() || seen[ev.Process] {
			continue
		}
		seen[ev.Process] = true
		order = append(order, ev.Process)
	}
	return order
}

// Process returns the terminal record for name, or nil.
func (r *Result) Process(name string) *Process {
	for i := range r.Processes {
		if r.Processes[i].Name == name {
			return &r.Processes[i]
		}
	}
	return nil
}
