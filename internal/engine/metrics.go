package engine

import "github.com/jar0582/schedsim/pkg/model"

// result builds the terminal result. Averages cover terminated processes
// only and are zero when none finished.
func (r *run) result() *model.Result {
	res := &model.Result{
		Processes: append([]model.Process(nil), r.table...),
		Gantt:     append([]model.GanttEvent(nil), r.gantt...),
		TotalTime: r.now,
	}

	var turnaround, waiting, response, done int
	for i := range r.table {
		p := &r.table[i]
		if p.State != model.StateTerminated {
			continue
		}
		turnaround += p.TurnaroundTime
		waiting += p.WaitingTime
		response += p.ResponseTime
		done++
	}
	if done > 0 {
		res.AverageTurnaroundTime = float64(turnaround) / float64(done)
		res.AverageWaitingTime = float64(waiting) / float64(done)
		res.AverageResponseTime = float64(response) / float64(done)
	}
	if r.now > 0 {
		res.CPUUtilization = float64(r.busyTicks) / float64(r.now) * 100
		res.Throughput = float64(done) / float64(r.now)
	}
	return res
}
