// Package report renders simulation input and results as plain text.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/jar0582/schedsim/pkg/model"
)

const titleWidth = 40

// Title prints title centred between two rules at least titleWidth wide.
func Title(w io.Writer, title string) {
	width := max(len(title)+4, titleWidth)
	rule := strings.Repeat("=", width)
	_, _ = fmt.Fprintf(w, "%s\n%*s%s\n%s\n", rule, (width-len(title))/2, "", title, rule)
}

// ProcessTable lists the input processes before a run.
func ProcessTable(w io.Writer, processes []model.Process) {
	_, _ = fmt.Fprintln(w, "Processes")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Arrival", "Burst", "Priority"})
	for _, p := range processes {
		table.Append([]string{
			p.Name,
			strconv.Itoa(p.ArrivalTime),
			strconv.Itoa(p.BurstTime),
			strconv.Itoa(p.Priority),
		})
	}
	table.Render()
}

// Schedule prints the per-process outcome of a run with averages in the
// footer.
func Schedule(w io.Writer, res *model.Result) {
	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Priority", "Burst", "Arrival", "Start", "Response", "Wait", "Turnaround", "Exit"})
	table.AppendBulk(scheduleRows(res.Processes))
	table.SetFooter([]string{"", "", "", "", "",
		fmt.Sprintf("Average\n%.2f", res.AverageResponseTime),
		fmt.Sprintf("Average\n%.2f", res.AverageWaitingTime),
		fmt.Sprintf("Average\n%.2f", res.AverageTurnaroundTime),
		fmt.Sprintf("Throughput\n%.2f/t", res.Throughput)})
	table.Render()
}

func scheduleRows(processes []model.Process) [][]string {
	rows := make([][]string, 0, len(processes))
	for _, p := range processes {
		rows = append(rows, []string{
			p.Name,
			strconv.Itoa(p.Priority),
			strconv.Itoa(p.BurstTime),
			strconv.Itoa(p.ArrivalTime),
			strconv.Itoa(p.StartTime),
			strconv.Itoa(p.ResponseTime),
			strconv.Itoa(p.WaitingTime),
			strconv.Itoa(p.TurnaroundTime),
			strconv.Itoa(p.FinishTime),
		})
	}
	return rows
}

// Summary prints the aggregate metrics of a run.
func Summary(w io.Writer, res *model.Result) {
	_, _ = fmt.Fprintln(w, "Performance metrics")
	_, _ = fmt.Fprintf(w, "  Policy                  : %s\n", res.Policy)
	if res.Quantum > 0 {
		_, _ = fmt.Fprintf(w, "  Quantum                 : %d\n", res.Quantum)
	}
	_, _ = fmt.Fprintf(w, "  Total time              : %s ticks\n", humanize.Comma(int64(res.TotalTime)))
	_, _ = fmt.Fprintf(w, "  Average waiting time    : %.2f\n", res.AverageWaitingTime)
	_, _ = fmt.Fprintf(w, "  Average turnaround time : %.2f\n", res.AverageTurnaroundTime)
	_, _ = fmt.Fprintf(w, "  Average response time   : %.2f\n", res.AverageResponseTime)
	_, _ = fmt.Fprintf(w, "  CPU utilization         : %.2f %%\n", res.CPUUtilization)
	_, _ = fmt.Fprintf(w, "  Throughput              : %.3f/t\n", res.Throughput)
}

// Compare tabulates the aggregate metrics of several runs over the same
// workload, one row per policy.
func Compare(w io.Writer, results []*model.Result) {
	_, _ = fmt.Fprintln(w, "Policy comparison")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Quantum", "Total", "Turnaround", "Wait", "Response", "CPU %", "Throughput"})
	for _, res := range results {
		quantum := "-"
		if res.Quantum > 0 {
			quantum = strconv.Itoa(res.Quantum)
		}
		table.Append([]string{
			res.Policy,
			quantum,
			humanize.Comma(int64(res.TotalTime)),
			fmt.Sprintf("%.2f", res.AverageTurnaroundTime),
			fmt.Sprintf("%.2f", res.AverageWaitingTime),
			fmt.Sprintf("%.2f", res.AverageResponseTime),
			fmt.Sprintf("%.2f", res.CPUUtilization),
			fmt.Sprintf("%.3f", res.Throughput),
		})
	}
	table.Render()
}
