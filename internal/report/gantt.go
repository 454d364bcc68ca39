package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jar0582/schedsim/pkg/model"
)

const (
	cell = "██"
	// cellWidth is the printed width of one grid cell, "|" plus two columns.
	cellWidth = 3
)

// Gantt prints the compact bar form of a timeline: one box per slice with
// the slice start times underneath.
func Gantt(w io.Writer, slices []model.TimeSlice) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	if len(slices) == 0 {
		_, _ = fmt.Fprintln(w, "No Gantt chart data available.")
		return
	}
	_, _ = fmt.Fprint(w, "|")
	for i := range slices {
		name := slices[i].Process
		padding := strings.Repeat(" ", max(8-len(name), 0)/2)
		_, _ = fmt.Fprint(w, padding, name, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for i := range slices {
		_, _ = fmt.Fprint(w, fmt.Sprint(slices[i].Start), "\t")
		if len(slices)-1 == i {
			_, _ = fmt.Fprint(w, fmt.Sprint(slices[i].Stop))
		}
	}
	_, _ = fmt.Fprintf(w, "\n\n")
}

// GanttGrid prints one row per process with a filled cell for every tick
// the process held the CPU. Idle ticks leave every row empty.
func GanttGrid(w io.Writer, res *model.Result) {
	end := res.TotalTime
	if len(res.Gantt) == 0 || len(res.Processes) == 0 || end == 0 {
		_, _ = fmt.Fprintln(w, "No Gantt chart data available.")
		return
	}

	rows := make(map[string][]bool, len(res.Processes))
	for _, p := range res.Processes {
		rows[p.Name] = make([]bool, end)
	}
	for _, s := range res.Slices() {
		row, ok := rows[s.Process]
		if !ok {
			continue
		}
		for t := s.Start; t < s.Stop && t < end; t++ {
			row[t] = true
		}
	}

	indent := strings.Repeat(" ", 11)
	var b strings.Builder
	b.WriteString(indent + tickLabels(end) + "\n")
	b.WriteString(indent + strings.Repeat("|--", end) + "|\n")

	for _, p := range res.Processes {
		fmt.Fprintf(&b, "%-10s ", p.Name)
		for _, on := range rows[p.Name] {
			b.WriteString("|")
			if on {
				b.WriteString(cell)
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteString("|\n" + indent + strings.Repeat("+--", end) + "+\n")
	}
	_, _ = io.WriteString(w, b.String())
}

// tickLabels places each tick number over its cell boundary. Labels wider
// than a cell would run into the next one, so those ticks are skipped.
func tickLabels(end int) string {
	line := []byte(strings.Repeat(" ", cellWidth*(end+1)))
	free := 0
	for t := 0; t <= end; t++ {
		col := cellWidth * t
		if col < free {
			continue
		}
		label := fmt.Sprintf("%02d", t)
		if over := col + len(label) - len(line); over > 0 {
			line = append(line, strings.Repeat(" ", over)...)
		}
		copy(line[col:], label)
		free = col + len(label) + 1
	}
	return strings.TrimRight(string(line), " ")
}
