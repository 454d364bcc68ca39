package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jar0582/schedsim/pkg/model"
)

// parseCSV reads rows of name,burst,arrival[,priority]. A leading header
// row is skipped when its burst column is not a number.
func parseCSV(r io.Reader, name string) ([]model.Process, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading CSV %s: %v", model.ErrConfig, name, err)
	}

	processes := make([]model.Process, 0, len(rows))
	for i, row := range rows {
		if len(row) < 3 || len(row) > 4 {
			return nil, &model.LoadError{Path: name, Line: i + 1, Msg: fmt.Sprintf("expected 3 or 4 fields, got %d", len(row))}
		}
		if i == 0 && !isInt(row[1]) {
			continue
		}

		var p model.Process
		p.Name = strings.TrimSpace(row[0])
		fields := []struct {
			label string
			dst   *int
		}{
			{"burst", &p.BurstTime},
			{"arrival", &p.ArrivalTime},
			{"priority", &p.Priority},
		}
		for j, f := range fields {
			if j+1 >= len(row) {
				break
			}
			v, err := strconv.Atoi(strings.TrimSpace(row[j+1]))
			if err != nil {
				return nil, &model.LoadError{Path: name, Line: i + 1, Msg: fmt.Sprintf("%s must be an integer, got %q", f.label, row[j+1])}
			}
			*f.dst = v
		}
		processes = append(processes, p)
	}

	return processes, nil
}

func isInt(s string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil
}
