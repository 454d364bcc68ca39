package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jar0582/schedsim/internal/engine"
	"github.com/jar0582/schedsim/internal/report"
	"github.com/jar0582/schedsim/pkg/model"
)

func newRunCmd() *cobra.Command {
	var (
		file     string
		format   string
		policy   string
		quantum  int
		trace    bool
		delay    time.Duration
		maxTicks int
		asJSON   bool
		grid     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a process file under one policy",
		Example: `  schedsim run -f workload.conf -p rr -q 3
  schedsim run -f workload.csv -p mlfq --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("policy") {
				policy = cfg.Policy
			}
			if !cmd.Flags().Changed("quantum") {
				quantum = cfg.Quantum
			}

			procs, err := loadProcesses(file, format)
			if err != nil {
				return err
			}

			var tracer engine.Observer
			if trace || delay > 0 {
				tracer = traceObserver(trace, delay)
			}
			res, err := newEngine(newRegistry()).Run(procs, engine.Options{
				Policy:   policy,
				Quantum:  quantum,
				Observer: engine.Chain(tracer, engine.TickLimit(maxTicks)),
			})
			if err != nil {
				return fmt.Errorf("simulate %s: %w", file, err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			report.Title(out, fmt.Sprintf("Policy: %s", res.Policy))
			report.ProcessTable(out, procs)
			_, _ = fmt.Fprintln(out)
			report.Summary(out, res)
			_, _ = fmt.Fprintln(out)
			report.Schedule(out, res)
			_, _ = fmt.Fprintln(out)
			report.Gantt(out, res.Slices())
			if grid {
				report.GanttGrid(out, res)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Process file (.conf, .csv, .yaml)")
	cmd.Flags().StringVar(&format, "format", "", "Process file format (conf, csv, yaml); detected from the extension when empty")
	cmd.Flags().StringVarP(&policy, "policy", "p", "fifo", "Scheduling policy, see 'schedsim policies'")
	cmd.Flags().IntVarP(&quantum, "quantum", "q", 2, "Time quantum for rr and mlfq")
	cmd.Flags().BoolVar(&trace, "trace", false, "Log the scheduler state after every tick")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Pause between ticks, e.g. 200ms")
	cmd.Flags().IntVar(&maxTicks, "max-ticks", 0, "Abort runs still unfinished after this many ticks (0 = no limit)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&grid, "grid", true, "Print the per-process Gantt grid")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// traceObserver logs every tick and optionally paces the run.
func traceObserver(trace bool, delay time.Duration) engine.Observer {
	return func(s *engine.Snapshot) error {
		if trace {
			running := model.IdleName
			if s.Running != nil {
				running = s.Running.Name
			}
			var ready, done int
			for i := range s.Processes {
				switch {
				case s.Processes[i].State.IsTerminal():
					done++
				case s.Processes[i].State == model.StateReady:
					ready++
				}
			}
			logger.WithFields(logrus.Fields{
				"time":       s.Time,
				"running":    running,
				"ready":      ready,
				"terminated": done,
			}).Info("tick")
		}
		if delay > 0 {
			time.Sleep(delay)
		}
		return nil
	}
}
