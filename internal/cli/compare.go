package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jar0582/schedsim/internal/engine"
	"github.com/jar0582/schedsim/internal/report"
	"github.com/jar0582/schedsim/pkg/model"
)

func newCompareCmd() *cobra.Command {
	var (
		file     string
		format   string
		quantum  int
		policies []string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run a process file under several policies and compare the metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("quantum") {
				quantum = cfg.Quantum
			}
			procs, err := loadProcesses(file, format)
			if err != nil {
				return err
			}

			reg := newRegistry()
			if len(policies) == 0 {
				policies = reg.Names()
			}
			eng := newEngine(reg)

			results := make([]*model.Result, 0, len(policies))
			for _, name := range policies {
				res, err := eng.Run(procs, engine.Options{Policy: name, Quantum: quantum})
				if err != nil {
					return fmt.Errorf("simulate %s under %s: %w", file, name, err)
				}
				results = append(results, res)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			report.Compare(out, results)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Process file (.conf, .csv, .yaml)")
	cmd.Flags().StringVar(&format, "format", "", "Process file format (conf, csv, yaml)")
	cmd.Flags().IntVarP(&quantum, "quantum", "q", 2, "Time quantum for rr and mlfq")
	cmd.Flags().StringSliceVarP(&policies, "policies", "p", nil, "Policies to compare (default all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the results as JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
