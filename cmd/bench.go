package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/0x0BSoD/featfeed/internal/bench"
	"github.com/0x0BSoD/featfeed/internal/model"
)

func benchCmd() *cobra.Command {
	var (
		users       int
		concurrency int
		output      string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run every feature pipeline once and print the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("users") {
				cfg.BenchUsers = users
			}
			if cmd.Flags().Changed("concurrency") {
				cfg.BenchConcurrency = concurrency
			}

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			runs, err := bench.New(
				a.catalog.Services(),
				a.benchStorage(),
				a.benchReporter(),
				cfg.BenchInterval,
				cfg.BenchUsers,
				cfg.BenchConcurrency,
			).Run(cmd.Context())
			if err != nil {
				return err
			}

			return writeRuns(cmd.OutOrStdout(), output, runs)
		},
	}

	cmd.Flags().IntVarP(&users, "users", "u", 0, "users per feature (default from config)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "features benchmarked at once (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")

	return cmd
}

func writeRuns(w io.Writer, format string, runs []model.Run) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(runs)
	case "table", "":
		for _, run := range runs {
			if _, err := fmt.Fprintf(w, "%-12s %8d items %12s  %08x\n",
				run.Feature, run.ItemsCount, run.Duration, run.Checksum); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
