package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sarchlab/tiersim/datarecording"
	"github.com/sarchlab/tiersim/mem/tiered"
	"github.com/sarchlab/tiersim/scheduling"
	"github.com/sarchlab/tiersim/tracing"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <database>",
	Short: "Summarize a database recorded with --db.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(runContext(cmd), args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectedTiers = []tiered.Tier{
	tiered.TierCache, tiered.TierPage, tiered.TierDisk, tiered.TierNone,
}

func inspect(ctx context.Context, path string, out io.Writer) error {
	reader, err := datarecording.NewReader(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	reader.MapTable(scheduling.ProcessTableName, scheduling.ProcessEntry{})
	reader.MapTable(scheduling.AccessTableName, scheduling.AccessEntry{})
	reader.MapTable(tracing.TaskTableName, tracing.TaskEntry{})

	processes, _, err := reader.Query(ctx, scheduling.ProcessTableName,
		datarecording.QueryParams{OrderBy: "Start, ID"})
	if err != nil {
		return fmt.Errorf("cannot read processes: %w", err)
	}

	fmt.Fprintf(out, "Processes:\n")
	for _, row := range processes {
		p := row.(scheduling.ProcessEntry)
		fmt.Fprintf(out,
			"  P%d arrival %d start %d end %d execution %d accesses %d\n",
			p.ID, p.Arrival, p.Start, p.End, p.Execution, p.Accesses)
	}

	fmt.Fprintf(out, "Accesses:\n")
	for _, t := range inspectedTiers {
		_, n, err := reader.Query(ctx, scheduling.AccessTableName,
			datarecording.QueryParams{
				Where: "FoundIn = ?",
				Args:  []any{t.String()},
				Limit: 1,
			})
		if err != nil {
			return fmt.Errorf("cannot read accesses: %w", err)
		}

		fmt.Fprintf(out, "  %s: %d\n", t, n)
	}

	_, tasks, err := reader.Query(ctx, tracing.TaskTableName,
		datarecording.QueryParams{Limit: 1})
	if err != nil {
		return fmt.Errorf("cannot read tasks: %w", err)
	}

	fmt.Fprintf(out, "Tasks: %d\n", tasks)

	return nil
}
