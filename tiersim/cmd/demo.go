package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sarchlab/tiersim/config"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the demonstration workload.",
	Long: "`demo` runs six processes against a 20/40/80 hierarchy and " +
		"prints the statistics, the Gantt chart and every access.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := config.LoadEnv()
		if err != nil {
			return err
		}

		opts := readOptions(cmd, env)
		if !cmd.Flags().Changed("gantt") {
			opts.Gantt = true
		}

		if !cmd.Flags().Changed("details") {
			opts.Details = true
		}

		ctx, stop := signal.NotifyContext(runContext(cmd), os.Interrupt)
		defer stop()

		return simulate(ctx, config.DemoWorkload(), opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	addOutputFlags(demoCmd)
}
