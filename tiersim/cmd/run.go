package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sarchlab/tiersim/config"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a workload.",
	Long: "`run --workload file.yaml` runs the processes of a workload file. " +
		"Capacities come from the defaults, then the TIERSIM_ environment " +
		"variables, then the workload file, then the flags.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := config.LoadEnv()
		if err != nil {
			return err
		}

		w, err := resolveWorkload(cmd, env)
		if err != nil {
			return err
		}

		opts := readOptions(cmd, env)

		ctx, stop := signal.NotifyContext(runContext(cmd), os.Interrupt)
		defer stop()

		return simulate(ctx, w, opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	addWorkloadFlags(runCmd)
	addOutputFlags(runCmd)
}

func addWorkloadFlags(cmd *cobra.Command) {
	cmd.Flags().String("workload", "", "YAML file listing the processes.")
	cmd.Flags().Int("cache", config.DefaultCacheCapacity,
		"Capacity of the cache.")
	cmd.Flags().Int("page", config.DefaultPageCapacity,
		"Capacity of the page tier.")
	cmd.Flags().Int("disk", config.DefaultDiskCapacity,
		"Capacity of the disk.")
}

// addOutputFlags registers the flags shared by the commands that run a
// simulation.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("db", "",
		"Record processes, accesses and tasks into this SQLite database.")
	cmd.Flags().String("trace", "", "Write a JSON task trace into this file.")
	cmd.Flags().String("trace-compression", "none",
		"Compression of the trace file: none, lz4 or snappy.")
	cmd.Flags().Bool("gantt", false, "Print a Gantt chart of the processes.")
	cmd.Flags().Bool("details", false, "Print every access of every process.")
	cmd.Flags().Bool("monitor", false, "Serve the simulation state over HTTP.")
	cmd.Flags().Int("monitor-port", 0,
		"Port of the monitoring server. A random port is used if unset.")
	cmd.Flags().Bool("open-browser", false,
		"Open the monitoring page in a browser.")
}

// resolveWorkload layers the capacities: defaults, then env, then the
// workload file, then the flags that were given.
func resolveWorkload(
	cmd *cobra.Command,
	env config.Env,
) (*config.Workload, error) {
	w := config.DefaultWorkload()
	env.Apply(w)

	path, _ := cmd.Flags().GetString("workload")
	if path != "" {
		var err error

		w, err = config.LoadWorkload(path, w)
		if err != nil {
			return nil, err
		}
	}

	for name, field := range map[string]*int{
		"cache": &w.Cache,
		"page":  &w.Page,
		"disk":  &w.Disk,
	} {
		if cmd.Flags().Changed(name) {
			*field, _ = cmd.Flags().GetInt(name)
		}
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	return w, nil
}

func readOptions(cmd *cobra.Command, env config.Env) options {
	flags := cmd.Flags()
	opts := options{
		DB:          env.DB,
		MonitorPort: env.MonitorPort,
	}

	opts.Verbose, _ = flags.GetBool("verbose")
	opts.LogEvents, _ = flags.GetBool("log-events")
	opts.Trace, _ = flags.GetString("trace")
	opts.TraceCompression, _ = flags.GetString("trace-compression")
	opts.Gantt, _ = flags.GetBool("gantt")
	opts.Details, _ = flags.GetBool("details")
	opts.Monitor, _ = flags.GetBool("monitor")
	opts.OpenBrowser, _ = flags.GetBool("open-browser")

	if flags.Changed("db") {
		opts.DB, _ = flags.GetString("db")
	}

	if flags.Changed("monitor-port") {
		opts.MonitorPort, _ = flags.GetInt("monitor-port")
	}

	if opts.OpenBrowser {
		opts.Monitor = true
	}

	return opts
}

// runContext is the context of a command, or a background one when the
// command runs outside of Execute.
func runContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
