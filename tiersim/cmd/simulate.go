package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sarchlab/tiersim/config"
	"github.com/sarchlab/tiersim/datarecording"
	"github.com/sarchlab/tiersim/mem/tiered"
	"github.com/sarchlab/tiersim/monitoring"
	"github.com/sarchlab/tiersim/scheduling"
	"github.com/sarchlab/tiersim/sim"
	"github.com/sarchlab/tiersim/stats"
	"github.com/sarchlab/tiersim/tracing"
)

// options select the outputs of one simulation.
type options struct {
	Verbose   bool
	LogEvents bool

	DB               string
	Trace            string
	TraceCompression string

	Gantt   bool
	Details bool

	Monitor     bool
	MonitorPort int
	OpenBrowser bool
}

// simulation is a wired set of components ready to run.
type simulation struct {
	engine    *sim.SerialEngine
	store     *tiered.Store
	scheduler *scheduling.Scheduler

	recorder    datarecording.DataRecorder
	dbTracer    *tracing.DBTracer
	traceFile   io.WriteCloser
	traceName   string
	jsonTracer  *tracing.JSONTracer
	accessTimer *tracing.AverageTimeTracer
	busyTimer   *tracing.BusyTimeTracer
	monitor     *monitoring.Monitor
}

func build(w *config.Workload, opts options) (*simulation, error) {
	compression, err := tracing.ParseCompression(opts.TraceCompression)
	if err != nil {
		return nil, err
	}

	s := &simulation{engine: sim.NewSerialEngine()}

	if opts.LogEvents {
		s.engine.AcceptHook(sim.NewEventLogger(log.New(os.Stderr, "", 0)))
	}

	s.store = w.StoreBuilder().Build("Store")
	if opts.Verbose {
		s.store.AcceptHook(tiered.NewAccessLogger(log.New(os.Stderr, "", 0)))
	}

	builder := scheduling.MakeBuilder().
		WithEngine(s.engine).
		WithAccessor(s.store)

	if opts.DB != "" {
		s.recorder = datarecording.New(opts.DB)
		builder = builder.WithRecorder(s.recorder)
	}

	s.scheduler = builder.Build("Scheduler")
	w.Register(s.scheduler)

	if s.recorder != nil {
		s.dbTracer = tracing.NewDBTracer(s.engine, s.recorder)
		tracing.CollectTrace(s.scheduler, s.dbTracer)
	}

	if opts.Trace != "" {
		s.traceFile, s.traceName, err = tracing.CreateTraceFile(
			opts.Trace, compression)
		if err != nil {
			s.close()
			return nil, err
		}

		s.jsonTracer = tracing.NewJSONTracer(s.engine, s.traceFile)
		tracing.CollectTrace(s.scheduler, s.jsonTracer)
	}

	s.accessTimer = tracing.NewAverageTimeTracer(
		s.engine, tracing.KindFilter(scheduling.AccessTaskKind))
	tracing.CollectTrace(s.scheduler, s.accessTimer)

	s.busyTimer = tracing.NewBusyTimeTracer(
		s.engine, tracing.KindFilter(scheduling.ProcessTaskKind))
	tracing.CollectTrace(s.scheduler, s.busyTimer)

	if opts.Monitor {
		s.monitor = monitoring.NewMonitor().WithPortNumber(opts.MonitorPort)
		s.monitor.RegisterEngine(s.engine)
		s.monitor.RegisterStore(s.store)
		s.monitor.RegisterScheduler(s.scheduler)
	}

	return s, nil
}

// close releases the files of the simulation. It reports the first error.
func (s *simulation) close() error {
	var firstErr error

	if s.jsonTracer != nil {
		s.jsonTracer.Close()
	}

	if s.traceFile != nil {
		if err := s.traceFile.Close(); err != nil {
			firstErr = err
		} else {
			fmt.Fprintf(os.Stderr, "Trace written to %s\n", s.traceName)
		}
	}

	if s.dbTracer != nil {
		s.dbTracer.Terminate()
	}

	if s.recorder != nil {
		if err := s.recorder.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (s *simulation) report(out io.Writer, opts options) error {
	summary := stats.Summarize(s.scheduler)
	reporter := stats.NewReporter(out)

	if err := reporter.ReportStats(summary); err != nil {
		return err
	}

	if avg, ok := s.accessTimer.AverageTime(); ok {
		fmt.Fprintf(out, "\nMean access latency: %.2f\n", avg)
	}

	fmt.Fprintf(out, "Busy time: %d\n", s.busyTimer.BusyTime())

	if opts.Gantt {
		if err := reporter.ReportGantt(summary); err != nil {
			return err
		}
	}

	if opts.Details {
		if err := reporter.ReportDetails(summary); err != nil {
			return err
		}
	}

	return nil
}

// simulate runs a workload and writes the report into out. With a monitor,
// it keeps serving until ctx is done.
func simulate(
	ctx context.Context,
	w *config.Workload,
	opts options,
	out io.Writer,
) (err error) {
	s, err := build(w, opts)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := s.close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if s.monitor != nil {
		if err := s.monitor.StartServer(); err != nil {
			return err
		}

		if opts.OpenBrowser {
			if err := s.monitor.OpenBrowser(); err != nil {
				fmt.Fprintf(os.Stderr, "Cannot open browser: %v\n", err)
			}
		}
	}

	if err := s.scheduler.RunSimulation(); err != nil {
		return err
	}

	if err := s.report(out, opts); err != nil {
		return err
	}

	if s.monitor != nil {
		fmt.Fprintf(os.Stderr,
			"Simulation finished, monitor still at %s. "+
				"Press Ctrl-C to stop.\n", s.monitor.URL())
		<-ctx.Done()

		return s.monitor.Stop(context.Background())
	}

	return nil
}
