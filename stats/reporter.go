package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/sarchlab/tiersim/mem/tiered"
)

// DefaultGanttWidth is the number of columns of a Gantt chart bar.
const DefaultGanttWidth = 50

// A Reporter prints summaries as text.
type Reporter struct {
	w          io.Writer
	ganttWidth int
	err        error
}

// NewReporter creates a Reporter writing into w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{
		w:          w,
		ganttWidth: DefaultGanttWidth,
	}
}

// WithGanttWidth changes the width of the Gantt chart.
func (r *Reporter) WithGanttWidth(width int) *Reporter {
	if width <= 0 {
		panic("gantt width must be positive")
	}

	r.ganttWidth = width

	return r
}

// printf writes unless a previous write has failed.
func (r *Reporter) printf(format string, args ...any) {
	if r.err != nil {
		return
	}

	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *Reporter) flushErr() error {
	err := r.err
	r.err = nil

	return err
}

var reportedTiers = []tiered.Tier{
	tiered.TierCache, tiered.TierPage, tiered.TierDisk, tiered.TierNone,
}

func tierTitle(t tiered.Tier) string {
	name := t.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// ReportStats prints the total time, hit counts, hit ratios and the average
// access time of every process.
func (r *Reporter) ReportStats(s Summary) error {
	r.printf("\nSimulation Statistics:\n")
	r.printf("Total time: %d\n", s.TotalTime)

	r.printf("Hit counts:\n")
	for _, t := range reportedTiers {
		r.printf("  %s: %d\n", tierTitle(t), s.Hits.Of(t))
	}

	r.printf("Hit ratios:\n")
	for _, t := range reportedTiers {
		r.printf("  %s: %.2f\n", tierTitle(t), s.HitRatio(t))
	}

	r.printf("\nAverage access times:\n")
	for _, p := range s.Processes {
		avg, ok := p.AverageAccessTime()
		if !ok {
			r.printf("  Process %d: no accesses\n", p.ID)
			continue
		}

		r.printf("  Process %d: %.2f\n", p.ID, avg)
	}

	return r.flushErr()
}

// ReportGantt prints one bar per process, scaled to the total time.
func (r *Reporter) ReportGantt(s Summary) error {
	r.printf("\nGantt Chart:\n")

	for _, p := range s.Processes {
		startPos, endPos := 0, 0
		if s.TotalTime > 0 {
			width := uint64(r.ganttWidth)
			startPos = int(uint64(p.StartTime) * width / uint64(s.TotalTime))
			endPos = int(uint64(p.EndTime) * width / uint64(s.TotalTime))
		}

		bar := make([]byte, r.ganttWidth)
		for i := range bar {
			if i >= startPos && i < endPos {
				bar[i] = '='
			} else {
				bar[i] = ' '
			}
		}

		r.printf("P%d |%s| %d - %d\n", p.ID, bar, p.StartTime, p.EndTime)
	}

	return r.flushErr()
}

// ReportDetails prints every access of every process.
func (r *Reporter) ReportDetails(s Summary) error {
	for _, p := range s.Processes {
		r.printf("\nProcess %d memory accesses:\n", p.ID)

		for _, a := range p.Accesses {
			r.printf("Address: %s, Access time: %d, Found in: %s\n",
				a.Address, a.Latency, a.FoundIn)
		}
	}

	return r.flushErr()
}
