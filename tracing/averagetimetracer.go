package tracing

import (
	"github.com/sarchlab/tiersim/sim"
)

// AverageTimeTracer reports the mean duration of a certain type of task.
type AverageTimeTracer struct {
	*TotalTimeTracer
}

// NewAverageTimeTracer creates a new AverageTimeTracer
func NewAverageTimeTracer(
	timeTeller sim.TimeTeller,
	filter TaskFilter,
) *AverageTimeTracer {
	return &AverageTimeTracer{
		TotalTimeTracer: NewTotalTimeTracer(timeTeller, filter),
	}
}

// AverageTime returns the mean duration of the completed tasks. It returns
// false if no task has completed.
func (t *AverageTimeTracer) AverageTime() (float64, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.taskCount == 0 {
		return 0, false
	}

	return float64(t.totalTime) / float64(t.taskCount), true
}
